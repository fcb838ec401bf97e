package cmd

import (
	"github.com/chris-regnier/dailylink/internal/ui"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the calendar settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsStore.Load()
		if err != nil {
			return err
		}
		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), s)
		}
		ui.FormatSettings(cmd.OutOrStdout(), s)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it.

Fields:
  position        top-left, top-right or dock
  insert-format   block or url`,
	Example: `  dailylink settings set insert-format url
  dailylink settings set position dock`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsStore.Load()
		if err != nil {
			logger.Warn("overwriting unreadable settings", "path", settingsStore.Path(), "err", err)
		}
		s, err = s.With(args[0], args[1])
		if err != nil {
			return err
		}
		if err := settingsStore.Save(s); err != nil {
			return err
		}
		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), s)
		}
		ui.FormatSettings(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
