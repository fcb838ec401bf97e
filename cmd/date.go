package cmd

import (
	"github.com/spf13/cobra"
)

var dateOpts outputOptions

var dateCmd = &cobra.Command{
	Use:   "date <date>",
	Short: "Insert a link to the daily note of any date",
	Long: `Insert a link to the daily note of any date without opening the picker.

The date is YYYY-MM-DD, today, tomorrow, yesterday, or a day offset such
as +3 or -7.`,
	Example: `  dailylink date 2024-02-29
  dailylink date -- -7
  dailylink date +3 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return insertRun(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), dateTarget(args[0]), dateOpts)
	},
}

func init() {
	addOutputFlags(dateCmd, &dateOpts)
	rootCmd.AddCommand(dateCmd)
}
