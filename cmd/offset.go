package cmd

import (
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/spf13/cobra"
)

func newOffsetCommand(use, id string, offset int, short string) *cobra.Command {
	var opts outputOptions
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

The daily note is created in the selected notebook if it does not exist.
The link uses the insert format from the settings unless --format is given.`,
		Example: `  dailylink ` + use + `
  dailylink ` + use + ` --format url --clipboard
  dailylink ` + use + ` --append-to 20240101120000-abcdefg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return insertRun(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), offsetTarget(id, offset), opts)
		},
	}
	addOutputFlags(c, &opts)
	return c
}

func init() {
	rootCmd.AddCommand(
		newOffsetCommand("today", slash.IDToday, 0, "Insert a link to today's daily note"),
		newOffsetCommand("tomorrow", slash.IDTomorrow, 1, "Insert a link to tomorrow's daily note"),
		newOffsetCommand("yesterday", slash.IDYesterday, -1, "Insert a link to yesterday's daily note"),
	)
}
