package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/chris-regnier/dailylink/internal/storage"
	"github.com/chris-regnier/dailylink/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var notebooksAll bool

var notebooksCmd = &cobra.Command{
	Use:     "notebooks",
	Aliases: []string{"nb"},
	Short:   "List and choose the notebook that holds daily notes",
}

var notebooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notebooks",
	Long: `List the notebooks that can receive daily notes. The selected one is
marked with *. Closed notebooks are hidden unless --all is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := notebook.NewSelector(store)
		opts, err := sel.Options(cmd.Context())
		if err != nil {
			return err
		}
		if notebooksAll {
			if opts, err = allNotebookOptions(cmd, sel); err != nil {
				return err
			}
		}
		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), ui.ToNotebookJSON(opts))
		}
		ui.FormatNotebookTable(cmd.OutOrStdout(), opts)
		return nil
	},
}

// allNotebookOptions lists every notebook, closed ones included.
func allNotebookOptions(cmd *cobra.Command, sel *notebook.Selector) ([]notebook.Option, error) {
	all, err := store.ListNotebooks(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", notebook.ErrStorageUnavailable, err)
	}
	selected, err := sel.SelectedID(cmd.Context())
	if err != nil {
		return nil, err
	}
	opts := make([]notebook.Option, 0, len(all))
	for _, nb := range all {
		opts = append(opts, notebook.Option{Notebook: nb, Selected: nb.ID == selected})
	}
	return opts, nil
}

var notebooksSelectCmd = &cobra.Command{
	Use:   "select [id]",
	Short: "Choose the notebook for daily notes",
	Long: `Choose the notebook that receives daily notes. Without an ID a list of
the open notebooks is shown in the terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := notebook.NewSelector(store)
		var id string
		if len(args) == 1 {
			id = args[0]
		} else {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("notebook ID required when not running in a terminal")
			}
			opts, err := sel.Options(cmd.Context())
			if err != nil {
				return err
			}
			if len(opts) == 0 {
				return errors.New("no open notebooks")
			}
			nb, ok, err := ui.PickNotebook(opts, ui.ResolveTheme(appConfig.Theme))
			if err != nil || !ok {
				return err
			}
			id = nb.ID
		}

		all, err := store.ListNotebooks(cmd.Context())
		if err != nil {
			return fmt.Errorf("%w: %w", notebook.ErrStorageUnavailable, err)
		}
		for _, nb := range notebook.Selectable(all) {
			if nb.ID != id {
				continue
			}
			if err := sel.Save(cmd.Context(), id); err != nil {
				return err
			}
			if jsonOutput {
				return ui.FormatJSON(cmd.OutOrStdout(), ui.NotebookJSON{ID: nb.ID, Name: nb.Name, Closed: nb.Closed, Selected: true})
			}
			ui.FormatNotebookSelected(cmd.OutOrStdout(), nb)
			return nil
		}
		return fmt.Errorf("notebook %s not found or closed", id)
	},
}

var notebooksCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a notebook (markdown and sqlite storage)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		creator, ok := store.(storage.NotebookCreator)
		if !ok {
			return fmt.Errorf("%w: create notebooks in SiYuan itself", storage.ErrUnsupported)
		}
		nb, err := creator.CreateNotebook(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, storage.ErrValidation) {
				return fmt.Errorf("invalid notebook name: %w", err)
			}
			return err
		}
		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), ui.NotebookJSON{ID: nb.ID, Name: nb.Name})
		}
		ui.FormatNotebookCreated(cmd.OutOrStdout(), nb)
		return nil
	},
}

func init() {
	notebooksListCmd.Flags().BoolVar(&notebooksAll, "all", false, "include closed notebooks")
	notebooksCmd.AddCommand(notebooksListCmd, notebooksSelectCmd, notebooksCreateCmd)
	rootCmd.AddCommand(notebooksCmd)
}
