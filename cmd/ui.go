package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"heic2jpg/contracts"
	"heic2jpg/files_manager"
	"heic2jpg/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui [files...]",
	Short: "Open the interactive converter",
	Long: `UI opens a terminal file list. Files and folders given as arguments are
added up front; more can be added with 'a'. Press 'c' to pick an output
folder and convert the whole list.`,
	RunE: runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	paths, err := files_manager.ExpandInputs(args, false)
	if err != nil {
		return err
	}

	conv, shutdown, err := openConverter()
	if err != nil {
		return err
	}
	defer shutdown()

	// The TUI owns the terminal from here on.
	log.Quiet()

	sel := files_manager.NewSelection()
	sel.Add(paths...)

	model := ui.NewModel(ui.Options{
		Selection:   sel,
		Converter:   conv,
		Log:         log,
		PreviewSize: settings.PreviewSize,
		OnBatchDone: func(s contracts.BatchSummary) {
			recordHistory(context.Background(), s)
		},
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
