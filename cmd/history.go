package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"heic2jpg/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion batches",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if !settings.HistoryEnabled {
			return fmt.Errorf("history is disabled (history.enabled: false)")
		}
		store, err := history.Open(settings.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		batches, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(batches) == 0 {
			fmt.Fprintln(out, "No batches recorded yet.")
			return nil
		}
		for _, b := range batches {
			fmt.Fprintf(out, "#%d  %s  %d converted, %d failed  -> %s (%s)\n",
				b.ID, b.StartedAt.Local().Format("2006-01-02 15:04:05"),
				b.Converted, b.Failed, b.OutputDir, b.FinishedAt.Sub(b.StartedAt).Round(time.Millisecond))
			if !verbose {
				continue
			}
			results, err := store.Results(cmd.Context(), b.ID)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Error != "" {
					fmt.Fprintf(out, "    FAIL %s: %s\n", r.Source, r.Error)
				} else {
					fmt.Fprintf(out, "    ok   %s -> %s\n", r.Source, r.Output)
				}
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "number of batches to show")
	historyCmd.Flags().BoolP("verbose", "v", false, "list every file of each batch")

	rootCmd.AddCommand(historyCmd)
}
