package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"heic2jpg/contracts"
	"heic2jpg/files_manager"
	"heic2jpg/pdf_writer"
	"heic2jpg/report"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert HEIC files to JPEG without the UI",
	Long: `Convert decodes every given HEIC file (and every HEIC file in the --dir
folders) and writes <name>.jpg into the output folder, which must exist.
A file that fails is reported and the batch goes on. Files sharing a base
name overwrite each other; the last one wins.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	dirs, _ := cmd.Flags().GetStringSlice("dir")
	recursive, _ := cmd.Flags().GetBool("recursive")
	sheetPath, _ := cmd.Flags().GetString("contact-sheet")
	yamlPath, _ := cmd.Flags().GetString("summary-yaml")

	paths, err := files_manager.ExpandInputs(append(args, dirs...), recursive)
	if err != nil {
		return err
	}

	conv, shutdown, err := openConverter()
	if err != nil {
		return err
	}
	defer shutdown()

	batch, err := conv.NewBatch(paths, outputDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()
	for !batch.Done() {
		if ctx.Err() != nil {
			log.Warn("Interrupted after %d of %d file(s)", batch.Processed(), batch.Total())
			break
		}
		batch.Next()
	}
	summary := batch.Summary()

	if err := report.WriteText(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	if yamlPath != "" {
		if err := writeYAMLSummary(yamlPath, summary); err != nil {
			log.Error("Writing summary: %v", err)
		}
	}
	if sheetPath != "" && len(summary.Results) > 0 {
		if err := pdf_writer.WriteContactSheet(sheetPath, summary, pdf_writer.Options{}); err != nil {
			log.Error("Writing contact sheet: %v", err)
		} else {
			log.Success("Contact sheet saved to %s", sheetPath)
		}
	}
	recordHistory(ctx, summary)
	log.Info("Total time taken: %s", time.Since(startTime).Round(time.Millisecond))

	if failed := len(summary.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to convert", failed, len(summary.Results))
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

func writeYAMLSummary(path string, summary contracts.BatchSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteYAML(f, summary); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "existing output directory for the JPEG files")
	convertCmd.Flags().StringSlice("dir", nil, "add every HEIC file in this directory (repeatable)")
	convertCmd.Flags().BoolP("recursive", "r", false, "scan --dir folders recursively")
	convertCmd.Flags().IntP("quality", "q", 90, "JPEG quality (1-100)")
	convertCmd.Flags().String("contact-sheet", "", "also write a PDF contact sheet of the converted files")
	convertCmd.Flags().String("summary-yaml", "", "also write a YAML summary of the batch")

	rootCmd.AddCommand(convertCmd)
}
