// Package main is the entry point for the heic2jpg CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"heic2jpg/config"
	"heic2jpg/contracts"
	"heic2jpg/converter"
	"heic2jpg/decoders"
	"heic2jpg/history"
	"heic2jpg/logging"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	v        = viper.New()
	settings contracts.Settings
	log      *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "heic2jpg [files...]",
	Short: "Convert HEIC photos to JPEG",
	Long: `heic2jpg converts HEIC/HEIF images to JPEG. Without a subcommand it opens
an interactive file list where files can be added, previewed and converted
in one batch. Use "heic2jpg convert" for scripted conversions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		if err := config.Init(v, cfgFile); err != nil {
			return err
		}
		if err := bindFlags(cmd); err != nil {
			return err
		}
		s, err := config.Load(v)
		if err != nil {
			return err
		}
		settings = s

		l, err := logging.New(settings)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		log = l
		if cfgFile := v.ConfigFileUsed(); cfgFile != "" {
			log.Debug("Using config file: %s", cfgFile)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			return log.Close()
		}
		return nil
	},
	RunE: runUI,
}

// flagKeys maps command-line flags onto config keys. Flags only override
// the file and environment when set explicitly.
var flagKeys = map[string]string{
	"quality":  config.KeyQuality,
	"backend":  config.KeyBackend,
	"log-file": config.KeyLogFile,
	"color":    config.KeyLogColor,
	"debug":    config.KeyDebug,
}

func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./heic2jpg.yaml or <user config dir>/heic2jpg/heic2jpg.yaml)")
	pf.String("backend", string(contracts.BackendVips), "decoder backend: vips or magick")
	pf.String("log-file", "", "append log lines to this file")
	pf.String("color", string(contracts.ColorAuto), "colored output: auto, always or never")
	pf.Bool("debug", false, "enable debug logging")
}

// openConverter starts the configured decoder. The returned function shuts
// the native library down again.
func openConverter() (*converter.Converter, func(), error) {
	dec, shutdown, err := decoders.Open(settings.Backend, log, settings.Debug)
	if err != nil {
		return nil, nil, err
	}
	enc := converter.JPEGEncoder{Quality: settings.Quality}
	return converter.New(dec, enc, log), shutdown, nil
}

// recordHistory stores a finished batch when history is enabled. Failures
// are logged, never returned: the conversion itself already happened.
func recordHistory(ctx context.Context, summary contracts.BatchSummary) {
	if !settings.HistoryEnabled || len(summary.Results) == 0 {
		return
	}
	store, err := history.Open(settings.HistoryPath)
	if err != nil {
		log.Warn("History unavailable: %v", err)
		return
	}
	defer store.Close()
	id, err := store.Record(ctx, summary)
	if err != nil {
		log.Warn("Could not record batch: %v", err)
		return
	}
	log.Debug("Recorded batch #%d in %s", id, settings.HistoryPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
