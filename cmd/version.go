package main

import (
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "heic2jpg %s (libvips %s)\n", version, vips.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
