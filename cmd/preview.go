package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"heic2jpg/preview"
	"heic2jpg/utils"
)

var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Show a thumbnail and EXIF facts of one HEIC file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cols, _ := cmd.Flags().GetInt("cols")
		path := args[0]

		conv, shutdown, err := openConverter()
		if err != nil {
			return err
		}
		defer shutdown()

		size := settings.PreviewSize
		thumb, err := preview.Preview(conv.Decoder, path, size, size)
		if err != nil {
			return fmt.Errorf("error loading image preview: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, preview.RenderANSI(thumb, cols))
		fmt.Fprintf(out, "%s (%dx%d thumbnail)\n", path, thumb.Width, thumb.Height)

		meta, err := utils.ReadImageMetadata(path)
		if errors.Is(err, utils.ErrNoExif) {
			fmt.Fprintln(out, "No EXIF data")
			return nil
		}
		if err != nil {
			log.Warn("Reading EXIF: %v", err)
			return nil
		}
		if camera := strings.TrimSpace(meta.Make + " " + meta.Model); camera != "" {
			fmt.Fprintf(out, "Camera:      %s\n", camera)
		}
		if meta.DateTime != "" {
			fmt.Fprintf(out, "Taken:       %s\n", meta.DateTime)
		}
		if meta.Orientation != 0 {
			fmt.Fprintf(out, "Orientation: %s\n", utils.OrientationLabel(meta.Orientation))
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().Int("cols", 60, "thumbnail width in terminal columns")

	rootCmd.AddCommand(previewCmd)
}
