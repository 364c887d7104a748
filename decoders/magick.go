package decoders

import (
	"fmt"
	"strings"
	"sync"

	"gopkg.in/gographics/imagick.v2/imagick"

	"heic2jpg/contracts"
	"heic2jpg/converter"
)

var magickOnce sync.Once

func StartMagick() {
	magickOnce.Do(imagick.Initialize)
}

func ShutdownMagick() {
	imagick.Terminate()
}

// MagickDecoder decodes through ImageMagick's HEIC delegate.
type MagickDecoder struct{}

func (MagickDecoder) Decode(path string) (contracts.RasterImage, error) {
	mw := imagick.NewMagickWand()
	defer mw.Destroy()

	if err := mw.ReadImage(path); err != nil {
		return contracts.RasterImage{}, &converter.DecodeError{Path: path, Err: err}
	}
	format := strings.ToUpper(mw.GetImageFormat())
	if format != "HEIC" && format != "HEIF" {
		return contracts.RasterImage{}, &converter.DecodeError{
			Path: path,
			Err:  fmt.Errorf("not a HEIF image (detected %s)", format),
		}
	}
	if err := mw.AutoOrientImage(); err != nil {
		return contracts.RasterImage{}, &converter.DecodeError{Path: path, Err: fmt.Errorf("auto-orient: %w", err)}
	}

	width, height := mw.GetImageWidth(), mw.GetImageHeight()
	mode := contracts.ModeRGB
	if mw.GetImageAlphaChannel() {
		mode = contracts.ModeRGBA
	}

	px, err := mw.ExportImagePixels(0, 0, width, height, string(mode), imagick.PIXEL_CHAR)
	if err != nil {
		return contracts.RasterImage{}, &converter.DecodeError{Path: path, Err: err}
	}
	pix, ok := px.([]byte)
	if !ok {
		return contracts.RasterImage{}, &converter.DecodeError{Path: path, Err: fmt.Errorf("unexpected pixel buffer %T", px)}
	}

	return contracts.RasterImage{
		Mode:   mode,
		Width:  int(width),
		Height: int(height),
		Pix:    pix,
	}, nil
}
