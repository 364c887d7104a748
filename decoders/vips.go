package decoders

import (
	"fmt"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"

	"heic2jpg/contracts"
	"heic2jpg/converter"
)

var vipsOnce sync.Once

// StartVips initialises libvips once per process. Library warnings are
// forwarded to log; debug raises the verbosity to info.
func StartVips(log converter.Logger, debug bool) {
	vipsOnce.Do(func() {
		level := vips.LogLevelWarning
		if debug {
			level = vips.LogLevelInfo
		}
		vips.LoggingSettings(func(domain string, lvl vips.LogLevel, msg string) {
			if log == nil {
				return
			}
			switch lvl {
			case vips.LogLevelError, vips.LogLevelCritical:
				log.Error("%s: %s", domain, msg)
			case vips.LogLevelWarning:
				log.Warn("%s: %s", domain, msg)
			default:
				log.Debug("%s: %s", domain, msg)
			}
		}, level)
		vips.Startup(&vips.Config{ConcurrencyLevel: 1})
	})
}

func ShutdownVips() {
	vips.Shutdown()
}

// VipsDecoder decodes through libvips, which reads HEIC via libheif.
type VipsDecoder struct{}

func (VipsDecoder) Decode(path string) (contracts.RasterImage, error) {
	img, err := vips.NewImageFromFile(path)
	if err != nil {
		return contracts.RasterImage{}, &converter.DecodeError{Path: path, Err: err}
	}
	defer img.Close()

	if img.Format() != vips.ImageTypeHEIF {
		return contracts.RasterImage{}, &converter.DecodeError{
			Path: path,
			Err:  fmt.Errorf("not a HEIF image (detected %s)", vips.ImageTypes[img.Format()]),
		}
	}
	if err := img.AutoRotate(); err != nil {
		return contracts.RasterImage{}, &converter.DecodeError{Path: path, Err: fmt.Errorf("auto-rotate: %w", err)}
	}

	goImg, err := img.ToImage(vips.NewDefaultPNGExportParams())
	if err != nil {
		return contracts.RasterImage{}, &converter.DecodeError{Path: path, Err: err}
	}
	return converter.FromImage(goImg), nil
}
