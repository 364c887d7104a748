// Package decoders binds the converter to native HEIC decoding libraries.
package decoders

import (
	"fmt"

	"heic2jpg/contracts"
	"heic2jpg/converter"
)

// Open starts the requested backend and returns its decoder with the
// matching shutdown function.
func Open(backend contracts.Backend, log converter.Logger, debug bool) (converter.Decoder, func(), error) {
	switch backend {
	case contracts.BackendVips, "":
		StartVips(log, debug)
		return VipsDecoder{}, ShutdownVips, nil
	case contracts.BackendMagick:
		StartMagick()
		return MagickDecoder{}, ShutdownMagick, nil
	}
	return nil, nil, fmt.Errorf("unknown decoder backend %q (use 'vips' or 'magick')", backend)
}
