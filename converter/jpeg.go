package converter

import (
	"bufio"
	"fmt"
	"image/jpeg"
	"os"
)

const DefaultQuality = 90

// JPEGEncoder writes baseline JPEG files.
type JPEGEncoder struct {
	Quality int
}

func (e JPEGEncoder) quality() int {
	if e.Quality < 1 || e.Quality > 100 {
		return DefaultQuality
	}
	return e.Quality
}

// Encode overwrites outputPath. A failed write may leave a partial file.
func (e JPEGEncoder) Encode(img RasterImage, outputPath string) error {
	src, err := ToImage(img)
	if err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}
	bw := bufio.NewWriterSize(f, 1<<20)
	if err := jpeg.Encode(bw, src, &jpeg.Options{Quality: e.quality()}); err != nil {
		f.Close()
		return &EncodeError{Path: outputPath, Err: fmt.Errorf("jpeg encode: %w", err)}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return &EncodeError{Path: outputPath, Err: err}
	}
	if err := f.Close(); err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}
	return nil
}
