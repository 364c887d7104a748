// Package preview produces thumbnail rasters of HEIC files for display.
package preview

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"

	"heic2jpg/contracts"
	"heic2jpg/converter"
)

const DefaultSize = 250

// FitSize scales w×h down to fit inside maxW×maxH keeping the aspect ratio.
// Images already inside the box are returned unchanged.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	nw, nh := maxW, h*maxW/w
	if nh > maxH {
		nw, nh = w*maxH/h, maxH
	}
	return max(nw, 1), max(nh, 1)
}

// Thumbnail downscales img to fit maxW×maxH.
func Thumbnail(img contracts.RasterImage, maxW, maxH int) (contracts.RasterImage, error) {
	src, err := converter.ToImage(img)
	if err != nil {
		return contracts.RasterImage{}, err
	}
	w, h := FitSize(img.Width, img.Height, maxW, maxH)
	if w == img.Width && h == img.Height {
		return img, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return converter.FromImage(dst), nil
}

// Preview decodes path and returns a thumbnail no larger than maxW×maxH.
// Decode failures come back as the decoder's *converter.DecodeError.
func Preview(dec converter.Decoder, path string, maxW, maxH int) (contracts.RasterImage, error) {
	img, err := dec.Decode(path)
	if err != nil {
		return contracts.RasterImage{}, err
	}
	thumb, err := Thumbnail(img, maxW, maxH)
	if err != nil {
		return contracts.RasterImage{}, fmt.Errorf("thumbnail %s: %w", path, err)
	}
	return thumb, nil
}

// RenderANSI draws img as rows of "▀" cells, each cell carrying two
// vertically stacked pixels in 24-bit colour. The result is cols wide.
func RenderANSI(img contracts.RasterImage, cols int) string {
	src, err := converter.ToImage(img)
	if err != nil || cols <= 0 {
		return ""
	}
	w, h := FitSize(img.Width, img.Height, cols, img.Height*cols/max(img.Width, 1))
	if h%2 == 1 {
		h++
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var b strings.Builder
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := dst.NRGBAAt(x, y)
			bot := dst.NRGBAAt(x, y+1)
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", top.R, top.G, top.B, bot.R, bot.G, bot.B)
		}
		b.WriteString("\x1b[0m")
		if y+2 < h {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
