package converter

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"heic2jpg/contracts"
)

// FromImage copies any image.Image into a RasterImage. Gray sources stay
// single channel; everything else becomes RGB, or RGBA when any pixel is
// translucent.
func FromImage(img image.Image) RasterImage {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if g, ok := img.(*image.Gray); ok {
		pix := make([]byte, w*h)
		for y := 0; y < h; y++ {
			off := g.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pix[y*w:(y+1)*w], g.Pix[off:off+w])
		}
		return RasterImage{Mode: contracts.ModeGray, Width: w, Height: h, Pix: pix}
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	if nrgba.Opaque() {
		pix := make([]byte, 0, w*h*3)
		for y := 0; y < h; y++ {
			row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
			for x := 0; x < w; x++ {
				pix = append(pix, row[x*4], row[x*4+1], row[x*4+2])
			}
		}
		return RasterImage{Mode: contracts.ModeRGB, Width: w, Height: h, Pix: pix}
	}

	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(pix[y*w*4:(y+1)*w*4], nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+w*4])
	}
	return RasterImage{Mode: contracts.ModeRGBA, Width: w, Height: h, Pix: pix}
}

// ToImage wraps raster pixels as an image.Image without changing them.
// RGBA rasters are flattened onto white because JPEG has no alpha.
func ToImage(r RasterImage) (image.Image, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid raster: mode %q %dx%d with %d bytes", r.Mode, r.Width, r.Height, len(r.Pix))
	}
	rect := image.Rect(0, 0, r.Width, r.Height)
	switch r.Mode {
	case contracts.ModeGray:
		return &image.Gray{Pix: r.Pix, Stride: r.Width, Rect: rect}, nil
	case contracts.ModeRGB:
		out := image.NewNRGBA(rect)
		for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
			out.Pix[j] = r.Pix[i]
			out.Pix[j+1] = r.Pix[i+1]
			out.Pix[j+2] = r.Pix[i+2]
			out.Pix[j+3] = 0xff
		}
		return out, nil
	case contracts.ModeRGBA:
		src := &image.NRGBA{Pix: r.Pix, Stride: r.Width * 4, Rect: rect}
		out := image.NewRGBA(rect)
		draw.Draw(out, rect, image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(out, rect, src, image.Point{}, draw.Over)
		return out, nil
	}
	return nil, fmt.Errorf("unsupported pixel mode %q", r.Mode)
}
