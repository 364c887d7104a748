package contracts

type PixelMode string

const (
	ModeGray PixelMode = "L"
	ModeRGB  PixelMode = "RGB"
	ModeRGBA PixelMode = "RGBA"
)

// Channels returns bytes per pixel, 0 for an unknown mode.
func (m PixelMode) Channels() int {
	switch m {
	case ModeGray:
		return 1
	case ModeRGB:
		return 3
	case ModeRGBA:
		return 4
	}
	return 0
}

// RasterImage is a decoded picture: row-major, tightly packed pixels.
type RasterImage struct {
	Mode   PixelMode
	Width  int
	Height int
	Pix    []byte
}

func (r RasterImage) Stride() int {
	return r.Width * r.Mode.Channels()
}

// Valid reports whether Pix holds exactly Width*Height pixels of Mode.
func (r RasterImage) Valid() bool {
	if r.Width <= 0 || r.Height <= 0 || r.Mode.Channels() == 0 {
		return false
	}
	return len(r.Pix) == r.Stride()*r.Height
}

type ImageMetadata struct {
	Make        string
	Model       string
	DateTime    string
	Orientation int
}
