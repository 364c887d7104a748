package converter

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heic2jpg/contracts"
)

func TestFromImageModes(t *testing.T) {
	t.Run("gray", func(t *testing.T) {
		g := image.NewGray(image.Rect(0, 0, 3, 2))
		g.SetGray(1, 1, color.Gray{Y: 77})
		r := FromImage(g)
		assert.Equal(t, contracts.ModeGray, r.Mode)
		assert.True(t, r.Valid())
		assert.Equal(t, byte(77), r.Pix[1*3+1])
	})

	t.Run("opaque color becomes RGB", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				img.Set(x, y, color.RGBA{10, 20, 30, 255})
			}
		}
		r := FromImage(img)
		assert.Equal(t, contracts.ModeRGB, r.Mode)
		assert.Equal(t, []byte{10, 20, 30}, r.Pix[:3])
		assert.True(t, r.Valid())
	})

	t.Run("translucent becomes RGBA", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 4})
		r := FromImage(img)
		assert.Equal(t, contracts.ModeRGBA, r.Mode)
		assert.Equal(t, []byte{1, 2, 3, 4}, r.Pix)
	})

	t.Run("offset bounds", func(t *testing.T) {
		g := image.NewGray(image.Rect(0, 0, 4, 4)).SubImage(image.Rect(2, 2, 4, 4)).(*image.Gray)
		g.SetGray(2, 2, color.Gray{Y: 9})
		r := FromImage(g)
		assert.Equal(t, 2, r.Width)
		assert.Equal(t, byte(9), r.Pix[0])
	})
}

func TestToImageRejectsBadRaster(t *testing.T) {
	_, err := ToImage(RasterImage{Mode: contracts.ModeRGB, Width: 2, Height: 2, Pix: []byte{1}})
	assert.Error(t, err)
	_, err = ToImage(RasterImage{Mode: "CMYK", Width: 1, Height: 1, Pix: []byte{1, 2, 3, 4}})
	assert.Error(t, err)
}

func TestJPEGEncoderRGBAFlattensOnWhite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a.jpg")
	raster := RasterImage{Mode: contracts.ModeRGBA, Width: 8, Height: 8, Pix: make([]byte, 8*8*4)}
	require.NoError(t, JPEGEncoder{Quality: 100}.Encode(raster, out))

	r, g, b := readCenter(t, out)
	assert.Greater(t, r, uint32(240))
	assert.Greater(t, g, uint32(240))
	assert.Greater(t, b, uint32(240))
}

func TestJPEGEncoderUnwritablePath(t *testing.T) {
	err := JPEGEncoder{}.Encode(solid(1, 1, 0, 0, 0), filepath.Join(t.TempDir(), "no", "such", "dir", "a.jpg"))
	var ee *EncodeError
	require.ErrorAs(t, err, &ee)
}
