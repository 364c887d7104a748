package tests

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heic2jpg/contracts"
	"heic2jpg/converter"
	"heic2jpg/decoders"
	"heic2jpg/logging"
	"heic2jpg/pdf_writer"
)

func TestMain(m *testing.M) {
	decoders.StartVips(nil, false)
	code := m.Run()
	decoders.ShutdownVips()
	os.Exit(code)
}

// writeHEIC encodes a gradient as HEIF through libvips. The test is skipped
// when the local libvips has no HEIF encoder.
func writeHEIC(t *testing.T, path string, w, h int) {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.Set(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 90, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	ref, err := vips.NewImageFromBuffer(buf.Bytes())
	require.NoError(t, err)
	defer ref.Close()

	data, _, err := ref.ExportHeif(vips.NewHeifExportParams())
	if err != nil {
		t.Skipf("libvips cannot write HEIF here: %v", err)
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestVipsBatchToJPEGAndContactSheet(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	first := filepath.Join(inDir, "IMG_0001.heic")
	second := filepath.Join(inDir, "IMG_0002.HEIC")
	broken := filepath.Join(inDir, "broken.heic")
	writeHEIC(t, first, 64, 48)
	writeHEIC(t, second, 40, 80)
	require.NoError(t, os.WriteFile(broken, []byte("definitely not HEIF"), 0o644))

	var logBuf bytes.Buffer
	conv := converter.New(decoders.VipsDecoder{}, converter.JPEGEncoder{Quality: 85}, logging.NewWriter(&logBuf, false))

	var progress []int
	summary, err := conv.RunBatch([]string{first, broken, second}, outDir, func(done, total int, _ contracts.ConversionResult) {
		assert.Equal(t, 3, total)
		progress = append(progress, done)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, progress)

	require.Len(t, summary.Converted(), 2)
	require.Len(t, summary.Failed(), 1)
	assert.Equal(t, broken, summary.Failed()[0].Source)

	var de *converter.DecodeError
	assert.ErrorAs(t, summary.Failed()[0].Err, &de)

	for name, size := range map[string]image.Point{
		"IMG_0001.jpg": {64, 48},
		"IMG_0002.jpg": {40, 80},
	} {
		f, err := os.Open(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		cfg, err := jpeg.DecodeConfig(f)
		f.Close()
		require.NoError(t, err, name)
		assert.Equal(t, size, image.Point{cfg.Width, cfg.Height}, name)
	}

	sheet := filepath.Join(outDir, "sheet.pdf")
	require.NoError(t, pdf_writer.WriteContactSheet(sheet, summary, pdf_writer.Options{}))

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	require.NoError(t, api.ValidateFile(sheet, conf))

	pages, err := api.PageCountFile(sheet)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestVipsRejectsNonHEIF(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "plain.heic")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))
	require.NoError(t, os.WriteFile(pngPath, buf.Bytes(), 0o644))

	_, err := decoders.VipsDecoder{}.Decode(pngPath)
	require.Error(t, err)
	var de *converter.DecodeError
	assert.ErrorAs(t, err, &de)
}
