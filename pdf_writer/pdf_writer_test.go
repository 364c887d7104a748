package pdf_writer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"heic2jpg/contracts"
)

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatal(err)
	}
}

func TestPageForImage(t *testing.T) {
	p := pageForImage(300, 150, 150)
	if math.Abs(p.width-50.8) > 1e-9 {
		t.Errorf("width = %.2f, want 50.80", p.width)
	}
	if math.Abs(p.height-(25.4+captionMM)) > 1e-9 {
		t.Errorf("height = %.2f, want %.2f", p.height, 25.4+captionMM)
	}

	def := pageForImage(300, 150, 0)
	if def != p {
		t.Errorf("zero DPI should fall back to %d", DefaultDPI)
	}
}

func TestWriteContactSheet(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.jpg")
	b := filepath.Join(dir, "b.jpg")
	writeJPEG(t, a, 64, 48)
	writeJPEG(t, b, 32, 64)

	summary := contracts.BatchSummary{
		OutputDir: dir,
		StartedAt: time.Now(),
		Results: []contracts.ConversionResult{
			{Source: "/in/a.heic", Output: a},
			{Source: "/in/bad.heic", Err: errors.New("decode failed")},
			{Source: "/in/b.heic", Output: b},
		},
	}

	out := filepath.Join(dir, "sheet.pdf")
	if err := WriteContactSheet(out, summary, Options{}); err != nil {
		t.Fatalf("WriteContactSheet failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("missing PDF header")
	}
	if !bytes.Contains(data, []byte("/Count 3")) {
		t.Errorf("expected 3 pages (2 images + failures)")
	}
	if !bytes.Contains(data, []byte("/DCTDecode")) {
		t.Errorf("expected JPEG images to be embedded with DCTDecode")
	}
}

func TestWriteContactSheetMissingOutput(t *testing.T) {
	dir := t.TempDir()
	summary := contracts.BatchSummary{
		Results: []contracts.ConversionResult{
			{Source: "/in/a.heic", Output: filepath.Join(dir, "gone.jpg")},
		},
	}
	if err := WriteContactSheet(filepath.Join(dir, "sheet.pdf"), summary, Options{}); err == nil {
		t.Fatal("expected error for missing JPEG")
	}
}

func TestWriteContactSheetEmpty(t *testing.T) {
	err := WriteContactSheet(filepath.Join(t.TempDir(), "sheet.pdf"), contracts.BatchSummary{}, Options{})
	if err == nil {
		t.Fatal("expected error for empty batch")
	}
}
