package pdf_writer

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"path/filepath"

	"github.com/phpdave11/gofpdf"

	"heic2jpg/contracts"
)

type BatchSummary = contracts.BatchSummary

const (
	DefaultDPI   = 150
	captionMM    = 8.0
	failureWidth = 210.0
	failureHigh  = 297.0
)

type Options struct {
	// DPI maps JPEG pixels to page millimetres.
	DPI int
}

type pageSize struct {
	width  float64
	height float64
}

func pageForImage(pxWidth, pxHeight, dpi int) pageSize {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return pageSize{
		width:  float64(pxWidth) * 25.4 / float64(dpi),
		height: float64(pxHeight)*25.4/float64(dpi) + captionMM,
	}
}

func jpegSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func addImagePage(pdf *gofpdf.Fpdf, tr func(string) string, index int, res contracts.ConversionResult, dpi int) error {
	w, h, err := jpegSize(res.Output)
	if err != nil {
		return fmt.Errorf("reading %s: %w", res.Output, err)
	}
	page := pageForImage(w, h, dpi)

	f, err := os.Open(res.Output)
	if err != nil {
		return fmt.Errorf("opening %s: %w", res.Output, err)
	}
	defer f.Close()

	imageID := fmt.Sprintf("img_%d", index)
	opts := gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}

	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: page.width, Ht: page.height})
	pdf.RegisterImageOptionsReader(imageID, opts, f)
	pdf.ImageOptions(imageID, 0, 0, page.width, page.height-captionMM, false, opts, 0, "")

	pdf.SetXY(2, page.height-captionMM+1)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(page.width-4, captionMM-2, tr(filepath.Base(res.Source)+" -> "+filepath.Base(res.Output)), "", 0, "L", false, 0, "")
	return pdf.Error()
}

func addFailurePage(pdf *gofpdf.Fpdf, tr func(string) string, failed []contracts.ConversionResult) {
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: failureWidth, Ht: failureHigh})
	pdf.SetMargins(15, 15, 15)
	pdf.SetXY(15, 15)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Failed to convert:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, r := range failed {
		pdf.MultiCell(0, 5, tr(r.Message()), "", "L", false)
	}
}

// WriteContactSheet writes a PDF with one page per converted JPEG, each page
// sized to the picture, followed by a page listing failures when there are
// any. The JPEG data is embedded as is.
func WriteContactSheet(outputPath string, summary BatchSummary, opts Options) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "mm"})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("HEIC conversion "+summary.StartedAt.Format("2006-01-02 15:04"), false)
	pdf.SetCreator("heic2jpg", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	converted := summary.Converted()
	failed := summary.Failed()
	if len(converted) == 0 && len(failed) == 0 {
		return fmt.Errorf("empty batch, nothing to put on a contact sheet")
	}

	for i, res := range converted {
		if err := addImagePage(pdf, tr, i, res, opts.DPI); err != nil {
			pdf.Close()
			return err
		}
	}
	if len(failed) > 0 {
		addFailurePage(pdf, tr, failed)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("error saving PDF file: %w", err)
	}
	return nil
}
