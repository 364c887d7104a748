package converter

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"heic2jpg/contracts"
)

type RasterImage = contracts.RasterImage
type ConversionResult = contracts.ConversionResult
type BatchSummary = contracts.BatchSummary
type ProgressFunc = contracts.ProgressFunc

// Decoder turns an image file into pixels.
type Decoder interface {
	Decode(path string) (RasterImage, error)
}

// Encoder writes pixels to outputPath.
type Encoder interface {
	Encode(img RasterImage, outputPath string) error
}

// Logger is the subset of logging.Logger the converter writes to.
type Logger interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Success(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})    {}
func (nopLogger) Error(string, ...interface{})   {}
func (nopLogger) Debug(string, ...interface{})   {}

func getJPEGName(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
}

// OutputPath maps a source file to <outputDir>/<base name>.jpg. Two sources
// with the same base name map to the same output and the later one wins.
func OutputPath(outputDir, source string) string {
	return filepath.Join(outputDir, getJPEGName(source))
}

// ConvertFile decodes source and writes it as JPEG into outputDir. Failures
// are returned inside the result, never as a panic or a separate error.
func ConvertFile(dec Decoder, enc Encoder, source, outputDir string) ConversionResult {
	img, err := dec.Decode(source)
	if err != nil {
		return ConversionResult{Source: source, Err: asDecodeError(source, err)}
	}
	out := OutputPath(outputDir, source)
	if err := enc.Encode(img, out); err != nil {
		return ConversionResult{Source: source, Err: asEncodeError(out, err)}
	}
	return ConversionResult{Source: source, Output: out}
}

// Converter runs batches with one decoder and one encoder.
type Converter struct {
	Decoder Decoder
	Encoder Encoder
	Log     Logger
}

func New(dec Decoder, enc Encoder, log Logger) *Converter {
	if log == nil {
		log = nopLogger{}
	}
	return &Converter{Decoder: dec, Encoder: enc, Log: log}
}

func (c *Converter) logger() Logger {
	if c.Log == nil {
		return nopLogger{}
	}
	return c.Log
}

func checkPreconditions(paths []string, outputDir string) error {
	if len(paths) == 0 {
		return &PreconditionError{Err: ErrNothingToConvert}
	}
	if outputDir == "" {
		return &PreconditionError{Err: ErrNoOutputDir}
	}
	stat, err := os.Stat(outputDir)
	if err != nil {
		return &PreconditionError{Reason: "output directory unavailable", Err: err}
	}
	if !stat.IsDir() {
		return &PreconditionError{Reason: "output path is not a directory: " + outputDir}
	}
	return nil
}

// Batch converts a fixed list of files one at a time. Callers that need to
// yield between files (an event loop) call Next themselves; everyone else
// uses RunBatch.
type Batch struct {
	conv    *Converter
	paths   []string
	next    int
	summary BatchSummary
}

// NewBatch validates the inputs and snapshots paths. Nothing is read or
// written until the first Next.
func (c *Converter) NewBatch(paths []string, outputDir string) (*Batch, error) {
	if err := checkPreconditions(paths, outputDir); err != nil {
		return nil, err
	}
	snapshot := make([]string, len(paths))
	copy(snapshot, paths)
	c.logger().Info("Converting %d file(s) into %s", len(snapshot), outputDir)
	return &Batch{
		conv:  c,
		paths: snapshot,
		summary: BatchSummary{
			OutputDir: outputDir,
			Results:   make([]ConversionResult, 0, len(snapshot)),
			StartedAt: time.Now(),
		},
	}, nil
}

// Next converts the next file. ok is false once every file has been handled.
func (b *Batch) Next() (result ConversionResult, ok bool) {
	if b.Done() {
		return ConversionResult{}, false
	}
	source := b.paths[b.next]
	b.next++

	log := b.conv.logger()
	log.Info("[%d/%d] %s", b.next, len(b.paths), filepath.Base(source))
	result = ConvertFile(b.conv.Decoder, b.conv.Encoder, source, b.summary.OutputDir)
	if result.OK() {
		log.Success("  -> %s", result.Output)
	} else {
		log.Error("  %v", result.Err)
	}

	b.summary.Results = append(b.summary.Results, result)
	if b.Done() {
		b.summary.FinishedAt = time.Now()
	}
	return result, true
}

func (b *Batch) Done() bool {
	return b.next >= len(b.paths)
}

func (b *Batch) Total() int {
	return len(b.paths)
}

func (b *Batch) Processed() int {
	return b.next
}

// Summary returns the results gathered so far, in input order.
func (b *Batch) Summary() BatchSummary {
	s := b.summary
	s.Results = append([]ConversionResult(nil), b.summary.Results...)
	if s.FinishedAt.IsZero() {
		s.FinishedAt = time.Now()
	}
	return s
}

// RunBatch converts every path into outputDir in order. One file failing
// never stops the rest. onProgress, if set, is called after each file.
// Only precondition failures are returned as an error.
func (c *Converter) RunBatch(paths []string, outputDir string, onProgress ProgressFunc) (BatchSummary, error) {
	b, err := c.NewBatch(paths, outputDir)
	if err != nil {
		return BatchSummary{}, err
	}
	for {
		result, ok := b.Next()
		if !ok {
			break
		}
		if onProgress != nil {
			onProgress(b.Processed(), b.Total(), result)
		}
	}
	s := b.Summary()
	c.logger().Info("Done: %d converted, %d failed", len(s.Converted()), len(s.Failed()))
	return s, nil
}
