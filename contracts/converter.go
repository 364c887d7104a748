package contracts

import (
	"fmt"
	"time"
)

// ConversionResult is the outcome for one source file. Err == nil means
// success and Output names the written JPEG.
type ConversionResult struct {
	Source string
	Output string
	Err    error
}

func (r ConversionResult) OK() bool {
	return r.Err == nil
}

// Message is the user-facing failure line, empty on success.
func (r ConversionResult) Message() string {
	if r.Err == nil {
		return ""
	}
	return fmt.Sprintf("Error converting %s: %v", r.Source, r.Err)
}

type BatchSummary struct {
	OutputDir  string
	Results    []ConversionResult
	StartedAt  time.Time
	FinishedAt time.Time
}

func (s BatchSummary) Converted() []ConversionResult {
	out := make([]ConversionResult, 0, len(s.Results))
	for _, r := range s.Results {
		if r.OK() {
			out = append(out, r)
		}
	}
	return out
}

func (s BatchSummary) Failed() []ConversionResult {
	out := make([]ConversionResult, 0)
	for _, r := range s.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

func (s BatchSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// ProgressFunc is called after every file with the number processed so far.
type ProgressFunc func(done, total int, last ConversionResult)
