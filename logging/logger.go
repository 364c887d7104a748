// Package logging provides leveled, optionally colored log lines with an
// optional append-only file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"heic2jpg/contracts"
)

const (
	red    = "\033[1;91m"
	green  = "\033[1;92m"
	yellow = "\033[1;93m"
	blue   = "\033[1;94m"
	cyan   = "\033[1;96m"
	reset  = "\033[0m"
)

type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	file    *os.File
	color   bool
	debug   bool
	console bool
}

// New builds a logger from settings. Call Close when LogFile was set.
func New(s contracts.Settings) (*Logger, error) {
	l := &Logger{
		out:     os.Stdout,
		errOut:  os.Stderr,
		color:   colorEnabled(s.LogColor, os.Stdout),
		debug:   s.Debug,
		console: true,
	}
	if s.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(s.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

// NewWriter logs plain lines to w only. Used by tests and by callers that
// capture output.
func NewWriter(w io.Writer, debug bool) *Logger {
	return &Logger{out: w, errOut: w, debug: debug, console: true}
}

// Quiet stops console output; the file sink, if any, keeps receiving lines.
// The TUI owns the terminal, so it logs this way.
func (l *Logger) Quiet() {
	l.mu.Lock()
	l.console = false
	l.mu.Unlock()
}

func colorEnabled(mode contracts.ColorMode, f *os.File) bool {
	switch mode {
	case contracts.ColorAlways:
		return true
	case contracts.ColorNever:
		return false
	}
	return isTerminal(f) && os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	plain := ts + " [" + level + "] " + text + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.console {
		out := l.out
		if level == "ERROR" {
			out = l.errOut
		}
		if l.color {
			_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+reset+" "+text+"\n")
		} else {
			_, _ = io.WriteString(out, plain)
		}
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", blue, fmt.Sprintf(format, args...))
}

func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", green, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", yellow, fmt.Sprintf(format, args...))
}

// Error also goes to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", red, fmt.Sprintf(format, args...))
}

// Debug is a no-op unless the logger was built with debug on.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.line("DEBUG", cyan, fmt.Sprintf(format, args...))
}
