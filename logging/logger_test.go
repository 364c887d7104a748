package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"heic2jpg/contracts"
)

func TestNew_NoFile(t *testing.T) {
	l, err := New(contracts.Settings{LogColor: contracts.ColorNever})
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
}

func TestNew_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "heic2jpg.log")
	l, err := New(contracts.Settings{LogFile: path, LogColor: contracts.ColorNever})
	if err != nil {
		t.Fatal(err)
	}
	l.Quiet()
	l.Info("to file")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(path)
	if !bytes.Contains(b, []byte("[INFO] to file")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestDebugGated(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written with debug off: %q", buf.String())
	}

	NewWriter(&buf, true).Debug("shown %d", 1)
	if !strings.Contains(buf.String(), "[DEBUG] shown 1") {
		t.Errorf("got %q", buf.String())
	}
}

func TestQuietSuppressesConsole(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, false)
	l.Quiet()
	l.Error("nothing")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}
