package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfofWritesLine(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Infof("scanned %d files", 3)
	if buf.String() != "scanned 3 files\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestVerbosefSilentByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Verbosef("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestWarnfPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Warnf("something odd")
	if !strings.HasPrefix(buf.String(), "Warning: ") {
		t.Fatalf("expected warning prefix, got %q", buf.String())
	}
}

func TestNilWriterIsSafe(t *testing.T) {
	var logger Logger
	logger.Infof("dropped")
	logger.Warnf("dropped")
}
