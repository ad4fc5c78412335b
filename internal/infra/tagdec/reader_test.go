package tagdec

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeRejectsUntaggedBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.mp3")
	if err := os.WriteFile(path, []byte("not audio data at all"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := (Reader{}).Decode(context.Background(), path); err == nil {
		t.Fatalf("expected decode error for non-audio bytes")
	}
}

func TestDecodeRejectsInvalidWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.wav")
	if err := os.WriteFile(path, []byte("RIFFxxxx not a wave"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := (Reader{}).Decode(context.Background(), path); err == nil {
		t.Fatalf("expected decode error for invalid wav")
	}
}

func TestDecodeHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (Reader{}).Decode(ctx, "irrelevant.mp3"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
