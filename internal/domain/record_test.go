package domain

import (
	"testing"
	"time"
)

func TestNewFileRecordKeys(t *testing.T) {
	target := NewScanTarget("/data/sub/photo.JPG", "sub/photo.JPG")
	when := time.Date(2024, 10, 2, 12, 0, 0, 0, time.UTC)

	rec := NewFileRecord(target, 2048, when, when)

	if rec[KeySize] != "2048 bytes" {
		t.Errorf("unexpected size value %q", rec[KeySize])
	}
	if rec[KeyPath] != "sub/photo.JPG" {
		t.Errorf("unexpected path value %q", rec[KeyPath])
	}
	if rec[KeyExtension] != ".jpg" {
		t.Errorf("expected lowercased extension, got %q", rec[KeyExtension])
	}
	if rec[KeyModified] != "2024-10-02T12:00:00Z" {
		t.Errorf("expected RFC3339 UTC timestamp, got %q", rec[KeyModified])
	}
	if len(rec) != 5 {
		t.Errorf("expected exactly the filesystem keys, got %v", rec)
	}
}

func TestRecordMergePrefixesKeys(t *testing.T) {
	rec := Record{KeyPath: "a.jpg"}

	conflicts := rec.Merge("IMG_", map[string]string{"Model": "X100V"})
	if len(conflicts) != 0 {
		t.Fatalf("unexpected conflicts %v", conflicts)
	}
	if rec["IMG_Model"] != "X100V" {
		t.Fatalf("expected prefixed key, got %v", rec)
	}
}

func TestRecordMergeLastWriteWins(t *testing.T) {
	rec := Record{"IMG_Model": "old"}

	conflicts := rec.Merge("IMG_", map[string]string{"Model": "new"})
	if rec["IMG_Model"] != "new" {
		t.Fatalf("expected last write to win, got %q", rec["IMG_Model"])
	}
	if len(conflicts) != 1 || conflicts[0] != "IMG_Model" {
		t.Fatalf("expected conflict to be reported, got %v", conflicts)
	}
}

func TestRecordSortedKeys(t *testing.T) {
	rec := Record{"b": "2", "a": "1", "c": "3"}
	keys := rec.SortedKeys()
	want := []string{"a", "b", "c"}
	for i, key := range want {
		if keys[i] != key {
			t.Fatalf("expected sorted keys %v, got %v", want, keys)
		}
	}
}

func TestNewScanTargetClassifies(t *testing.T) {
	target := NewScanTarget("/data/song.mp3", "song.mp3")
	if target.Category != CategoryAudio {
		t.Fatalf("expected audio category, got %v", target.Category)
	}
	if target.Name != "song.mp3" {
		t.Fatalf("unexpected name %q", target.Name)
	}
}
