package domain

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"holiday.jpg", CategoryImage},
		{"HOLIDAY.JPG", CategoryImage},
		{"scan.tiff", CategoryImage},
		{"pic.webp", CategoryImage},
		{"song.mp3", CategoryAudio},
		{"track.FLAC", CategoryAudio},
		{"voice.wav", CategoryAudio},
		{"clip.mp4", CategoryVideo},
		{"movie.MOV", CategoryVideo},
		{"show.mkv", CategoryVideo},
		{"readme.txt", CategoryGeneric},
		{"archive.zip", CategoryGeneric},
		{"noextension", CategoryGeneric},
	}

	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCategoryPrefix(t *testing.T) {
	if CategoryImage.Prefix() != "IMG_" {
		t.Fatalf("unexpected image prefix %q", CategoryImage.Prefix())
	}
	if CategoryAudio.Prefix() != "AUDIO_" {
		t.Fatalf("unexpected audio prefix %q", CategoryAudio.Prefix())
	}
	if CategoryVideo.Prefix() != "VIDEO_" {
		t.Fatalf("unexpected video prefix %q", CategoryVideo.Prefix())
	}
	if CategoryGeneric.Prefix() != "" {
		t.Fatalf("generic files must not carry a prefix")
	}
}
