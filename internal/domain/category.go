package domain

import (
	"path/filepath"
	"strings"
)

// Category is the coarse file-type classification that selects a decoder.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryImage
	CategoryAudio
	CategoryVideo
)

func (c Category) String() string {
	switch c {
	case CategoryImage:
		return "image"
	case CategoryAudio:
		return "audio"
	case CategoryVideo:
		return "video"
	default:
		return "generic"
	}
}

// Prefix returns the namespace prepended to decoder keys of this category.
func (c Category) Prefix() string {
	switch c {
	case CategoryImage:
		return "IMG_"
	case CategoryAudio:
		return "AUDIO_"
	case CategoryVideo:
		return "VIDEO_"
	default:
		return ""
	}
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".tiff": true, ".tif": true,
	".webp": true, ".heic": true, ".bmp": true, ".gif": true,
}

var audioExtensions = map[string]bool{
	".mp3": true, ".flac": true, ".m4a": true, ".ogg": true,
	".wav": true, ".aac": true, ".wma": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".m4v": true, ".avi": true,
	".mkv": true, ".wmv": true, ".flv": true, ".webm": true,
}

// Classify maps a file name to a category by extension, case-insensitive.
// Unknown extensions are Generic: filesystem metadata only, no decode attempt.
func Classify(name string) Category {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case imageExtensions[ext]:
		return CategoryImage
	case audioExtensions[ext]:
		return CategoryAudio
	case videoExtensions[ext]:
		return CategoryVideo
	default:
		return CategoryGeneric
	}
}
