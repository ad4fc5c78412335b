// Package tagdec decodes audio metadata: ID3/Vorbis/MP4 tags for most
// formats, RIFF technicals for WAV files that carry no tag block.
package tagdec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
)

type Reader struct{}

func (Reader) Decode(ctx context.Context, path string) (map[string]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(path)) == ".wav" {
		return decodeWAV(file)
	}

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("audio tags: %w", err)
	}

	values := map[string]string{
		"Format":   string(meta.Format()),
		"FileType": string(meta.FileType()),
	}
	putNonEmpty(values, "Title", meta.Title())
	putNonEmpty(values, "Album", meta.Album())
	putNonEmpty(values, "Artist", meta.Artist())
	putNonEmpty(values, "AlbumArtist", meta.AlbumArtist())
	putNonEmpty(values, "Composer", meta.Composer())
	putNonEmpty(values, "Genre", meta.Genre())
	putNonEmpty(values, "Comment", meta.Comment())
	if year := meta.Year(); year != 0 {
		values["Year"] = fmt.Sprintf("%d", year)
	}
	if track, total := meta.Track(); track != 0 {
		values["Track"] = fmt.Sprintf("%d/%d", track, total)
	}
	if disc, total := meta.Disc(); disc != 0 {
		values["Disc"] = fmt.Sprintf("%d/%d", disc, total)
	}
	return values, nil
}

func decodeWAV(file *os.File) (map[string]string, error) {
	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("audio tags: not a valid wav file")
	}

	values := map[string]string{
		"Channels":   fmt.Sprintf("%d", decoder.NumChans),
		"SampleRate": fmt.Sprintf("%d", decoder.SampleRate),
		"BitDepth":   fmt.Sprintf("%d", decoder.BitDepth),
	}
	if dur, err := decoder.Duration(); err == nil {
		values["Duration"] = dur.Round(time.Millisecond).String()
	}
	return values, nil
}

func putNonEmpty(values map[string]string, key, value string) {
	if value != "" {
		values[key] = value
	}
}
