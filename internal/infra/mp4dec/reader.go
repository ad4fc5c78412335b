// Package mp4dec decodes video container metadata. MP4-family containers
// (mp4, mov, m4v) are probed with go-mp4; anything else is reported as an
// unsupported container, which the aggregator records as a per-file failure.
package mp4dec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mp4 "github.com/abema/go-mp4"
)

var mp4Extensions = map[string]bool{
	".mp4": true, ".mov": true, ".m4v": true,
}

type Reader struct{}

func (Reader) Decode(ctx context.Context, path string) (map[string]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !mp4Extensions[ext] {
		return nil, fmt.Errorf("video probe: unsupported container %s", ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := mp4.Probe(file)
	if err != nil {
		return nil, fmt.Errorf("video probe: %w", err)
	}

	// Probe does not fail on arbitrary bytes; a file without an ftyp brand
	// or any track carries no mp4 box structure at all.
	brand := strings.TrimSpace(strings.TrimRight(string(info.MajorBrand[:]), "\x00"))
	if brand == "" && len(info.Tracks) == 0 {
		return nil, fmt.Errorf("video probe: no mp4 box structure in %s", filepath.Base(path))
	}

	values := map[string]string{
		"MajorBrand": brand,
		"Timescale":  fmt.Sprintf("%d", info.Timescale),
		"Tracks":     fmt.Sprintf("%d", len(info.Tracks)),
	}
	if info.Timescale > 0 {
		seconds := float64(info.Duration) / float64(info.Timescale)
		values["Duration"] = fmt.Sprintf("%.3fs", seconds)
	}

	for _, track := range info.Tracks {
		prefix := fmt.Sprintf("Track%d_", track.TrackID)
		values[prefix+"Codec"] = codecName(track.Codec)
		if track.AVC != nil {
			values[prefix+"Width"] = fmt.Sprintf("%d", track.AVC.Width)
			values[prefix+"Height"] = fmt.Sprintf("%d", track.AVC.Height)
		}
		if track.MP4A != nil {
			values[prefix+"Channels"] = fmt.Sprintf("%d", track.MP4A.ChannelCount)
		}
	}
	return values, nil
}

func codecName(codec mp4.Codec) string {
	switch codec {
	case mp4.CodecAVC1:
		return "avc1"
	case mp4.CodecMP4A:
		return "mp4a"
	default:
		return "unknown"
	}
}
