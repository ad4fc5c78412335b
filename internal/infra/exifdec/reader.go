// Package exifdec decodes image metadata: the full EXIF tag set plus pixel
// dimensions for formats without EXIF support.
package exifdec

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
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

	values := make(map[string]string)

	x, exifErr := goexif.Decode(file)
	if exifErr == nil {
		collector := fieldCollector(values)
		if err := x.Walk(collector); err != nil {
			return nil, err
		}
	}

	if _, err := file.Seek(0, 0); err != nil {
		return nil, err
	}
	cfg, format, cfgErr := image.DecodeConfig(file)
	if cfgErr == nil {
		values["Width"] = fmt.Sprintf("%d", cfg.Width)
		values["Height"] = fmt.Sprintf("%d", cfg.Height)
		values["Format"] = format
	}

	if exifErr != nil && cfgErr != nil {
		return nil, fmt.Errorf("image decode: %w", exifErr)
	}
	return values, nil
}

// fieldCollector gathers every EXIF field into the value map.
type fieldCollector map[string]string

func (c fieldCollector) Walk(name goexif.FieldName, tag *tiff.Tag) error {
	// MakerNote is an opaque vendor blob, useless in a text report.
	if name == goexif.MakerNote {
		return nil
	}
	c[string(name)] = tagValue(tag)
	return nil
}

func tagValue(tag *tiff.Tag) string {
	if val, err := tag.StringVal(); err == nil {
		return strings.TrimSpace(val)
	}
	return tag.String()
}
