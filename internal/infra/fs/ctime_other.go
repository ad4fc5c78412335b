//go:build !linux

package fs

import (
	"io/fs"
	"time"
)

func createdTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
