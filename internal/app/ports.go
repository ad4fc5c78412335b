package app

import (
	"context"
	"io/fs"
	"time"

	"metascan/internal/domain"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	// Created returns the closest thing the platform has to a creation
	// timestamp for the stat'ed file.
	Created(info fs.FileInfo) time.Time
}

// Decoder extracts format-specific metadata from a file. Keys are returned
// unprefixed; the aggregator applies the category namespace.
type Decoder interface {
	Decode(ctx context.Context, path string) (map[string]string, error)
}

// ReportSink receives one completed directory at a time so a partial scan
// still leaves a usable report.
type ReportSink interface {
	WriteDirectory(res domain.DirResult) error
}

// ProgressFunc is called during extraction to report progress.
type ProgressFunc func(done, total int, dir string)
