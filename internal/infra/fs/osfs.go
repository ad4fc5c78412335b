package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// OSFS adapts the operating system to the scanner's FileSystem port.
type OSFS struct{}

// WalkDir traverses root depth-first in lexical order. A root that is
// itself a symlink is resolved and walked as the directory it points to;
// directory symlinks below the root are reported as entries but never
// descended into, so a symlink cycle cannot recurse.
func (OSFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil || resolved == root {
		return filepath.WalkDir(root, fn)
	}
	return filepath.WalkDir(resolved, func(path string, d fs.DirEntry, walkErr error) error {
		if rel, relErr := filepath.Rel(resolved, path); relErr == nil {
			path = filepath.Join(root, rel)
		}
		return fn(path, d, walkErr)
	})
}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Created reports the platform's creation timestamp for the file, falling
// back to the modification time where none is available.
func (OSFS) Created(info fs.FileInfo) time.Time {
	return createdTime(info)
}
