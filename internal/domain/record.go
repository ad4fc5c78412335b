package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Filesystem-level record keys, present for every successfully stat'ed file.
const (
	KeySize      = "FILE_SIZE"
	KeyCreated   = "FILE_CREATED"
	KeyModified  = "FILE_MODIFIED"
	KeyPath      = "FILE_PATH"
	KeyExtension = "FILE_EXTENSION"
)

// ScanTarget is a file yielded by the walker with its resolved category.
type ScanTarget struct {
	Path     string // absolute or root-joined path
	RelPath  string // path relative to the scan root
	Name     string
	Category Category
}

func NewScanTarget(path, relPath string) ScanTarget {
	name := filepath.Base(path)
	return ScanTarget{
		Path:     path,
		RelPath:  relPath,
		Name:     name,
		Category: Classify(name),
	}
}

// Record maps metadata keys to rendered values. Filesystem keys use the
// FILE_ namespace, decoder keys carry the category prefix.
type Record map[string]string

// Merge copies src into the record under the given prefix. A key that is
// already present is overwritten (last write wins) and reported back so the
// caller can surface a warning.
func (r Record) Merge(prefix string, src map[string]string) []string {
	var conflicts []string
	for key, value := range src {
		full := prefix + key
		if _, ok := r[full]; ok {
			conflicts = append(conflicts, full)
		}
		r[full] = value
	}
	sort.Strings(conflicts)
	return conflicts
}

// SortedKeys returns the record's keys in lexical order for deterministic output.
func (r Record) SortedKeys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// NewFileRecord builds the filesystem-level record every scanned file starts from.
func NewFileRecord(target ScanTarget, size int64, created, modified time.Time) Record {
	return Record{
		KeySize:      fmt.Sprintf("%d bytes", size),
		KeyCreated:   created.UTC().Format(time.RFC3339),
		KeyModified:  modified.UTC().Format(time.RFC3339),
		KeyPath:      target.RelPath,
		KeyExtension: strings.ToLower(filepath.Ext(target.Name)),
	}
}

// Outcome is the single result produced for every non-ignored file. Exactly
// one of the following holds: Err is set and Record is nil (the file could
// not be stat'ed), or Record is set with DecodeErr optionally recording a
// non-fatal decoder failure.
type Outcome struct {
	Target    ScanTarget
	Record    Record
	DecodeErr error
	Err       error
}

// DirResult groups the outcomes of one directory, ordered by file name.
// Err is set when the directory itself could not be read; its subtree is
// then absent but the scan continues with siblings.
type DirResult struct {
	RelPath  string
	Outcomes []Outcome
	Err      error
}

// Summary accumulates scan-wide counters for the process log.
type Summary struct {
	Root           string
	ReportPath     string
	Directories    int
	FilesScanned   int
	FilesIgnored   int
	Decoded        int
	DecodeFailures int
	StatFailures   int
	DirFailures    int
	Warnings       []string
}
