package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"metascan/internal/domain"
	appErrors "metascan/internal/errors"
	"metascan/internal/logging"
)

// Scanner drives a scan: walk the tree, classify and decode every file,
// stream one directory at a time into the report sink. A failing file or
// unreadable subdirectory is recorded and never aborts the batch; only a
// bad root or a report write error is fatal.
type Scanner struct {
	FS         FileSystem
	Decoders   map[domain.Category]Decoder
	Rules      domain.IgnoreRules
	Workers    int
	Logger     logging.Logger
	OnProgress ProgressFunc
}

// dirSet collects the files of one directory during the walk phase.
type dirSet struct {
	relPath string
	files   []string
	err     error
}

// result pairs an outcome with the key conflicts its merge produced.
type result struct {
	outcome   domain.Outcome
	conflicts []string
}

// Scan traverses root depth-first in lexical order and returns the scan
// summary. Directories are handed to sink in walk order; outcomes within a
// directory are sorted by file name, so the report is reproducible even
// with parallel extraction.
func (s *Scanner) Scan(ctx context.Context, root string, sink ReportSink) (domain.Summary, error) {
	if s.FS == nil || sink == nil {
		return domain.Summary{}, errors.New("scanner requires FS and sink")
	}

	stop := s.Logger.Measure("Scanning " + root)
	defer stop()

	summary := domain.Summary{Root: root}

	dirs, ignored, err := s.walk(ctx, root)
	if err != nil {
		return summary, err
	}
	summary.FilesIgnored = ignored

	total := 0
	for _, ds := range dirs {
		total += len(ds.files)
	}
	s.Logger.Verbosef("Found %d files in %d directories (%d ignored)", total, len(dirs), ignored)

	done := 0
	for _, ds := range dirs {
		if ds.err != nil {
			summary.DirFailures++
			s.Logger.Warnf("cannot read directory %s: %v", ds.relPath, ds.err)
			res := domain.DirResult{
				RelPath: ds.relPath,
				Err:     appErrors.Wrap(appErrors.AccessDenied, "readdir", ds.relPath, ds.err),
			}
			if err := sink.WriteDirectory(res); err != nil {
				return summary, appErrors.Wrap(appErrors.WriteFailure, "report", ds.relPath, err)
			}
			continue
		}

		res, err := s.extractDir(ctx, root, ds, &summary, func(i int) {
			if s.OnProgress != nil {
				s.OnProgress(done+i, total, ds.relPath)
			}
		})
		if err != nil {
			return summary, err
		}
		done += len(ds.files)

		if err := sink.WriteDirectory(res); err != nil {
			return summary, appErrors.Wrap(appErrors.WriteFailure, "report", ds.relPath, err)
		}
		summary.Directories++
	}

	return summary, nil
}

// walk enumerates root and groups file paths per directory, in walk order.
// An unreadable subdirectory is recorded on its dirSet and the walk carries
// on with its siblings; an error on the root itself is fatal.
func (s *Scanner) walk(ctx context.Context, root string) ([]*dirSet, int, error) {
	var dirs []*dirSet
	index := make(map[string]*dirSet)
	ignored := 0

	err := s.FS.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root || filepath.Clean(path) == filepath.Clean(root) {
				kind := appErrors.NotFound
				if errors.Is(walkErr, fs.ErrPermission) {
					kind = appErrors.AccessDenied
				}
				return appErrors.Wrap(kind, "walk", root, walkErr)
			}
			rel := relTo(root, path)
			if ds, ok := index[rel]; ok {
				ds.err = walkErr
			} else {
				ds := &dirSet{relPath: rel, err: walkErr}
				dirs = append(dirs, ds)
				index[rel] = ds
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if path != root && s.Rules.SkipDir(d.Name()) {
				return fs.SkipDir
			}
			rel := relTo(root, path)
			ds := &dirSet{relPath: rel}
			dirs = append(dirs, ds)
			index[rel] = ds
			return nil
		}

		if s.Rules.SkipFile(d.Name()) {
			ignored++
			return nil
		}

		rel := relTo(root, filepath.Dir(path))
		ds, ok := index[rel]
		if !ok {
			ds = &dirSet{relPath: rel}
			dirs = append(dirs, ds)
			index[rel] = ds
		}
		ds.files = append(ds.files, path)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return dirs, ignored, nil
}

// extractDir stats and decodes every file of one directory using a bounded
// worker pool, then restores lexical order by file name.
func (s *Scanner) extractDir(ctx context.Context, root string, ds *dirSet, summary *domain.Summary, progress func(int)) (domain.DirResult, error) {
	res := domain.DirResult{RelPath: ds.relPath}
	if len(ds.files) == 0 {
		return res, nil
	}

	workerCount := s.Workers
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(ds.files) {
		workerCount = len(ds.files)
	}

	jobs := make(chan string)
	results := make(chan result)

	for i := 0; i < workerCount; i++ {
		go func() {
			for path := range jobs {
				select {
				case results <- s.extract(ctx, root, path):
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range ds.files {
			select {
			case <-ctx.Done():
				return
			case jobs <- path:
			}
		}
	}()

	for i := range ds.files {
		var r result
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case r = <-results:
		}

		summary.FilesScanned++
		switch {
		case r.outcome.Err != nil:
			summary.StatFailures++
		case r.outcome.DecodeErr != nil:
			summary.DecodeFailures++
		case r.outcome.Target.Category != domain.CategoryGeneric:
			summary.Decoded++
		}
		for _, key := range r.conflicts {
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("duplicate metadata key %s in %s, kept last value", key, r.outcome.Target.RelPath))
		}

		res.Outcomes = append(res.Outcomes, r.outcome)
		progress(i + 1)
	}

	sort.Slice(res.Outcomes, func(i, j int) bool {
		return res.Outcomes[i].Target.Name < res.Outcomes[j].Target.Name
	})
	sort.Strings(summary.Warnings)

	return res, nil
}

// extract produces the single outcome for one file. Stat failures yield a
// recorded failure, decode failures yield a record with filesystem keys plus
// the decode error. Neither is fatal.
func (s *Scanner) extract(ctx context.Context, root, path string) result {
	target := domain.NewScanTarget(path, relTo(root, path))

	info, err := s.FS.Stat(path)
	if err != nil {
		return result{outcome: domain.Outcome{
			Target: target,
			Err:    appErrors.Wrap(appErrors.StatFailure, "stat", target.RelPath, err),
		}}
	}

	rec := domain.NewFileRecord(target, info.Size(), s.FS.Created(info), info.ModTime())
	out := domain.Outcome{Target: target, Record: rec}

	if target.Category == domain.CategoryGeneric {
		return result{outcome: out}
	}

	dec := s.Decoders[target.Category]
	if dec == nil {
		out.DecodeErr = fmt.Errorf("no %s decoder configured", target.Category)
		return result{outcome: out}
	}

	values, decodeErr := dec.Decode(ctx, path)
	if decodeErr != nil {
		out.DecodeErr = decodeErr
		return result{outcome: out}
	}

	return result{outcome: out, conflicts: rec.Merge(target.Category.Prefix(), values)}
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
