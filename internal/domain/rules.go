package domain

import "strings"

// IgnoreRules holds the directory and file names excluded from a scan.
// It is built once at startup and read-only afterwards; the scanner receives
// it by value instead of consulting process-wide configuration.
type IgnoreRules struct {
	Dirs       map[string]bool
	Files      map[string]bool
	SkipHidden bool
}

// DefaultIgnoreRules excludes common tooling directories and OS droppings.
func DefaultIgnoreRules() IgnoreRules {
	return IgnoreRules{
		Dirs: map[string]bool{
			".git":         true,
			"__pycache__":  true,
			".venv":        true,
			"node_modules": true,
		},
		Files: map[string]bool{
			".DS_Store":   true,
			"Thumbs.db":   true,
			"desktop.ini": true,
		},
		SkipHidden: true,
	}
}

func (r IgnoreRules) SkipDir(name string) bool {
	if r.SkipHidden && strings.HasPrefix(name, ".") {
		return true
	}
	return r.Dirs[name]
}

func (r IgnoreRules) SkipFile(name string) bool {
	if r.SkipHidden && strings.HasPrefix(name, ".") {
		return true
	}
	// The report must never be scanned into itself.
	if strings.HasSuffix(strings.ToLower(name), ".log") {
		return true
	}
	return r.Files[name]
}

// Extend returns a copy of the rules with additional names merged in.
func (r IgnoreRules) Extend(dirs, files []string) IgnoreRules {
	out := IgnoreRules{
		Dirs:       make(map[string]bool, len(r.Dirs)+len(dirs)),
		Files:      make(map[string]bool, len(r.Files)+len(files)),
		SkipHidden: r.SkipHidden,
	}
	for name := range r.Dirs {
		out.Dirs[name] = true
	}
	for name := range r.Files {
		out.Files[name] = true
	}
	for _, name := range dirs {
		out.Dirs[name] = true
	}
	for _, name := range files {
		out.Files[name] = true
	}
	return out
}
