// Package finder decides which files the tool will touch: it classifies source paths and builds
// (and expands) the glob pattern sets for the supported source image formats.
package finder

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// globMetaChars are the characters that make a pattern a real glob (as opposed to a literal
// file name).
const globMetaChars = `*?[{`

// A GlobSet is an ordered sequence of glob patterns anchored to a base directory. Patterns are
// slash-separated and relative to the base.
type GlobSet struct {
	base     string
	patterns []string
}

// Base returns the directory the set patterns are anchored to.
func (s GlobSet) Base() string { return s.base }

// Patterns returns the full (base-joined, slash-separated) pattern list, mostly for logging
// purposes.
func (s GlobSet) Patterns() []string {
	var out = make([]string, len(s.patterns))

	for i, p := range s.patterns {
		out[i] = filepath.ToSlash(s.base) + "/" + p
	}

	return out
}

// Empty reports whether the set contains no patterns at all.
func (s GlobSet) Empty() bool { return len(s.patterns) == 0 }

// BuildSets constructs the PNG and the JPEG glob sets for the given source path.
//
// A directory source produces recursive patterns for every supported extension in both the
// lowercase and the uppercase spelling. A source classified as a file (IsFilePath) is routed
// into the matching set by its own extension (case-insensitively) as a single literal pattern;
// an unrecognized extension produces two empty sets.
func BuildSets(source string) (png, jpg GlobSet) {
	if IsFilePath(source) {
		var dir, name = filepath.Dir(source), filepath.Base(source)

		png, jpg = GlobSet{base: dir}, GlobSet{base: dir}

		switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
		case "png":
			png.patterns = []string{name}

		case "jpg", "jpeg":
			jpg.patterns = []string{name}
		}

		return
	}

	png = GlobSet{base: source, patterns: []string{"**/*.png", "**/*.PNG"}}
	jpg = GlobSet{base: source, patterns: []string{"**/*.jpg", "**/*.JPG", "**/*.jpeg", "**/*.JPEG"}}

	return
}

// Expand resolves the set into a sorted list of existing file paths. Matching is
// case-insensitive (both the pattern and the candidate path are lowercased before comparison),
// so every file is reported exactly once even when several case-variant patterns cover it.
//
// A missing base directory simply yields no matches, and unreadable directory entries are
// skipped silently, the same way a glob engine skips them. The walk stops early once the passed
// context is canceled.
func (s GlobSet) Expand(ctx context.Context) ([]string, error) {
	if s.Empty() {
		return nil, nil
	}

	var (
		seen  = make(map[string]struct{}, 8)
		found = make([]string, 0, 8)
	)

	var include = func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			found = append(found, path)
		}
	}

	var globs = make([]string, 0, len(s.patterns))

	for _, pattern := range s.patterns {
		if strings.ContainsAny(pattern, globMetaChars) {
			globs = append(globs, strings.ToLower(pattern))

			continue
		}

		// a meta-free pattern is a literal name, one stat call resolves it
		full := filepath.Join(s.base, filepath.FromSlash(pattern))

		if info, err := os.Stat(full); err == nil && info.Mode().IsRegular() {
			include(full)
		}
	}

	if len(globs) > 0 {
		err := filepath.WalkDir(s.base, func(path string, d fs.DirEntry, walkErr error) error {
			if ctx.Err() != nil {
				return filepath.SkipAll
			}

			if walkErr != nil || d.IsDir() {
				return nil
			}

			rel, relErr := filepath.Rel(s.base, path)
			if relErr != nil {
				return nil
			}

			rel = strings.ToLower(filepath.ToSlash(rel))

			for _, pattern := range globs {
				if ok, _ := doublestar.Match(pattern, rel); ok {
					include(path)

					break
				}
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Strings(found)

	return found, nil
}
