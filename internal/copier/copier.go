// Package copier mirrors the non-image rest of the source directory into the target one.
package copier

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	cp "github.com/otiai10/copy"

	"github.com/growdashtech/webpconvert/internal/logger"
)

// convertedExtensions are the extension spellings the conversion globs cover (plus the `webp`
// one the conversion produces). Files with exactly these extensions are not copied; any other
// spelling (e.g. `.Png`) does not count and the file is copied as-is.
var convertedExtensions = map[string]struct{}{ //nolint:gochecknoglobals
	"png": {}, "PNG": {},
	"jpg": {}, "JPG": {},
	"jpeg": {}, "JPEG": {},
	"webp": {}, "WEBP": {},
}

// Error wraps a copying failure. Copying is a best-effort companion to the conversion, so the
// caller is expected to report this error without failing the whole run.
type Error struct{ Err error }

// Error returns error in a string representation.
func (e *Error) Error() string { return "files copying failed: " + e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error { return e.Err }

// Copier copies the source directory tree (except the image files the conversion handles) into
// the target directory, keeping the directory structure.
type Copier struct {
	log logger.Logger
}

// New creates new Copier instance.
func New(log logger.Logger) *Copier { return &Copier{log: log} }

// Run copies the source directory content into the target one. A source that is not a directory
// is skipped without an error, and a target nested inside the source is excluded from the walk.
// All returned errors are of the *Error kind.
func (c *Copier) Run(ctx context.Context, source, target string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Err: err}
	}

	if stat, err := os.Stat(source); err != nil {
		return &Error{Err: err}
	} else if !stat.IsDir() {
		c.log.Debug("Nothing to copy (the source is not a directory)")

		return nil
	}

	c.log.Debug("Copying the non-image files", "from="+source, "to="+target)

	var cleanTarget = filepath.Clean(target)

	// the walk can re-discover the target only when it sits inside the source tree
	var targetInSource = within(cleanTarget, filepath.Clean(source))

	err := cp.Copy(source, target, cp.Options{
		Skip: func(info os.FileInfo, src, dest string) (bool, error) {
			// the target itself must never be walked
			if targetInSource && within(src, cleanTarget) {
				return true, nil
			}

			if info.IsDir() {
				return false, nil
			}

			if _, ok := convertedExtensions[strings.TrimPrefix(filepath.Ext(src), ".")]; ok {
				return true, nil
			}

			return false, nil
		},
	})
	if err != nil {
		return &Error{Err: err}
	}

	return nil
}

// within reports whether the path equals the base or lies somewhere under it.
func within(path, base string) bool {
	return path == base || strings.HasPrefix(path, base+string(filepath.Separator))
}
