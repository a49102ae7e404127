package finder

import (
	"path/filepath"
	"strings"
)

// IsFilePath reports whether the given path looks like a path to a file rather than to a
// directory. The check is purely syntactic (no filesystem calls are made): a path counts as a
// file when its last segment carries an extension token, i.e. a non-empty name part followed by
// a dot and a non-empty extension part.
//
// As a consequence, extension-less files (`Makefile`) and dotfiles (`.gitignore`) are classified
// as directories, while dotted directory names (`backup.d`) are classified as files.
func IsFilePath(path string) bool {
	if path == "" {
		return false
	}

	// a trailing separator explicitly marks a directory
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return false
	}

	var base = filepath.Base(path)

	dot := strings.LastIndexByte(base, '.')

	return dot > 0 && dot < len(base)-1
}
