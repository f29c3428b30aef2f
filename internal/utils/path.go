package utils

import (
	"path/filepath"
	"strings"
)

// NormalizeSlashes converts both slash styles to the host separator and
// cleans the result, so paths written on Windows work elsewhere and back.
func NormalizeSlashes(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(filepath.FromSlash(strings.ReplaceAll(path, "\\", "/")))
}

// ResolveSymlink resolves symlinks on a path.
// Falls back to the original path on error.
func ResolveSymlink(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// RealPath returns the absolute, symlink-free form of path.
func RealPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
