package utils

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/otiai10/copy"
)

// RemoveTree deletes path recursively. A missing path is not an error.
func RemoveTree(path string) error {
	if err := os.RemoveAll(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CopyTree copies the directory src to dst, which must not exist yet.
// Symlinks are followed and copied as real files and directories.
func CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("copy source %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("copy source %s is not a directory", src)
	}
	if _, err := os.Lstat(dst); err == nil {
		return &fs.PathError{Op: "copy", Path: dst, Err: fs.ErrExist}
	} else if !os.IsNotExist(err) {
		return err
	}

	return copy.Copy(src, dst, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Deep
		},
		PreserveTimes: true,
	})
}
