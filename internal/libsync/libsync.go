// Package libsync mirrors the engine's native library bundle into a project.
package libsync

import (
	"fmt"
	"os"
	"path/filepath"

	"luna2d-deploy/internal/config"
	"luna2d-deploy/internal/utils"
)

// BundleName is the library bundle copied from <engine>/lib. The name is
// historical: every project type receives the same bundle.
const BundleName = "wp"

// Result holds the outcome of a library sync.
type Result struct {
	Source   string
	Dest     string
	Files    int
	Checksum string // DirChecksum of Dest after the copy
}

// SourceDir returns <engineRoot>/lib/wp.
func SourceDir(engineRoot string) string {
	return filepath.Join(engineRoot, "lib", BundleName)
}

// Sync replaces <projectPath>/.luna2d/libs with a fresh copy of the engine's
// library bundle. The old copy is only removed once the source is known to
// exist.
func Sync(projectPath, engineRoot string) (*Result, error) {
	src := SourceDir(engineRoot)
	dst := config.LibsDir(projectPath)

	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("library bundle not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library bundle %s is not a directory", src)
	}

	if err := utils.RemoveTree(dst); err != nil {
		return nil, fmt.Errorf("failed to remove old libraries: %w", err)
	}
	if err := utils.CopyTree(src, dst); err != nil {
		return nil, fmt.Errorf("failed to copy libraries: %w", err)
	}

	files, err := utils.ListFiles(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to list libraries: %w", err)
	}
	sum, err := utils.DirChecksum(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum libraries: %w", err)
	}

	return &Result{Source: src, Dest: dst, Files: len(files), Checksum: sum}, nil
}
