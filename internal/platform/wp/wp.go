// Package wp updates the Windows Phone / Windows universal app project that
// hosts a luna2d game.
//
// The native solution lives in <project>/<ProjectName>/ and carries one
// Package.appxmanifest per head project (<ProjectName>.Windows and
// <ProjectName>.WindowsPhone). The display name and package version in those
// manifests are kept in line with the game's config.luna2d.
package wp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"luna2d-deploy/internal/platform"
)

// Name is the platform identifier handled by this package.
const Name = "wp"

// ManifestFileName is the appx manifest inside each head project.
const ManifestFileName = "Package.appxmanifest"

var headSuffixes = []string{".Windows", ".WindowsPhone"}

// Updater rewrites appx manifests.
type Updater struct{}

// New returns the wp updater.
func New() *Updater {
	return &Updater{}
}

// Name implements platform.Updater.
func (u *Updater) Name() string { return Name }

// ManifestPaths returns the candidate manifest paths for a project.
func ManifestPaths(projectPath, projectName string) []string {
	root := filepath.Join(projectPath, projectName)
	paths := make([]string, 0, len(headSuffixes))
	for _, suffix := range headSuffixes {
		paths = append(paths, filepath.Join(root, projectName+suffix, ManifestFileName))
	}
	return paths
}

// Update implements platform.Updater.
func (u *Updater) Update(ctx context.Context, req platform.Request) (*platform.Result, error) {
	fields, err := manifestFieldsFrom(req)
	if err != nil {
		return nil, err
	}

	result := &platform.Result{Platform: Name}
	candidates := ManifestPaths(req.ProjectPath, req.ProjectName)
	found := 0

	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
		found++

		old := string(data)
		updated := rewriteManifest(old, fields)
		if updated == old {
			result.Skipped = append(result.Skipped, path)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("failed to write manifest: %w", err)
		}
		result.Changed = append(result.Changed, platform.FileChange{
			Path: path,
			Diff: lineDiff(old, updated),
		})
	}

	if found == 0 {
		return nil, fmt.Errorf("no %s found for project %q (looked in %s and %s)",
			ManifestFileName, req.ProjectName, candidates[0], candidates[1])
	}
	return result, nil
}
