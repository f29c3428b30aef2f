// Package platform defines how platform-native project files are regenerated
// during a deploy.
package platform

import (
	"context"
	"sort"

	"luna2d-deploy/internal/config"
)

// Request carries what an updater needs to rewrite a native project.
type Request struct {
	ProjectPath string
	GamePath    string
	GameConfig  config.GameConfig
	ProjectName string
}

// FileChange describes one rewritten project file.
type FileChange struct {
	Path string
	Diff string // removed lines prefixed "- ", added lines "+ "
}

// Result lists the files an updater touched.
type Result struct {
	Platform string
	Changed  []FileChange
	Skipped  []string // files already up to date
}

// Updater regenerates the native project files of one platform.
type Updater interface {
	Name() string
	Update(ctx context.Context, req Request) (*Result, error)
}

// Registry maps platform identifiers to their updater.
type Registry struct {
	updaters map[string]Updater
}

// NewRegistry registers each updater under its Name.
func NewRegistry(updaters ...Updater) *Registry {
	r := &Registry{updaters: make(map[string]Updater, len(updaters))}
	for _, u := range updaters {
		r.updaters[u.Name()] = u
	}
	return r
}

// Lookup returns the updater for name. Unknown platforms have none.
func (r *Registry) Lookup(name string) (Updater, bool) {
	if r == nil {
		return nil, false
	}
	u, ok := r.updaters[name]
	return u, ok
}

// Names returns the registered platform identifiers, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.updaters))
	for name := range r.updaters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
