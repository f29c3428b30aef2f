package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ProjectDirName is the luna2d metadata directory inside a native project.
const ProjectDirName = ".luna2d"

const (
	buildConfigFileName = "build.luna2d"
	gameConfigFileName  = "config.luna2d"
	settingsFileName    = "deploy.yaml"
)

// ErrMissingProjectName is returned when build.luna2d has no usable projectName.
var ErrMissingProjectName = errors.New("build config has no projectName")

// ProjectDir returns <projectPath>/.luna2d.
func ProjectDir(projectPath string) string {
	return filepath.Join(projectPath, ProjectDirName)
}

// BuildConfigPath returns the build config path for the given project.
func BuildConfigPath(projectPath string) string {
	return filepath.Join(ProjectDir(projectPath), buildConfigFileName)
}

// GameConfigPath returns the game config path for the given game directory.
func GameConfigPath(gamePath string) string {
	return filepath.Join(gamePath, gameConfigFileName)
}

// SettingsPath returns the optional deploy settings file for the given project.
func SettingsPath(projectPath string) string {
	return filepath.Join(ProjectDir(projectPath), settingsFileName)
}

// LibsDir returns the directory library bundles are deployed into.
func LibsDir(projectPath string) string {
	return filepath.Join(ProjectDir(projectPath), "libs")
}

// AssetsDir returns the directory packaged game assets are deployed into.
func AssetsDir(projectPath string) string {
	return filepath.Join(ProjectDir(projectPath), "assets")
}

// LogsDir returns the deploy history directory of the given project.
func LogsDir(projectPath string) string {
	return filepath.Join(ProjectDir(projectPath), "logs")
}

// GameConfig is the decoded config.luna2d of a game. Its schema belongs to
// the engine; the deploy tool only reads a few optional keys.
type GameConfig map[string]any

// String returns the string value stored under key.
// ok is false when the key is absent or holds a non-string value.
func (c GameConfig) String(key string) (value string, ok bool) {
	v, exists := c[key]
	if !exists {
		return "", false
	}
	s, isString := v.(string)
	return s, isString
}

// BuildConfig is the decoded .luna2d/build.luna2d of a native project.
type BuildConfig struct {
	ProjectName string
	Raw         map[string]any
}

// LoadGameConfig reads <gamePath>/config.luna2d.
func LoadGameConfig(gamePath string) (GameConfig, error) {
	raw, err := LoadJSON(GameConfigPath(gamePath))
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	return GameConfig(raw), nil
}

// LoadBuildConfig reads <projectPath>/.luna2d/build.luna2d and requires a
// non-empty string projectName.
func LoadBuildConfig(projectPath string) (*BuildConfig, error) {
	path := BuildConfigPath(projectPath)
	raw, err := LoadJSON(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load build config: %w", err)
	}

	v, ok := raw["projectName"]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingProjectName)
	}
	name, ok := v.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%s: projectName must be a non-empty string: %w", path, ErrMissingProjectName)
	}

	return &BuildConfig{ProjectName: name, Raw: raw}, nil
}
