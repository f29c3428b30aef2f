package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// CompileMode controls how a failing script compiler is treated.
type CompileMode string

const (
	// CompileStrict aborts the deploy when the compiler exits non-zero.
	CompileStrict CompileMode = "strict"
	// CompileLenient ignores the compiler exit status and moves on.
	CompileLenient CompileMode = "lenient"
)

// DefaultLogMaxEntries caps the deploy history when nothing else is configured.
const DefaultLogMaxEntries = 200

// Settings holds deploy tool options that are not part of the engine's own
// config files. Values come from defaults, then .luna2d/deploy.yaml, then the
// environment; CLI flags are applied on top by the caller.
type Settings struct {
	EngineRoot    string      `yaml:"-" env:"LUNA2D_PATH"`
	Compiler      string      `yaml:"compiler,omitempty" env:"LUNA2D_LUAC"`
	CompileMode   CompileMode `yaml:"compile_mode,omitempty" env:"LUNA2D_COMPILE_MODE"`
	CheckSyntax   bool        `yaml:"check_syntax,omitempty" env:"LUNA2D_CHECK_SYNTAX"`
	LogMaxEntries int         `yaml:"log_max_entries,omitempty" env:"LUNA2D_LOG_MAX_ENTRIES"`
}

// DefaultSettings returns settings with every default filled in.
func DefaultSettings() Settings {
	return Settings{
		CompileMode:   CompileStrict,
		LogMaxEntries: DefaultLogMaxEntries,
	}
}

// LoadSettings builds Settings for a project. A missing deploy.yaml is not an
// error; unknown keys in it are.
func LoadSettings(projectPath string) (Settings, error) {
	s := DefaultSettings()

	path := SettingsPath(projectPath)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Settings{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := parseEnv(&s); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// parseEnv overlays environment variables onto target.
func parseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks enum values and normalizes empty ones to defaults.
func (s *Settings) Validate() error {
	if s.CompileMode == "" {
		s.CompileMode = CompileStrict
	}
	mode, err := ParseCompileMode(string(s.CompileMode))
	if err != nil {
		return err
	}
	s.CompileMode = mode

	if s.LogMaxEntries < 0 {
		return fmt.Errorf("log_max_entries must not be negative, got %d", s.LogMaxEntries)
	}
	return nil
}

// CompilerPath returns the configured compiler, or the engine's bundled luac.
func (s Settings) CompilerPath(engineRoot string) string {
	if s.Compiler != "" {
		return s.Compiler
	}
	return filepath.Join(engineRoot, "tools", "luac", "luac")
}
