package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.CompileMode != CompileStrict {
		t.Errorf("CompileMode = %q, want strict", s.CompileMode)
	}
	if s.LogMaxEntries != DefaultLogMaxEntries {
		t.Errorf("LogMaxEntries = %d, want %d", s.LogMaxEntries, DefaultLogMaxEntries)
	}
	if s.CheckSyntax {
		t.Error("CheckSyntax should default to false")
	}
}

func TestLoadSettings_File(t *testing.T) {
	proj := t.TempDir()
	writeTestFile(t, SettingsPath(proj), "compiler: /opt/luac\ncompile_mode: lenient\ncheck_syntax: true\nlog_max_entries: 50\n")

	s, err := LoadSettings(proj)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Compiler != "/opt/luac" {
		t.Errorf("Compiler = %q", s.Compiler)
	}
	if s.CompileMode != CompileLenient {
		t.Errorf("CompileMode = %q, want lenient", s.CompileMode)
	}
	if !s.CheckSyntax {
		t.Error("CheckSyntax = false, want true")
	}
	if s.LogMaxEntries != 50 {
		t.Errorf("LogMaxEntries = %d, want 50", s.LogMaxEntries)
	}
}

func TestLoadSettings_EmptyFile(t *testing.T) {
	proj := t.TempDir()
	writeTestFile(t, SettingsPath(proj), "")

	s, err := LoadSettings(proj)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.CompileMode != CompileStrict {
		t.Errorf("CompileMode = %q, want strict", s.CompileMode)
	}
}

func TestLoadSettings_UnknownKey(t *testing.T) {
	proj := t.TempDir()
	writeTestFile(t, SettingsPath(proj), "compile_mod: lenient\n")

	if _, err := LoadSettings(proj); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	proj := t.TempDir()
	writeTestFile(t, SettingsPath(proj), "compile_mode: strict\n")
	t.Setenv("LUNA2D_COMPILE_MODE", "lenient")
	t.Setenv("LUNA2D_PATH", "/opt/luna2d")

	s, err := LoadSettings(proj)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.CompileMode != CompileLenient {
		t.Errorf("CompileMode = %q, want lenient", s.CompileMode)
	}
	if s.EngineRoot != "/opt/luna2d" {
		t.Errorf("EngineRoot = %q, want /opt/luna2d", s.EngineRoot)
	}
}

func TestLoadSettings_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"compile mode", "compile_mode: sloppy\n", "invalid compile mode"},
		{"negative log cap", "log_max_entries: -1\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj := t.TempDir()
			writeTestFile(t, SettingsPath(proj), tt.content)

			_, err := LoadSettings(proj)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCompilerPath(t *testing.T) {
	root := filepath.Join("opt", "luna2d")

	s := DefaultSettings()
	if got, want := s.CompilerPath(root), filepath.Join(root, "tools", "luac", "luac"); got != want {
		t.Errorf("CompilerPath() = %q, want %q", got, want)
	}

	s.Compiler = "/usr/bin/luac5.1"
	if got := s.CompilerPath(root); got != "/usr/bin/luac5.1" {
		t.Errorf("CompilerPath() = %q, want override", got)
	}
}
