package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeSlashes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/g", filepath.FromSlash("/g")},
		{`game\scripts\main.lua`, filepath.FromSlash("game/scripts/main.lua")},
		{"game/scripts/", filepath.FromSlash("game/scripts")},
		{`a\b/../c`, filepath.FromSlash("a/c")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeSlashes(tt.in); got != tt.want {
				t.Errorf("NormalizeSlashes(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRealPath_ResolvesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.lua")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.lua")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := RealPath(link)
	if err != nil {
		t.Fatalf("RealPath: %v", err)
	}
	want, _ := filepath.EvalSymlinks(target)
	if got != want {
		t.Errorf("RealPath() = %q, want %q", got, want)
	}
}

func TestResolveSymlink_FallsBack(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if got := ResolveSymlink(missing); got != missing {
		t.Errorf("ResolveSymlink() = %q, want %q", got, missing)
	}
}
