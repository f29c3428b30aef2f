package libsync

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"luna2d-deploy/internal/config"
	"luna2d-deploy/internal/testutil"
	"luna2d-deploy/internal/utils"
)

func TestSourceDir(t *testing.T) {
	root := filepath.Join("opt", "luna2d")
	if got, want := SourceDir(root), filepath.Join(root, "lib", "wp"); got != want {
		t.Errorf("SourceDir() = %q, want %q", got, want)
	}
}

func TestSync_CopiesBundle(t *testing.T) {
	sb := testutil.NewSandbox(t)
	sb.WriteLib("luna2d.dll", "dll")
	sb.WriteLib("include/luna2d.h", "header")

	res, err := Sync(sb.ProjectPath, sb.EngineRoot)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res.Files != 2 {
		t.Errorf("Files = %d, want 2", res.Files)
	}
	if res.Dest != config.LibsDir(sb.ProjectPath) {
		t.Errorf("Dest = %q", res.Dest)
	}

	got := sb.ReadFile(filepath.Join(res.Dest, "include", "luna2d.h"))
	if got != "header" {
		t.Errorf("copied header = %q", got)
	}

	srcSum, _ := utils.DirChecksum(SourceDir(sb.EngineRoot))
	if res.Checksum != srcSum {
		t.Errorf("Checksum = %s, want source checksum %s", res.Checksum, srcSum)
	}
}

func TestSync_ReplacesStaleFiles(t *testing.T) {
	sb := testutil.NewSandbox(t)
	sb.WriteLib("luna2d.dll", "new")
	stale := sb.WriteProjectFile(".luna2d/libs/old.dll", "old")
	sb.WriteProjectFile(".luna2d/libs/luna2d.dll", "previous")

	res, err := Sync(sb.ProjectPath, sb.EngineRoot)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale library file survived the sync")
	}
	if got := sb.ReadFile(filepath.Join(res.Dest, "luna2d.dll")); got != "new" {
		t.Errorf("luna2d.dll = %q, want new", got)
	}
}

func TestSync_Idempotent(t *testing.T) {
	sb := testutil.NewSandbox(t)
	sb.WriteLib("a.dll", "a")
	sb.WriteLib("b/c.winmd", "c")

	first, err := Sync(sb.ProjectPath, sb.EngineRoot)
	if err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	second, err := Sync(sb.ProjectPath, sb.EngineRoot)
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if first.Checksum != second.Checksum || first.Files != second.Files {
		t.Errorf("repeated sync differs: %+v vs %+v", first, second)
	}
}

func TestSync_MissingBundleKeepsExistingLibs(t *testing.T) {
	sb := testutil.NewSandbox(t)
	existing := sb.WriteProjectFile(".luna2d/libs/luna2d.dll", "keep")
	if err := os.RemoveAll(SourceDir(sb.EngineRoot)); err != nil {
		t.Fatal(err)
	}

	_, err := Sync(sb.ProjectPath, sb.EngineRoot)
	if err == nil || !strings.Contains(err.Error(), "library bundle not found") {
		t.Fatalf("expected missing bundle error, got %v", err)
	}
	if got := sb.ReadFile(existing); got != "keep" {
		t.Errorf("existing libs modified: %q", got)
	}
}
