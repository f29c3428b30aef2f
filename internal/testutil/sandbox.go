// Package testutil builds throwaway engine, game and project trees for tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FailMarker makes the fake compiler reject any script containing it.
const FailMarker = "luac-fail"

// CompiledPrefix is prepended by the fake compiler to the script source.
const CompiledPrefix = "LUAC:"

// Sandbox is a temp directory holding an engine root, a game directory and
// a native project with an empty .luna2d directory.
type Sandbox struct {
	T           *testing.T
	Root        string
	EngineRoot  string
	GamePath    string
	ProjectPath string
	CompilerLog string
}

// NewSandbox creates the directory skeleton.
func NewSandbox(t *testing.T) *Sandbox {
	t.Helper()
	root := t.TempDir()
	sb := &Sandbox{
		T:           t,
		Root:        root,
		EngineRoot:  filepath.Join(root, "luna2d"),
		GamePath:    filepath.Join(root, "game"),
		ProjectPath: filepath.Join(root, "project"),
		CompilerLog: filepath.Join(root, "luac-calls.log"),
	}
	for _, dir := range []string{
		filepath.Join(sb.EngineRoot, "lib", "wp"),
		sb.GamePath,
		filepath.Join(sb.ProjectPath, ".luna2d"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	return sb
}

// WriteFile writes content to root-relative, slash-separated rel.
func (sb *Sandbox) WriteFile(rel, content string) string {
	sb.T.Helper()
	return writeFile(sb.T, filepath.Join(sb.Root, filepath.FromSlash(rel)), content)
}

// WriteLib writes a file into the engine's lib/wp bundle.
func (sb *Sandbox) WriteLib(rel, content string) string {
	sb.T.Helper()
	return writeFile(sb.T, filepath.Join(sb.EngineRoot, "lib", "wp", filepath.FromSlash(rel)), content)
}

// WriteGameFile writes a file into the game directory.
func (sb *Sandbox) WriteGameFile(rel, content string) string {
	sb.T.Helper()
	return writeFile(sb.T, filepath.Join(sb.GamePath, filepath.FromSlash(rel)), content)
}

// WriteGameConfig writes <game>/config.luna2d.
func (sb *Sandbox) WriteGameConfig(json string) {
	sb.T.Helper()
	sb.WriteGameFile("config.luna2d", json)
}

// WriteBuildConfig writes <project>/.luna2d/build.luna2d.
func (sb *Sandbox) WriteBuildConfig(json string) {
	sb.T.Helper()
	writeFile(sb.T, filepath.Join(sb.ProjectPath, ".luna2d", "build.luna2d"), json)
}

// WriteProjectFile writes a file inside the native project directory.
func (sb *Sandbox) WriteProjectFile(rel, content string) string {
	sb.T.Helper()
	return writeFile(sb.T, filepath.Join(sb.ProjectPath, filepath.FromSlash(rel)), content)
}

// ReadFile returns the content of an absolute path, failing the test when
// it cannot be read.
func (sb *Sandbox) ReadFile(path string) string {
	sb.T.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		sb.T.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// CompilerPath is where InstallFakeCompiler puts luac.
func (sb *Sandbox) CompilerPath() string {
	return filepath.Join(sb.EngineRoot, "tools", "luac", "luac")
}

// InstallFakeCompiler writes a POSIX shell luac that records each input in
// CompilerLog, fails on scripts containing FailMarker and otherwise writes
// CompiledPrefix followed by the source. Skips the test on Windows.
func (sb *Sandbox) InstallFakeCompiler() string {
	sb.T.Helper()
	if runtime.GOOS == "windows" {
		sb.T.Skip("fake luac needs a POSIX shell")
	}

	script := `#!/bin/sh
# luac -s -o <out> <in>
out="$3"
in="$4"
echo "$in" >> "` + sb.CompilerLog + `"
if grep -q "` + FailMarker + `" "$in"; then
	echo "luac: $in: syntax error near 'fail'" >&2
	exit 1
fi
printf '` + CompiledPrefix + `' > "$out"
cat "$in" >> "$out"
`
	path := sb.CompilerPath()
	writeFile(sb.T, path, script)
	if err := os.Chmod(path, 0755); err != nil {
		sb.T.Fatalf("chmod luac: %v", err)
	}
	return path
}

// CompilerCalls returns the script paths the fake compiler was run on.
func (sb *Sandbox) CompilerCalls() []string {
	sb.T.Helper()
	data, err := os.ReadFile(sb.CompilerLog)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		sb.T.Fatalf("failed to read compiler log: %v", err)
	}
	return strings.Fields(string(data))
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
