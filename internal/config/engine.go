package config

import (
	"fmt"
	"os"
	"path/filepath"

	"luna2d-deploy/internal/utils"
)

// executableDepth is how far the deploy tool binary sits below the engine
// root: <root>/tools/DeployTool/<bin>/luna2d-deploy.
const executableDepth = 3

// ResolveEngineRoot picks the engine root from, in order: the explicit flag
// value, the LUNA2D_PATH setting, and the location of the running binary.
func ResolveEngineRoot(flagValue string, s Settings) (string, error) {
	root := flagValue
	if root == "" {
		root = s.EngineRoot
	}
	if root == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("cannot determine engine root: %w", err)
		}
		root = EngineRootFromExecutable(utils.ResolveSymlink(exe))
	}

	abs, err := filepath.Abs(utils.NormalizeSlashes(root))
	if err != nil {
		return "", fmt.Errorf("cannot resolve engine root %s: %w", root, err)
	}
	return abs, nil
}

// EngineRootFromExecutable walks executableDepth directories up from the
// directory holding exe.
func EngineRootFromExecutable(exe string) string {
	dir := filepath.Dir(exe)
	for i := 0; i < executableDepth; i++ {
		dir = filepath.Dir(dir)
	}
	return dir
}
