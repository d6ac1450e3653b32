// Package project locates the Percussa.Rnbo project root.
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot locates the project root by searching for the project
// markers: a top-level CMakeLists.txt next to a modules/ directory.
// It starts from the current working directory and traverses upward,
// so the tool can run from anywhere inside the tree.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		if isRoot(absDir) {
			return absDir, nil
		}
		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", fmt.Errorf("not inside a Percussa.Rnbo project (no CMakeLists.txt + modules/ found in %s or any parent)", dir)
		}
		absDir = parent
	}
}

func isRoot(dir string) bool {
	if info, err := os.Stat(filepath.Join(dir, "CMakeLists.txt")); err != nil || info.IsDir() {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, "modules"))
	return err == nil && info.IsDir()
}
