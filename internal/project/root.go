package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ManifestName is the file FindManifest looks for.
const ManifestName = "ember.toml"

// FindManifest returns the ember.toml closest to startDir, searching
// startDir and then each parent. A directory named ember.toml is skipped.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		info, statErr := os.Stat(candidate)
		switch {
		case statErr == nil && info.Mode().IsRegular():
			return candidate, true, nil
		case statErr != nil && !errors.Is(statErr, fs.ErrNotExist):
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
