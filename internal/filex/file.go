package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir resolves dir to an absolute path and creates it (and any
// missing parents) if needed. Relative paths are resolved against the
// current working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}
