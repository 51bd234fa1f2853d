// Package fsutil is the thin filesystem surface used by the generators
// and the reconciler. Keeping it in one place makes the write/delete
// behavior of a sync run easy to audit.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the directory and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", path, err)
	}
	return nil
}

// WriteText writes content to path, creating parent directories as needed.
func WriteText(path string, content []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// PathExists reports whether the path exists.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DeleteFile removes a single file.
func DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete %q: %w", path, err)
	}
	return nil
}

// ListDir returns the entries of a directory.
func ListDir(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", path, err)
	}
	return entries, nil
}

// RemoveEmptyDir removes a directory that is expected to be empty.
func RemoveEmptyDir(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove directory %q: %w", path, err)
	}
	return nil
}
