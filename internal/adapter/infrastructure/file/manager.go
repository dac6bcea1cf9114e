// Package file provides file system operations adapter implementation.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"golang-ifrename/internal/port"
)

// ManagerAdapter is an adapter that implements the FileManager port using the standard os package.
type ManagerAdapter struct{}

// Ensure ManagerAdapter implements the FileManager port
var _ port.FileManager = (*ManagerAdapter)(nil)

// NewManagerAdapter creates a new file manager adapter.
func NewManagerAdapter() *ManagerAdapter {
	return &ManagerAdapter{}
}

// ReadFile reads the contents of a file.
func (f *ManagerAdapter) ReadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return data, nil
}

// WriteFile writes data to a file with specified permissions. The data is
// written to a sibling temporary file first and renamed into place, so a
// crash never leaves a truncated file behind.
func (f *ManagerAdapter) WriteFile(filename string, data []byte, perm int) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	if err := tmp.Chmod(os.FileMode(perm)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (f *ManagerAdapter) FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// ResolveLink returns the target of a symlink with all intermediate links resolved.
func (f *ManagerAdapter) ResolveLink(filename string) (string, error) {
	target, err := filepath.EvalSymlinks(filename)
	if err != nil {
		return "", fmt.Errorf("failed to resolve link %s: %w", filename, err)
	}
	return target, nil
}
