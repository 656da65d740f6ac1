// Package file provides small filesystem helpers shared by the storage layer.
package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteAtomic writes data to path by writing a temporary file in the same
// directory and renaming it over the target, so concurrent readers never
// observe a partially written file.
func WriteAtomic(path string, data []byte, mode os.FileMode) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("could not write temp file: %w", err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("could not chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("could not close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not rename temp file: %w", err)
	}

	return nil
}

// RemoveTree removes path and everything below it without following
// symlinks: files and symlinks go first, directories afterwards deepest
// first, so filesystems that require empty directories are satisfied.
func RemoveTree(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("could not stat %q: %w", path, err)
	}

	if !info.IsDir() {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("could not remove %q: %w", path, err)
		}
		return nil
	}

	dirs := []string{}
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, p)
			return nil
		}
		return os.Remove(p)
	})
	if err != nil {
		return fmt.Errorf("could not remove files under %q: %w", path, err)
	}

	// Deepest directories first.
	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Remove(dirs[i]); err != nil {
			return fmt.Errorf("could not remove directory %q: %w", dirs[i], err)
		}
	}

	return nil
}
