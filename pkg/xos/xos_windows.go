//go:build windows
// +build windows

// Package xos provides cross-platform atomic file writes. On Windows the
// write is staged in a temp file in the target directory and renamed into
// place, since cross-drive atomic rename is not available.
package xos

import (
	"os"
	"path/filepath"
)

// WriteFile writes data to the named file via a same-directory temp file
// and rename.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	committed = true
	return nil
}
