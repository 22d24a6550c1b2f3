//go:build !windows
// +build !windows

// Package xos provides cross-platform atomic file writes. A rendered build
// manifest must never be observable half-written, so files are staged in a
// temp file and moved into place with an atomic rename.
package xos

import (
	"os"

	"github.com/google/renameio/v2"
)

// WriteFile writes data to the named file atomically using rename. If the
// file does not exist it is created with permissions perm; otherwise it is
// replaced in one step.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
