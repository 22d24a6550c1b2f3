// Package mirror implements a destructive directory mirror: after a
// successful call the target tree matches the origin tree, with target-only
// entries removed and conflicting files overwritten.
package mirror

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Options control mirror behavior.
type Options struct {
	// Delete removes target entries that do not exist in the origin.
	Delete bool
	// Override overwrites target files that also exist in the origin.
	// When false, existing files are left untouched.
	Override bool
}

// DefaultOptions returns the standard destructive-mirror behavior.
func DefaultOptions() Options {
	return Options{Delete: true, Override: true}
}

// Mirror copies the origin directory tree into target according to opts.
// The call is synchronous and all-or-nothing only in intent: on failure a
// partially mirrored target is left behind and the caller must re-mirror.
func Mirror(origin, target string, opts Options) error {
	info, err := os.Stat(origin)
	if err != nil {
		return fmt.Errorf("failed to stat origin: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("origin %q is not a directory", origin)
	}

	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("failed to create target: %w", err)
	}

	// Paths present in the origin, relative to its root. Used by the delete
	// pass to identify target-only entries.
	present := map[string]bool{}

	err = filepath.WalkDir(origin, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(origin, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		present[rel] = true

		dest := filepath.Join(target, rel)
		if d.IsDir() {
			return os.MkdirAll(dest, 0755)
		}
		return copyFile(path, dest, opts.Override)
	})
	if err != nil {
		return fmt.Errorf("failed to mirror %q: %w", origin, err)
	}

	if opts.Delete {
		if err := deleteExtraneous(target, present); err != nil {
			return fmt.Errorf("failed to delete extraneous files: %w", err)
		}
	}

	return nil
}

// copyFile copies a single regular file, preserving its mode. Symlinks are
// recreated rather than followed.
func copyFile(src, dest string, override bool) error {
	if !override {
		if _, err := os.Lstat(dest); err == nil {
			return nil
		}
	}

	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		link, err := os.Readlink(src)
		if err != nil {
			return err
		}
		if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
			return err
		}
		return os.Symlink(link, dest)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// deleteExtraneous removes every target entry whose origin-relative path is
// not in present. Removed directories are skipped wholesale.
func deleteExtraneous(target string, present map[string]bool) error {
	return filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(target, path)
		if err != nil {
			return err
		}
		if rel == "." || present[rel] {
			return nil
		}

		if err := os.RemoveAll(path); err != nil {
			return err
		}
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	})
}
