package mirror

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestMirrorCopiesTree(t *testing.T) {
	origin := t.TempDir()
	target := t.TempDir()

	writeFile(t, filepath.Join(origin, "main.rb"), "puts 'hi'")
	writeFile(t, filepath.Join(origin, "lib", "util.rb"), "module Util; end")

	if err := Mirror(origin, target, DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := readFile(t, filepath.Join(target, "main.rb")); got != "puts 'hi'" {
		t.Errorf("main.rb content = %q", got)
	}
	if got := readFile(t, filepath.Join(target, "lib", "util.rb")); got != "module Util; end" {
		t.Errorf("lib/util.rb content = %q", got)
	}
}

func TestMirrorDeletesExtraneous(t *testing.T) {
	origin := t.TempDir()
	target := t.TempDir()

	writeFile(t, filepath.Join(origin, "keep.txt"), "keep")
	writeFile(t, filepath.Join(target, "stale.txt"), "stale")
	writeFile(t, filepath.Join(target, "staledir", "nested.txt"), "stale")

	if err := Mirror(origin, target, DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(target, "stale.txt")); !os.IsNotExist(err) {
		t.Error("stale.txt survived the mirror")
	}
	if _, err := os.Stat(filepath.Join(target, "staledir")); !os.IsNotExist(err) {
		t.Error("staledir survived the mirror")
	}
	if _, err := os.Stat(filepath.Join(target, "keep.txt")); err != nil {
		t.Errorf("keep.txt missing after mirror: %v", err)
	}
}

func TestMirrorOverridesConflicts(t *testing.T) {
	origin := t.TempDir()
	target := t.TempDir()

	writeFile(t, filepath.Join(origin, "file.txt"), "new")
	writeFile(t, filepath.Join(target, "file.txt"), "old")

	if err := Mirror(origin, target, DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := readFile(t, filepath.Join(target, "file.txt")); got != "new" {
		t.Errorf("file.txt content = %q, want %q", got, "new")
	}
}

func TestMirrorWithoutOverride(t *testing.T) {
	origin := t.TempDir()
	target := t.TempDir()

	writeFile(t, filepath.Join(origin, "file.txt"), "new")
	writeFile(t, filepath.Join(target, "file.txt"), "old")

	if err := Mirror(origin, target, Options{Delete: false, Override: false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := readFile(t, filepath.Join(target, "file.txt")); got != "old" {
		t.Errorf("file.txt content = %q, want %q", got, "old")
	}
}

func TestMirrorWithoutDeleteKeepsExtraneous(t *testing.T) {
	origin := t.TempDir()
	target := t.TempDir()

	writeFile(t, filepath.Join(origin, "keep.txt"), "keep")
	writeFile(t, filepath.Join(target, "extra.txt"), "extra")

	if err := Mirror(origin, target, Options{Delete: false, Override: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(target, "extra.txt")); err != nil {
		t.Errorf("extra.txt removed despite Delete=false: %v", err)
	}
}

func TestMirrorIdempotent(t *testing.T) {
	origin := t.TempDir()
	target := t.TempDir()

	writeFile(t, filepath.Join(origin, "a", "b.txt"), "b")

	for i := 0; i < 2; i++ {
		if err := Mirror(origin, target, DefaultOptions()); err != nil {
			t.Fatalf("mirror pass %d: %v", i+1, err)
		}
	}

	if got := readFile(t, filepath.Join(target, "a", "b.txt")); got != "b" {
		t.Errorf("a/b.txt content = %q", got)
	}
}

func TestMirrorRejectsMissingOrigin(t *testing.T) {
	if err := Mirror(filepath.Join(t.TempDir(), "nope"), t.TempDir(), DefaultOptions()); err == nil {
		t.Error("expected error for missing origin")
	}
}
