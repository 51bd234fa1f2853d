package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTextCreatesParents(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "a", "b", "c.md")

	if err := WriteText(path, []byte("hello\n")); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteTextAtomic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "doc.json")

	if err := WriteTextAtomic(path, []byte("first")); err != nil {
		t.Fatalf("WriteTextAtomic: %v", err)
	}
	if err := WriteTextAtomic(path, []byte("second")); err != nil {
		t.Fatalf("WriteTextAtomic overwrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory entries = %d, want only the target file", len(entries))
	}
}

func TestPathExists(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if PathExists(filepath.Join(dir, "missing")) {
		t.Error("missing path reported as existing")
	}
	if !PathExists(dir) {
		t.Error("existing path reported as missing")
	}
}

func TestDeleteFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "f.md")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := DeleteFile(path); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if PathExists(path) {
		t.Error("file still exists")
	}
	if err := DeleteFile(path); err == nil {
		t.Error("deleting a missing file should error")
	}
}

func TestRemoveEmptyDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := RemoveEmptyDir(empty); err != nil {
		t.Fatalf("RemoveEmptyDir: %v", err)
	}

	full := filepath.Join(dir, "full")
	if err := os.MkdirAll(filepath.Join(full, "child"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := RemoveEmptyDir(full); err == nil {
		t.Error("removing a non-empty directory should error")
	}
}
