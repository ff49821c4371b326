package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSyncMissingSourceIsNoOp(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "public", "images")

	count, err := Sync(filepath.Join(t.TempDir(), "does-not-exist"), dst, nil)
	if err != nil {
		t.Fatalf("Sync should be a no-op for a missing source dir, got %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("destination should not be created when the source is missing")
	}
}

func TestSyncCopiesRegularFiles(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "public", "images")

	if err := os.WriteFile(filepath.Join(src, "a.jpg"), []byte("jpeg-bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "b.png"), []byte("png-bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(src, "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	var copied []string
	count, err := Sync(src, dst, func(src, dst string) {
		copied = append(copied, filepath.Base(dst))
	})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if count != 2 {
		t.Errorf("count = %d, want 2 (directories are not copied)", count)
	}
	if len(copied) != 2 {
		t.Errorf("copied callback fired %d times, want 2", len(copied))
	}

	data, err := os.ReadFile(filepath.Join(dst, "a.jpg"))
	if err != nil {
		t.Fatalf("copied file missing: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("copied content = %q", data)
	}
}

func TestSyncCreatesDestination(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "only.gif"), []byte("gif"), 0644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "deeply", "nested", "images")
	if _, err := Sync(src, dst, nil); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "only.gif")); err != nil {
		t.Errorf("destination file missing: %v", err)
	}
}
