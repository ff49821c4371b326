package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	m := New()

	if m.Articles == nil {
		t.Error("Articles map should be initialized")
	}
	if len(m.Articles) != 0 {
		t.Error("Articles map should be empty")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".sitegen", "manifest.json")

	m := New()
	m.Articles["hello-world"] = &Entry{
		SourcePath: "content/articles/hello-world.md",
		MTime:      123456789,
		Hash:       "sha256:abc123",
	}

	if err := m.Save(path); err != nil {
		t.Fatalf("Failed to save manifest: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}

	entry, ok := loaded.Articles["hello-world"]
	if !ok {
		t.Fatal("entry missing after reload")
	}
	if entry.MTime != 123456789 || entry.Hash != "sha256:abc123" {
		t.Errorf("entry = %+v", entry)
	}
	if loaded.BuildID == "" {
		t.Error("Save should stamp a build ID")
	}
	if loaded.BuiltAt.IsZero() {
		t.Error("Save should stamp a build time")
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(m.Articles) != 0 {
		t.Error("missing file should yield an empty manifest")
	}
}

func TestHasChanged(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.md")
	if err := os.WriteFile(src, []byte("---\nslug: a\n---\nbody\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m := New()

	changed, err := m.HasChanged("a", src)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if !changed {
		t.Error("untracked slug should read as changed")
	}

	if err := m.Record("a", src); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	changed, err = m.HasChanged("a", src)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if changed {
		t.Error("unchanged file should not read as changed")
	}

	// Backdate the recorded mtime so the hash path runs, then change the
	// content.
	m.Articles["a"].MTime = time.Now().Add(-time.Hour).Unix()
	changed, err = m.HasChanged("a", src)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if changed {
		t.Error("same content with stale mtime should not read as changed")
	}

	if err := os.WriteFile(src, []byte("---\nslug: a\n---\nnew body\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m.Articles["a"].MTime = time.Now().Add(-time.Hour).Unix()
	changed, err = m.HasChanged("a", src)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if !changed {
		t.Error("modified content should read as changed")
	}
}

func TestRemove(t *testing.T) {
	m := New()
	m.Articles["gone"] = &Entry{MTime: 1, Hash: "sha256:x"}

	m.Remove("gone")

	if _, ok := m.Articles["gone"]; ok {
		t.Error("entry should be removed")
	}
}
