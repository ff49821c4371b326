// Package manifest tracks what the last build produced: one entry per
// slug recording the source file's fingerprint. The manifest is purely
// informational (change reporting, status); generation itself is always
// whole-set and never manifest-driven.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Entry records the state of one article source at build time
type Entry struct {
	SourcePath string `json:"source_path"`
	MTime      int64  `json:"mtime"`
	Hash       string `json:"hash"`
}

// Manifest is the build-run record
type Manifest struct {
	BuildID  string            `json:"build_id"`
	BuiltAt  time.Time         `json:"built_at"`
	Articles map[string]*Entry `json:"articles"`
}

// New creates a new empty manifest
func New() *Manifest {
	return &Manifest{
		Articles: make(map[string]*Entry),
	}
}

// Load reads the manifest from disk, returning an empty manifest when the
// file does not exist yet.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	if m.Articles == nil {
		m.Articles = make(map[string]*Entry)
	}

	return &m, nil
}

// Save stamps the manifest with a fresh build ID and writes it to disk
func (m *Manifest) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	m.BuildID = uuid.New().String()
	m.BuiltAt = time.Now().UTC()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged checks if a slug's source has changed since the last build.
// Uses hybrid mtime + hash approach
func (m *Manifest) HasChanged(slug, path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	entry, exists := m.Articles[slug]
	if !exists {
		// New article
		return true, nil
	}

	// Fast path: check mtime first
	mtime := info.ModTime().Unix()
	if mtime == entry.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != entry.Hash, nil
}

// Record updates the entry for a slug
func (m *Manifest) Record(slug, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	m.Articles[slug] = &Entry{
		SourcePath: path,
		MTime:      info.ModTime().Unix(),
		Hash:       hash,
	}

	return nil
}

// Remove drops the entry for a slug
func (m *Manifest) Remove(slug string) {
	delete(m.Articles, slug)
}
