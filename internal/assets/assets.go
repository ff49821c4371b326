// Package assets mirrors the article images directory into the public
// serving location.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Sync copies every regular file from srcDir into dstDir, creating dstDir
// if absent. A missing srcDir is a no-op: content without images is valid.
// The first copy failure aborts the sync; copy failures indicate an
// environment problem, not a data problem. Returns the number of files
// copied and invokes copied for each one.
func Sync(srcDir, dstDir string, copied func(src, dst string)) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read images directory %s: %w", srcDir, err)
	}

	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create public images directory %s: %w", dstDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	count := 0
	for _, name := range names {
		src := filepath.Join(srcDir, name)
		dst := filepath.Join(dstDir, name)
		if err := copyFile(src, dst); err != nil {
			return count, err
		}
		count++
		if copied != nil {
			copied(src, dst)
		}
	}

	return count, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}

	return nil
}
