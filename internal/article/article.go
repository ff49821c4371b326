// Package article loads markdown article sources from disk: it reads a
// file, parses its frontmatter header, renders the body to markup and
// normalizes the featured-image path for public serving.
package article

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evergreenchapel/sitegen/internal/frontmatter"
	"github.com/evergreenchapel/sitegen/internal/render"
)

// Article is the runtime union of a parsed frontmatter and its rendered
// markup body. Constructed fresh from the source file on every build;
// never persisted except as generated output.
type Article struct {
	frontmatter.Frontmatter
	Body string
	Path string
}

// Load reads one article file and returns its slug, frontmatter and
// rendered markup. A featuredImage value beginning with imagePrefix is
// rewritten to the public serving path; other values are left untouched.
func Load(path, imagePrefix, publicImagePath string) (Article, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Article{}, fmt.Errorf("failed to read article %s: %w", path, err)
	}

	fm, body, err := frontmatter.Parse(string(raw))
	if err != nil {
		return Article{}, fmt.Errorf("%s: %w", path, err)
	}

	if fm.Slug == "" {
		// An article without a slug cannot name its module or index key;
		// fall back to the file stem.
		fm.Slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if strings.HasPrefix(fm.FeaturedImage, imagePrefix) {
		fm.FeaturedImage = publicImagePath + strings.TrimPrefix(fm.FeaturedImage, imagePrefix)
	}

	return Article{
		Frontmatter: fm,
		Body:        render.Render(body),
		Path:        path,
	}, nil
}

// ScanDirectory scans a directory for files with the given extension,
// sorted by path so builds process articles in a deterministic order.
func ScanDirectory(dir string, ext string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && filepath.Ext(path) == ext {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// LoadAll loads every markdown article under dir. A parse failure on any
// single article aborts the whole load; there is no skip-and-continue.
func LoadAll(dir, imagePrefix, publicImagePath string) ([]Article, error) {
	paths, err := ScanDirectory(dir, ".md")
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	articles := make([]Article, 0, len(paths))
	for _, path := range paths {
		a, err := Load(path, imagePrefix, publicImagePath)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, nil
}
