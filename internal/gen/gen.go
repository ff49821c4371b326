// Package gen emits the generated Go data modules consumed by the
// presentation layer: one source file per article plus one index file.
// The generator only ever accepts a complete article set, never a delta;
// whole-set regeneration is what keeps the index consistent with the
// articles on disk.
package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/evergreenchapel/sitegen/internal/article"
)

const header = "// Code generated by sitegen. DO NOT EDIT.\n\n"

// Generator writes article modules and the index into one output package.
type Generator struct {
	outputDir string
	pkg       string
}

// New creates a generator targeting outputDir with the given package name
func New(outputDir, pkg string) *Generator {
	return &Generator{
		outputDir: outputDir,
		pkg:       pkg,
	}
}

// ModulePath returns the path of the generated module for a slug
func (g *Generator) ModulePath(slug string) string {
	return filepath.Join(g.outputDir, "article_"+fileStem(slug)+".go")
}

// IndexPath returns the path of the generated index module
func (g *Generator) IndexPath() string {
	return filepath.Join(g.outputDir, "index.go")
}

// HasModule reports whether a generated module exists for slug
func (g *Generator) HasModule(slug string) bool {
	_, err := os.Stat(g.ModulePath(slug))
	return err == nil
}

// HasIndex reports whether a generated index exists
func (g *Generator) HasIndex() bool {
	_, err := os.Stat(g.IndexPath())
	return err == nil
}

// Generate writes one module per article plus the index, then prunes any
// stale article modules left over from slugs no longer in the set. The
// articles argument is the complete current set; an empty set writes an
// index with empty mappings and vocabularies. Slugs must be unique.
func (g *Generator) Generate(articles []article.Article) error {
	seen := make(map[string]bool, len(articles))
	for _, a := range articles {
		if seen[a.Slug] {
			return fmt.Errorf("duplicate slug %q", a.Slug)
		}
		seen[a.Slug] = true
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", g.outputDir, err)
	}

	for _, a := range articles {
		if err := writeAtomic(g.ModulePath(a.Slug), g.renderModule(a)); err != nil {
			return err
		}
	}

	if err := writeAtomic(g.IndexPath(), g.renderIndex(articles)); err != nil {
		return err
	}

	return g.prune(seen)
}

// prune removes generated article modules whose slug is not in keep
func (g *Generator) prune(keep map[string]bool) error {
	entries, err := os.ReadDir(g.outputDir)
	if err != nil {
		return fmt.Errorf("failed to read output directory %s: %w", g.outputDir, err)
	}

	wanted := make(map[string]bool, len(keep))
	for slug := range keep {
		wanted[filepath.Base(g.ModulePath(slug))] = true
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "article_") || !strings.HasSuffix(name, ".go") {
			continue
		}
		if wanted[name] {
			continue
		}
		if err := os.Remove(filepath.Join(g.outputDir, name)); err != nil {
			return fmt.Errorf("failed to remove stale module %s: %w", name, err)
		}
	}

	return nil
}

// renderModule produces the full source of one article module. All string
// values are emitted as quoted Go literals so delimiter and escape
// characters inside the markup cannot break the generated file.
func (g *Generator) renderModule(a article.Article) string {
	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "package %s\n\n", g.pkg)
	fmt.Fprintf(&b, "var %s = Article{\n", varName(a.Slug))
	b.WriteString("\tMeta: Meta{\n")
	fmt.Fprintf(&b, "\t\tTitle:         %q,\n", a.Title)
	fmt.Fprintf(&b, "\t\tSlug:          %q,\n", a.Slug)
	fmt.Fprintf(&b, "\t\tExcerpt:       %q,\n", a.Excerpt)
	fmt.Fprintf(&b, "\t\tFeaturedImage: %q,\n", a.FeaturedImage)
	fmt.Fprintf(&b, "\t\tCategory:      %q,\n", a.Category)
	fmt.Fprintf(&b, "\t\tPublishDate:   %q,\n", a.PublishDate)
	fmt.Fprintf(&b, "\t\tAuthor:        %q,\n", a.Author)
	fmt.Fprintf(&b, "\t\tTags:          %s,\n", stringSliceLiteral(a.Tags))
	fmt.Fprintf(&b, "\t\tSubtitle:      %q,\n", a.Subtitle)
	b.WriteString("\t},\n")
	fmt.Fprintf(&b, "\tBody: %q,\n", a.Body)
	b.WriteString("}\n")
	return b.String()
}

// renderIndex produces the index module: the Article and Meta types, the
// slug mapping, the metadata listing in input order, and the lookup and
// vocabulary operations. Vocabularies are computed here so the generated
// package serves them as plain literals.
func (g *Generator) renderIndex(articles []article.Article) string {
	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "package %s\n\n", g.pkg)

	b.WriteString("// Meta is the metadata-only record used in listings.\n")
	b.WriteString("type Meta struct {\n")
	b.WriteString("\tTitle         string\n")
	b.WriteString("\tSlug          string\n")
	b.WriteString("\tExcerpt       string\n")
	b.WriteString("\tFeaturedImage string\n")
	b.WriteString("\tCategory      string\n")
	b.WriteString("\tPublishDate   string\n")
	b.WriteString("\tAuthor        string\n")
	b.WriteString("\tTags          []string\n")
	b.WriteString("\tSubtitle      string\n")
	b.WriteString("}\n\n")

	b.WriteString("// Article is one rendered article: its metadata plus markup body.\n")
	b.WriteString("type Article struct {\n")
	b.WriteString("\tMeta\n")
	b.WriteString("\tBody string\n")
	b.WriteString("}\n\n")

	b.WriteString("var bySlug = map[string]Article{\n")
	for _, a := range articles {
		fmt.Fprintf(&b, "\t%q: %s,\n", a.Slug, varName(a.Slug))
	}
	b.WriteString("}\n\n")

	b.WriteString("var listing = []Meta{\n")
	for _, a := range articles {
		fmt.Fprintf(&b, "\t%s.Meta,\n", varName(a.Slug))
	}
	b.WriteString("}\n\n")

	b.WriteString("// Get returns the full article for slug.\n")
	b.WriteString("func Get(slug string) (Article, bool) {\n")
	b.WriteString("\ta, ok := bySlug[slug]\n")
	b.WriteString("\treturn a, ok\n")
	b.WriteString("}\n\n")

	b.WriteString("// List returns article metadata in source order, without bodies.\n")
	b.WriteString("func List() []Meta {\n")
	b.WriteString("\tout := make([]Meta, len(listing))\n")
	b.WriteString("\tcopy(out, listing)\n")
	b.WriteString("\treturn out\n")
	b.WriteString("}\n\n")

	b.WriteString("// Categories returns the sorted, deduplicated category vocabulary.\n")
	b.WriteString("func Categories() []string {\n")
	fmt.Fprintf(&b, "\treturn %s\n", stringSliceLiteral(categories(articles)))
	b.WriteString("}\n\n")

	b.WriteString("// Tags returns the sorted, deduplicated tag vocabulary.\n")
	b.WriteString("func Tags() []string {\n")
	fmt.Fprintf(&b, "\treturn %s\n", stringSliceLiteral(tags(articles)))
	b.WriteString("}\n")

	return b.String()
}

// categories collects the deduplicated, sorted category vocabulary
func categories(articles []article.Article) []string {
	return vocabulary(articles, func(a article.Article) []string {
		if a.Category == "" {
			return nil
		}
		return []string{a.Category}
	})
}

// tags collects the deduplicated, sorted tag vocabulary
func tags(articles []article.Article) []string {
	return vocabulary(articles, func(a article.Article) []string {
		return a.Tags
	})
}

func vocabulary(articles []article.Article, values func(article.Article) []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, a := range articles {
		for _, v := range values(a) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// stringSliceLiteral renders values as a Go []string literal
func stringSliceLiteral(values []string) string {
	if len(values) == 0 {
		return "[]string{}"
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

// varName derives the generated symbol name for a slug
func varName(slug string) string {
	var b strings.Builder
	b.WriteString("article")
	upper := true
	for _, r := range slug {
		switch {
		case r == '-' || r == '_' || r == ' ':
			upper = true
		case upper:
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fileStem derives the generated file stem for a slug
func fileStem(slug string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, slug)
}

// writeAtomic writes content to path via a uniquely named temp file in the
// same directory followed by a rename, so a generated module is never
// observable half-written.
func writeAtomic(path, content string) error {
	tmp := path + "." + uuid.New().String()[:8] + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename %s to %s: %w", tmp, path, err)
	}
	return nil
}
