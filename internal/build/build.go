// Package build sequences the pipeline: load articles, mirror image
// assets, regenerate modules, and keep the build manifest current. Every
// operation that touches the index regenerates it from the complete
// current article set.
package build

import (
	"fmt"
	"os"
	"time"

	"github.com/evergreenchapel/sitegen/internal/article"
	"github.com/evergreenchapel/sitegen/internal/assets"
	"github.com/evergreenchapel/sitegen/internal/config"
	"github.com/evergreenchapel/sitegen/internal/gen"
	"github.com/evergreenchapel/sitegen/internal/logger"
	"github.com/evergreenchapel/sitegen/internal/manifest"
)

// NotFoundError reports a slug with no corresponding article source or
// generated module.
type NotFoundError struct {
	Slug string
	Kind string // "article" or "module"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found for slug %q", e.Kind, e.Slug)
}

// Result summarizes a completed build or delete operation
type Result struct {
	Articles     int
	AssetsCopied int
	Duration     time.Duration
}

// Status is a read-only snapshot of the pipeline state
type Status struct {
	ArticleCount int
	ModuleCount  int
	IndexExists  bool
	Pending      []string
}

// Builder coordinates the loader, asset sync, generator and manifest
type Builder struct {
	cfg          *config.Config
	log          *logger.Logger
	gen          *gen.Generator
	manifestPath string
}

// New creates a builder for the given configuration
func New(cfg *config.Config, log *logger.Logger) *Builder {
	return &Builder{
		cfg:          cfg,
		log:          log,
		gen:          gen.New(cfg.OutputDir, cfg.Package),
		manifestPath: config.ManifestPath(),
	}
}

// All loads every article, mirrors image assets, and regenerates the full
// module set plus index.
func (b *Builder) All() (*Result, error) {
	start := time.Now()
	b.log.BuildStarted(b.cfg.ContentDir, b.cfg.OutputDir)

	articles, err := b.loadAll()
	if err != nil {
		return nil, err
	}

	copied, err := assets.Sync(b.cfg.ImagesDir, b.cfg.PublicImagesDir, b.log.AssetCopied)
	if err != nil {
		return nil, err
	}
	if copied == 0 {
		b.log.AssetsSkipped(b.cfg.ImagesDir)
	}

	if err := b.regenerate(articles); err != nil {
		return nil, err
	}

	result := &Result{
		Articles:     len(articles),
		AssetsCopied: copied,
		Duration:     time.Since(start),
	}
	b.log.BuildCompleted(result.Articles, result.Duration)
	return result, nil
}

// One rebuilds the article for slug. When no prior index exists only that
// article and an index containing it are generated; otherwise the entire
// article set is reloaded and the full index regenerated, preserving the
// whole-set invariant.
func (b *Builder) One(slug string) (*Result, error) {
	start := time.Now()

	articles, err := b.loadAll()
	if err != nil {
		return nil, err
	}

	target := -1
	for i, a := range articles {
		if a.Slug == slug {
			target = i
			break
		}
	}
	if target < 0 {
		return nil, &NotFoundError{Slug: slug, Kind: "article"}
	}
	b.log.ArticleLoaded(slug, articles[target].Path)

	set := articles
	if !b.gen.HasIndex() {
		// First build: nothing else can be in the index yet.
		set = articles[target : target+1]
	}

	if err := b.regenerate(set); err != nil {
		return nil, err
	}

	return &Result{
		Articles: len(set),
		Duration: time.Since(start),
	}, nil
}

// Delete removes the generated module for slug and regenerates the index
// from the articles remaining on disk. Deleting the last article writes an
// explicitly empty index. Fails with NotFoundError when no module exists
// for slug; the index is left untouched in that case.
func (b *Builder) Delete(slug string) (*Result, error) {
	start := time.Now()

	if !b.gen.HasModule(slug) {
		return nil, &NotFoundError{Slug: slug, Kind: "module"}
	}

	modulePath := b.gen.ModulePath(slug)
	if err := os.Remove(modulePath); err != nil {
		return nil, fmt.Errorf("failed to remove module for %q: %w", slug, err)
	}
	b.log.ModuleDeleted(slug, modulePath)

	articles, err := b.loadAll()
	if err != nil {
		return nil, err
	}

	remaining := articles[:0]
	for _, a := range articles {
		if a.Slug == slug {
			b.log.Warn("article source still on disk; next build will restore its module",
				"slug", slug,
				"path", a.Path)
			continue
		}
		remaining = append(remaining, a)
	}

	if err := b.regenerate(remaining); err != nil {
		return nil, err
	}

	return &Result{
		Articles: len(remaining),
		Duration: time.Since(start),
	}, nil
}

// Status reports article, module and index state without writing anything
func (b *Builder) Status() (*Status, error) {
	articles, err := b.loadAll()
	if err != nil {
		return nil, err
	}

	man, err := manifest.Load(b.manifestPath)
	if err != nil {
		b.log.ManifestError("load", err)
		man = manifest.New()
	}

	st := &Status{
		ArticleCount: len(articles),
		IndexExists:  b.gen.HasIndex(),
	}

	for _, a := range articles {
		if b.gen.HasModule(a.Slug) {
			st.ModuleCount++
		}
		changed, err := man.HasChanged(a.Slug, a.Path)
		if err == nil && changed {
			st.Pending = append(st.Pending, a.Slug)
		}
	}

	return st, nil
}

// Slugs returns the slugs of every article on disk, in build order
func (b *Builder) Slugs() ([]string, error) {
	articles, err := b.loadAll()
	if err != nil {
		return nil, err
	}

	slugs := make([]string, len(articles))
	for i, a := range articles {
		slugs[i] = a.Slug
	}
	return slugs, nil
}

func (b *Builder) loadAll() ([]article.Article, error) {
	articles, err := article.LoadAll(b.cfg.ContentDir, b.cfg.ImagePrefix, b.cfg.PublicImagePath)
	if err != nil {
		b.log.ParseError(b.cfg.ContentDir, err)
		return nil, err
	}
	return articles, nil
}

// regenerate writes the complete module set and index for articles, then
// brings the manifest in line with what was built.
func (b *Builder) regenerate(articles []article.Article) error {
	man, err := manifest.Load(b.manifestPath)
	if err != nil {
		b.log.ManifestError("load", err)
		man = manifest.New()
	}

	for _, a := range articles {
		changed, err := man.HasChanged(a.Slug, a.Path)
		if err == nil && !changed {
			b.log.ArticleUnchanged(a.Slug)
		}
	}

	if err := b.gen.Generate(articles); err != nil {
		return err
	}

	for _, a := range articles {
		b.log.ModuleWritten(a.Slug, b.gen.ModulePath(a.Slug))
	}
	b.log.IndexWritten(b.gen.IndexPath(), len(articles))

	man = manifest.New()
	for _, a := range articles {
		if err := man.Record(a.Slug, a.Path); err != nil {
			b.log.ManifestError("record", err)
			continue
		}
	}
	if err := man.Save(b.manifestPath); err != nil {
		b.log.ManifestError("save", err)
	}

	return nil
}
