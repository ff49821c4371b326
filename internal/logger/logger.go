package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to w and appends to the log
// file at path. The returned cleanup closes the file.
func NewFileLogger(w io.Writer, path string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewMultiLogger(w, f), cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(writers ...io.Writer) *Logger {
	w := io.MultiWriter(writers...)
	return New(w)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// BuildStarted logs the start of a build run
func (l *Logger) BuildStarted(contentDir, outputDir string) {
	l.Info("build started",
		"content_dir", contentDir,
		"output_dir", outputDir)
}

// BuildCompleted logs the completion of a build run
func (l *Logger) BuildCompleted(articles int, duration time.Duration) {
	l.Info("build completed",
		"articles", articles,
		"duration", duration.Round(time.Millisecond))
}

// ArticleLoaded logs a successfully parsed article
func (l *Logger) ArticleLoaded(slug, path string) {
	l.Info("article loaded",
		"slug", slug,
		"path", path)
}

// ArticleUnchanged logs an article whose source matches the manifest
func (l *Logger) ArticleUnchanged(slug string) {
	l.Debug("article unchanged",
		"slug", slug)
}

// ModuleWritten logs a generated module write
func (l *Logger) ModuleWritten(slug, path string) {
	l.Info("module written",
		"slug", slug,
		"path", path)
}

// ModuleDeleted logs a generated module removal
func (l *Logger) ModuleDeleted(slug, path string) {
	l.Warn("module deleted",
		"slug", slug,
		"path", path)
}

// IndexWritten logs an index regeneration
func (l *Logger) IndexWritten(path string, articles int) {
	l.Info("index written",
		"path", path,
		"articles", articles)
}

// AssetCopied logs a copied image asset
func (l *Logger) AssetCopied(source, dest string) {
	l.Debug("asset copied",
		"source", source,
		"dest", dest)
}

// AssetsSkipped logs a missing source images directory
func (l *Logger) AssetsSkipped(dir string) {
	l.Debug("assets skipped",
		"dir", dir,
		"reason", "source directory does not exist")
}

// ParseError logs a frontmatter or rendering failure
func (l *Logger) ParseError(file string, err error) {
	l.Error("parse failed",
		"file", file,
		"error", err)
}

// ManifestError logs a manifest-related error
func (l *Logger) ManifestError(operation string, err error) {
	l.Error("manifest error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(contentDir, imagesDir, outputDir string) {
	l.Debug("config loaded",
		"content_dir", contentDir,
		"images_dir", imagesDir,
		"output_dir", outputDir)
}
