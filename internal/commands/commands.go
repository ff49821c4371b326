// Package commands implements the CLI flows: batch builds, single-slug
// builds, deletes, status, and the interactive prompt fallback. All
// operator-visible output is categorized through the shared styles.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/evergreenchapel/sitegen/internal/build"
	"github.com/evergreenchapel/sitegen/internal/config"
	"github.com/evergreenchapel/sitegen/internal/logger"
	"github.com/evergreenchapel/sitegen/internal/styles"
)

const timeUnit = time.Millisecond

// Commands wires the builder, prompt provider and output stream together
type Commands struct {
	cfg     *config.Config
	log     *logger.Logger
	builder *build.Builder
	prompt  Provider
	out     io.Writer
}

// New creates the command layer
func New(cfg *config.Config, log *logger.Logger, prompt Provider, out io.Writer) *Commands {
	return &Commands{
		cfg:     cfg,
		log:     log,
		builder: build.New(cfg, log),
		prompt:  prompt,
		out:     out,
	}
}

// BuildAll builds every article
func (c *Commands) BuildAll() error {
	c.title("Building all articles")

	result, err := c.builder.All()
	if err != nil {
		c.failure("Build failed: " + err.Error())
		return err
	}

	c.success(fmt.Sprintf("Built %d article(s), copied %d asset(s) in %v",
		result.Articles, result.AssetsCopied, result.Duration.Round(timeUnit)))
	return nil
}

// BuildOne builds a single slug, regenerating the full index when one
// already exists.
func (c *Commands) BuildOne(slug string) error {
	c.title("Building article " + slug)

	result, err := c.builder.One(slug)
	if err != nil {
		c.failure("Build failed: " + err.Error())
		return err
	}

	c.success(fmt.Sprintf("Built %q; index now holds %d article(s)", slug, result.Articles))
	return nil
}

// Delete removes the generated module for slug and regenerates the index
// from the remaining articles.
func (c *Commands) Delete(slug string) error {
	c.title("Deleting article " + slug)

	result, err := c.builder.Delete(slug)
	if err != nil {
		c.failure("Delete failed: " + err.Error())
		return err
	}

	c.success(fmt.Sprintf("Deleted %q; index now holds %d article(s)", slug, result.Articles))
	return nil
}

// Status prints a read-only snapshot of the pipeline state
func (c *Commands) Status() error {
	c.title("Site content status")

	st, err := c.builder.Status()
	if err != nil {
		c.failure("Status failed: " + err.Error())
		return err
	}

	c.dim(c.cfg.ContentDir + " → " + c.cfg.OutputDir)
	c.info(fmt.Sprintf("Articles on disk:   %d", st.ArticleCount))
	c.info(fmt.Sprintf("Generated modules:  %d", st.ModuleCount))
	if st.IndexExists {
		c.info("Index:              present")
	} else {
		c.warn("Index:              missing (run a build)")
	}
	if len(st.Pending) == 0 {
		c.success("All articles up to date")
	} else {
		for _, slug := range st.Pending {
			c.warn("Changed since last build: " + slug)
		}
	}
	return nil
}

// Interactive asks build vs delete, then the target. Empty input aborts
// the delete path without error and means "build all" in the build path.
func (c *Commands) Interactive() error {
	action, err := c.prompt.Ask(styles.PromptStyle.Render("Action ([b]uild / [d]elete): "))
	if err != nil {
		return err
	}

	switch action {
	case "d", "delete":
		return c.InteractiveDelete()
	case "", "b", "build":
		return c.interactiveBuild()
	default:
		c.failure("Unknown action: " + action)
		return fmt.Errorf("unknown action %q", action)
	}
}

func (c *Commands) interactiveBuild() error {
	slugs, err := c.builder.Slugs()
	if err != nil {
		c.failure("Failed to list articles: " + err.Error())
		return err
	}
	c.listTargets(slugs)

	answer, err := c.prompt.Ask(styles.PromptStyle.Render("Article number or slug (empty = all): "))
	if err != nil {
		return err
	}
	if answer == "" {
		return c.BuildAll()
	}

	slug, ok := resolveTarget(answer, slugs)
	if !ok {
		c.failure("No such article: " + answer)
		return &build.NotFoundError{Slug: answer, Kind: "article"}
	}
	return c.BuildOne(slug)
}

// InteractiveDelete prompts for a delete target, re-prompting while the
// operator names unknown slugs. Empty input aborts without error.
func (c *Commands) InteractiveDelete() error {
	slugs, err := c.builder.Slugs()
	if err != nil {
		c.failure("Failed to list articles: " + err.Error())
		return err
	}

	for {
		c.listTargets(slugs)

		answer, err := c.prompt.Ask(styles.PromptStyle.Render("Delete number or slug (empty = cancel): "))
		if err != nil {
			return err
		}
		if answer == "" {
			c.dim("Delete cancelled")
			return nil
		}

		slug, ok := resolveTarget(answer, slugs)
		if !ok {
			slug = answer
		}

		err = c.Delete(slug)
		var notFound *build.NotFoundError
		if errors.As(err, &notFound) {
			// Operator-correctable: ask again.
			continue
		}
		return err
	}
}

// resolveTarget maps a 1-based ordinal or literal slug onto the slug list
func resolveTarget(answer string, slugs []string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(slugs) {
			return slugs[n-1], true
		}
		return "", false
	}
	for _, slug := range slugs {
		if slug == answer {
			return slug, true
		}
	}
	return "", false
}

func (c *Commands) listTargets(slugs []string) {
	if len(slugs) == 0 {
		c.dim("(no articles found)")
		return
	}
	for i, slug := range slugs {
		fmt.Fprintf(c.out, "%s %s\n", styles.DimStyle.Render(fmt.Sprintf("%2d.", i+1)), slug)
	}
}

func (c *Commands) title(msg string) {
	fmt.Fprintln(c.out, styles.TitleStyle.Render(msg))
}

func (c *Commands) info(msg string) {
	fmt.Fprintln(c.out, styles.InfoStyle.Render(msg))
}

func (c *Commands) warn(msg string) {
	fmt.Fprintln(c.out, styles.WarningStyle.Render("! "+msg))
}

func (c *Commands) success(msg string) {
	fmt.Fprintln(c.out, styles.SuccessStyle.Render("✓ "+msg))
}

func (c *Commands) failure(msg string) {
	fmt.Fprintln(c.out, styles.ErrorStyle.Render("✗ "+msg))
}

func (c *Commands) dim(msg string) {
	fmt.Fprintln(c.out, styles.DimStyle.Render(msg))
}
