// Package frontmatter parses the restricted metadata header carried at the
// top of every article file. The header is a pair of "---" delimiter lines
// enclosing line-oriented "key: value" pairs; a key with an empty value
// followed by "- item" lines forms a list. Nested structures, quoting and
// multi-line scalars are not part of the format.
package frontmatter

import (
	"fmt"
	"strings"
)

// Delimiter opens and closes the header block.
const Delimiter = "---"

// Frontmatter is the structured metadata extracted from an article header.
type Frontmatter struct {
	Title         string
	Slug          string
	Excerpt       string
	FeaturedImage string
	Category      string
	PublishDate   string
	Author        string
	Tags          []string
	Subtitle      string
}

// FormatError reports a malformed or missing header block.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid frontmatter: " + e.Reason
}

// Parse splits raw article text into its Frontmatter and body. The text
// must begin with a delimiter line; the next delimiter line closes the
// header. Returns a FormatError when the delimiter pair is absent.
func Parse(raw string) (Frontmatter, string, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != Delimiter {
		return Frontmatter{}, "", &FormatError{Reason: "missing opening --- delimiter"}
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delimiter {
			closing = i
			break
		}
	}
	if closing < 0 {
		return Frontmatter{}, "", &FormatError{Reason: "missing closing --- delimiter"}
	}

	fm, err := parseHeader(lines[1:closing])
	if err != nil {
		return Frontmatter{}, "", err
	}

	body := strings.Join(lines[closing+1:], "\n")
	return fm, body, nil
}

// parseHeader walks the header lines, collecting scalars and list blocks.
func parseHeader(lines []string) (Frontmatter, error) {
	fm := Frontmatter{Tags: []string{}}

	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return Frontmatter{}, &FormatError{Reason: fmt.Sprintf("malformed header line %q", line)}
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if value != "" {
			setScalar(&fm, key, value)
			i++
			continue
		}

		// Empty value starts a list block. The block is closed by the
		// first non-blank line that is not a list item; a list key with
		// no following items yields an empty list.
		items := []string{}
		j := i + 1
		for j < len(lines) {
			next := lines[j]
			if strings.TrimSpace(next) == "" {
				j++
				continue
			}
			item, isItem := cutListItem(next)
			if !isItem {
				break
			}
			items = append(items, item)
			j++
		}

		if key == "tags" {
			fm.Tags = items
		}
		i = j
	}

	return fm, nil
}

// cutListItem reports whether line is a "- item" list entry and returns
// the item text.
func cutListItem(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "- ") {
		return "", false
	}
	return strings.TrimSpace(trimmed[2:]), true
}

func setScalar(fm *Frontmatter, key, value string) {
	switch key {
	case "title":
		fm.Title = value
	case "slug":
		fm.Slug = value
	case "excerpt":
		fm.Excerpt = value
	case "featuredImage":
		fm.FeaturedImage = value
	case "category":
		fm.Category = value
	case "publishDate":
		fm.PublishDate = value
	case "author":
		fm.Author = value
	case "subtitle":
		fm.Subtitle = value
	}
}
