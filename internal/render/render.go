// Package render converts the constrained markdown subset used by article
// bodies into markup fragments. Rendering is an ordered sequence of passes
// over the body's lines; the order is load-bearing: longest-match first for
// headers and emphasis, block structure before inline substitution. Each
// pass preserves line boundaries so later passes can detect adjacency.
package render

import (
	"regexp"
	"strings"
)

// pass is one transformation step. Apply takes the lines left by the
// previous pass and returns the transformed lines.
type pass struct {
	name  string
	apply func(lines []string) []string
}

// passes run in order: headers (h6 down to h1), emphasis (triple, double,
// single), blockquotes, list items, list-run wrapping, paragraph wrapping,
// empty-paragraph cleanup, then inline images and links.
var passes = []pass{
	{"headers", headers},
	{"emphasis", emphasis},
	{"blockquotes", blockquotes},
	{"list-items", listItems},
	{"list-runs", wrapListRuns},
	{"paragraphs", paragraphs},
	{"empty-paragraphs", dropEmptyParagraphs},
	{"images", images},
	{"links", links},
}

// Render converts markdown body text to a markup string. Pure function,
// no I/O.
func Render(body string) string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	for _, p := range passes {
		lines = p.apply(lines)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// headerPatterns are ordered from six markers down to one so a shorter
// pattern never swallows part of a longer one.
var headerPatterns = []struct {
	re  *regexp.Regexp
	tag string
}{
	{regexp.MustCompile(`^###### (.+)$`), "h6"},
	{regexp.MustCompile(`^##### (.+)$`), "h5"},
	{regexp.MustCompile(`^#### (.+)$`), "h4"},
	{regexp.MustCompile(`^### (.+)$`), "h3"},
	{regexp.MustCompile(`^## (.+)$`), "h2"},
	{regexp.MustCompile(`^# (.+)$`), "h1"},
}

func headers(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line
		for _, hp := range headerPatterns {
			if hp.re.MatchString(line) {
				out[i] = hp.re.ReplaceAllString(line, "<"+hp.tag+">$1</"+hp.tag+">")
				break
			}
		}
	}
	return out
}

// Emphasis runs triple before double before single for the same
// anti-swallowing reason as headers.
var (
	tripleEmphasisRe = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	doubleEmphasisRe = regexp.MustCompile(`\*\*(.+?)\*\*`)
	singleEmphasisRe = regexp.MustCompile(`\*(.+?)\*`)
)

func emphasis(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		line = tripleEmphasisRe.ReplaceAllString(line, "<strong><em>$1</em></strong>")
		line = doubleEmphasisRe.ReplaceAllString(line, "<strong>$1</strong>")
		line = singleEmphasisRe.ReplaceAllString(line, "<em>$1</em>")
		out[i] = line
	}
	return out
}

var blockquoteRe = regexp.MustCompile(`^> (.+)$`)

func blockquotes(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = blockquoteRe.ReplaceAllString(line, "<blockquote>$1</blockquote>")
	}
	return out
}

var listItemRe = regexp.MustCompile(`^- (.+)$`)

func listItems(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = listItemRe.ReplaceAllString(line, "<li>$1</li>")
	}
	return out
}

// wrapListRuns wraps every maximal run of adjacent list-item lines in a
// single list container. Runs are detected by adjacency in the transformed
// lines, not by any original-document structure: a blank line between two
// items yields two separate containers.
func wrapListRuns(lines []string) []string {
	var out []string
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], "<li>") {
			out = append(out, lines[i])
			i++
			continue
		}
		out = append(out, "<ul>")
		for i < len(lines) && strings.HasPrefix(lines[i], "<li>") {
			out = append(out, lines[i])
			i++
		}
		out = append(out, "</ul>")
	}
	return out
}

// blockPrefixes are the block-level tags earlier passes can leave at the
// start of a line. Only these exempt a line from paragraph wrapping; a line
// beginning with inline markup such as emphasis still belongs in a
// paragraph.
var blockPrefixes = []string{
	"<h1>", "<h2>", "<h3>", "<h4>", "<h5>", "<h6>",
	"<blockquote>", "<li>", "<ul>", "</ul>",
}

func isBlockLine(line string) bool {
	for _, prefix := range blockPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// paragraphs wraps any remaining non-blank line that is not already a
// block element. Runs strictly after all block-level passes so block
// content is never double-wrapped.
func paragraphs(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isBlockLine(trimmed) {
			out[i] = line
			continue
		}
		out[i] = "<p>" + trimmed + "</p>"
	}
	return out
}

var emptyParagraphRe = regexp.MustCompile(`^<p>\s*</p>$`)

func dropEmptyParagraphs(lines []string) []string {
	var out []string
	for _, line := range lines {
		if emptyParagraphRe.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Inline substitutions run last so link and image syntax inside headers or
// list items is still recognized. Images run before links so the link
// pattern cannot swallow an image's bracket pair.
var (
	imageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkRe  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

func images(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = imageRe.ReplaceAllString(line, `<img src="$2" alt="$1" />`)
	}
	return out
}

func links(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = linkRe.ReplaceAllString(line, `<a href="$2">$1</a>`)
	}
	return out
}
