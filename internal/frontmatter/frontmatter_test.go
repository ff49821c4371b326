package frontmatter

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

const sampleArticle = `---
title: Welcome to Evergreen
slug: welcome-to-evergreen
excerpt: A short introduction to our community.
featuredImage: ../images/welcome.jpg
category: News
publishDate: 2025-06-01
author: Pat Rivers
tags:
  - faith
  - family
subtitle: Getting to know us
---
# Welcome

Body text here.
`

func TestParse(t *testing.T) {
	fm, body, err := Parse(sampleArticle)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if fm.Title != "Welcome to Evergreen" {
		t.Errorf("Title = %q, want %q", fm.Title, "Welcome to Evergreen")
	}
	if fm.Slug != "welcome-to-evergreen" {
		t.Errorf("Slug = %q, want %q", fm.Slug, "welcome-to-evergreen")
	}
	if fm.Excerpt != "A short introduction to our community." {
		t.Errorf("Excerpt = %q", fm.Excerpt)
	}
	if fm.FeaturedImage != "../images/welcome.jpg" {
		t.Errorf("FeaturedImage = %q", fm.FeaturedImage)
	}
	if fm.Category != "News" {
		t.Errorf("Category = %q, want %q", fm.Category, "News")
	}
	if fm.PublishDate != "2025-06-01" {
		t.Errorf("PublishDate = %q, want %q", fm.PublishDate, "2025-06-01")
	}
	if fm.Author != "Pat Rivers" {
		t.Errorf("Author = %q, want %q", fm.Author, "Pat Rivers")
	}
	if !reflect.DeepEqual(fm.Tags, []string{"faith", "family"}) {
		t.Errorf("Tags = %v, want [faith family]", fm.Tags)
	}
	if fm.Subtitle != "Getting to know us" {
		t.Errorf("Subtitle = %q", fm.Subtitle)
	}

	if !strings.HasPrefix(body, "# Welcome") {
		t.Errorf("body should start with the first line after the header, got %q", body)
	}
}

func TestParseMissingDelimiters(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "no opening delimiter",
			input: "title: Oops\n---\nbody\n",
		},
		{
			name:  "no closing delimiter",
			input: "---\ntitle: Oops\nbody\n",
		},
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "body only",
			input: "# Just a heading\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Errorf("expected FormatError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseTagsCoercedToEmptyList(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "tags absent",
			input: "---\ntitle: No Tags\nslug: no-tags\n---\nbody\n",
		},
		{
			name:  "tags scalar not list",
			input: "---\ntitle: No Tags\ntags: faith\n---\nbody\n",
		},
		{
			name:  "tags key with no items at end of block",
			input: "---\ntitle: No Tags\ntags:\n---\nbody\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, _, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if fm.Tags == nil {
				t.Fatal("Tags must never be nil")
			}
			if len(fm.Tags) != 0 {
				t.Errorf("Tags = %v, want empty list", fm.Tags)
			}
		})
	}
}

func TestParseBlankLinesInsideHeader(t *testing.T) {
	input := "---\ntitle: Spaced Out\n\ntags:\n  - faith\n\n  - family\n\nauthor: Pat\n---\nbody\n"

	fm, _, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Blank lines are skipped, not treated as block terminators.
	if !reflect.DeepEqual(fm.Tags, []string{"faith", "family"}) {
		t.Errorf("Tags = %v, want [faith family]", fm.Tags)
	}
	if fm.Author != "Pat" {
		t.Errorf("Author = %q, want %q", fm.Author, "Pat")
	}
}

func TestParseListClosedByNextKey(t *testing.T) {
	input := "---\ntags:\n  - faith\n  - community\ncategory: Events\n---\nbody\n"

	fm, _, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !reflect.DeepEqual(fm.Tags, []string{"faith", "community"}) {
		t.Errorf("Tags = %v, want [faith community]", fm.Tags)
	}
	if fm.Category != "Events" {
		t.Errorf("Category = %q, want %q (list block should close at the next key line)", fm.Category, "Events")
	}
}

func TestParseMalformedHeaderLine(t *testing.T) {
	input := "---\ntitle: Fine\nthis line has no colon\n---\nbody\n"

	_, _, err := Parse(input)
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError for malformed header line, got %v", err)
	}
}

// TestRoundTrip serializes parsed frontmatter back into header notation and
// reparses it: scalars and tag order must survive exactly.
func TestRoundTrip(t *testing.T) {
	fm, _, err := Parse(sampleArticle)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	reparsed, _, err := Parse(serialize(fm) + "body\n")
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}

	if !reflect.DeepEqual(fm, reparsed) {
		t.Errorf("round trip mismatch:\n before: %+v\n after:  %+v", fm, reparsed)
	}
}

func serialize(fm Frontmatter) string {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	fmt.Fprintf(&b, "title: %s\n", fm.Title)
	fmt.Fprintf(&b, "slug: %s\n", fm.Slug)
	fmt.Fprintf(&b, "excerpt: %s\n", fm.Excerpt)
	fmt.Fprintf(&b, "featuredImage: %s\n", fm.FeaturedImage)
	fmt.Fprintf(&b, "category: %s\n", fm.Category)
	fmt.Fprintf(&b, "publishDate: %s\n", fm.PublishDate)
	fmt.Fprintf(&b, "author: %s\n", fm.Author)
	b.WriteString("tags:\n")
	for _, tag := range fm.Tags {
		fmt.Fprintf(&b, "  - %s\n", tag)
	}
	fmt.Fprintf(&b, "subtitle: %s\n", fm.Subtitle)
	b.WriteString(Delimiter + "\n")
	return b.String()
}
