package content

import (
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

const timeFormat = "2006-01-02 15:04:05"

func writeSource(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0o664); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParsePost(t *testing.T) {
	path := writeSource(t, "My First Post.md", `# My First Post
2024-03-01 10:30:00
A short summary.
https://example.com/thumb.png
go, sqlite, blogging
This is the body.

It has two paragraphs.`)

	post, err := ParsePost(path, timeFormat)
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}

	if post.Slug != "my-first-post" {
		t.Errorf("slug = %q", post.Slug)
	}
	if post.Title != "My First Post" {
		t.Errorf("title = %q", post.Title)
	}
	if post.Summary != "A short summary." {
		t.Errorf("summary = %q", post.Summary)
	}
	if post.ThumbnailURL != "https://example.com/thumb.png" {
		t.Errorf("thumbnail = %q", post.ThumbnailURL)
	}
	if post.Tags != "go, sqlite, blogging" {
		t.Errorf("tags = %q", post.Tags)
	}
	if want := "This is the body.\n\nIt has two paragraphs."; post.BodyMD != want {
		t.Errorf("body = %q, want %q", post.BodyMD, want)
	}
	if got := post.CreatedAt.Format(timeFormat); got != "2024-03-01 10:30:00" {
		t.Errorf("created at = %q", got)
	}
}

func TestParsePostValidation(t *testing.T) {
	cases := []struct {
		name, text string
	}{
		{"empty file", ""},
		{"too few lines", "# Title\n2024-03-01 10:30:00\nsummary"},
		{"bad timestamp", "# Title\nyesterday\nsummary\nthumb\ntags\nbody"},
		{"empty body", "# Title\n2024-03-01 10:30:00\nsummary\nthumb\ntags\n   "},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeSource(t, "post.md", c.text)
			_, err := ParsePost(path, timeFormat)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Errorf("error not a validation error: %v", err)
			}
		})
	}
}

func TestParseProject(t *testing.T) {
	path := writeSource(t, "Search Engine.md", `# Search Engine
Work Project
A toy search engine.
Mar 2021 - Jun 2023
Go, SQLite
Long description here.`)

	project, err := ParseProject(path)
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}

	if project.Slug != "search-engine" {
		t.Errorf("slug = %q", project.Slug)
	}
	if project.ProjectType != "Work Project" {
		t.Errorf("project type = %q", project.ProjectType)
	}
	if project.Duration != "Mar 2021 - Jun 2023" {
		t.Errorf("duration = %q", project.Duration)
	}
	if project.DescriptionMD != "Long description here." {
		t.Errorf("description = %q", project.DescriptionMD)
	}
}

func TestParseProjectDefaults(t *testing.T) {
	// A title alone is a valid project; everything else defaults.
	path := writeSource(t, "tiny.md", "# Tiny")

	project, err := ParseProject(path)
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}

	if project.ProjectType != DefaultProjectType {
		t.Errorf("project type = %q, want %q", project.ProjectType, DefaultProjectType)
	}
	if project.Summary != "" || project.Duration != "" || project.Skills != "" || project.DescriptionMD != "" {
		t.Errorf("expected empty defaults, got %+v", project)
	}
}

func TestParseProjectEmptyFile(t *testing.T) {
	path := writeSource(t, "empty.md", "\n\n")
	if _, err := ParseProject(path); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
