// Package content turns Markdown source files into structured records.
// Parsing is line-positional and all-or-nothing: a file either yields a
// complete record or a validation error the caller can log and skip.
package content

import (
	"fmt"
	"os"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/tbell/folio/internal/record"
)

// DefaultProjectType is used when a project source leaves line 2 blank.
const DefaultProjectType = "Personal Project"

// Post source layout:
//
//	line 1  title (leading '#' markers stripped)
//	line 2  created-at timestamp in the configured format
//	line 3  summary (optional)
//	line 4  thumbnail URL (optional)
//	line 5  comma-separated tags (optional)
//	line 6+ body (required)
const postMinLines = 6

// ParsePost reads one Markdown file and returns the post it describes.
// timeFormat is the layout the created-at line must match.
func ParsePost(path, timeFormat string) (*record.Post, error) {
	slug, lines, err := readSource(path)
	if err != nil {
		return nil, err
	}

	if len(lines) < postMinLines {
		return nil, validationErr("%s: post needs at least %d lines (title, date, summary, thumbnail, tags, body)", path, postMinLines)
	}

	createdAt, err := time.Parse(timeFormat, strings.TrimSpace(lines[1]))
	if err != nil {
		return nil, validationErr("%s: invalid created-at %q, want format %q", path, strings.TrimSpace(lines[1]), timeFormat)
	}

	body := strings.TrimSpace(strings.Join(lines[postMinLines-1:], "\n"))
	if body == "" {
		return nil, validationErr("%s: post body is empty", path)
	}

	return &record.Post{
		Slug:         slug,
		Title:        title(lines[0]),
		Summary:      strings.TrimSpace(lines[2]),
		ThumbnailURL: strings.TrimSpace(lines[3]),
		Tags:         strings.TrimSpace(lines[4]),
		BodyMD:       body,
		CreatedAt:    createdAt,
	}, nil
}

// Project source layout: title, project type, summary, duration,
// skills, then an optional description. Only the title is required.
func ParseProject(path string) (*record.Project, error) {
	slug, lines, err := readSource(path)
	if err != nil {
		return nil, err
	}

	projectType := strings.TrimSpace(line(lines, 1))
	if projectType == "" {
		projectType = DefaultProjectType
	}

	description := ""
	if len(lines) > 5 {
		description = strings.TrimSpace(strings.Join(lines[5:], "\n"))
	}

	return &record.Project{
		Slug:          slug,
		Title:         title(lines[0]),
		ProjectType:   projectType,
		Summary:       strings.TrimSpace(line(lines, 2)),
		Duration:      strings.TrimSpace(line(lines, 3)),
		Skills:        strings.TrimSpace(line(lines, 4)),
		DescriptionMD: description,
	}, nil
}

// readSource loads a file and derives its slug, rejecting files that
// cannot identify a record.
func readSource(path string) (string, []string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("read %s", path))
	}

	text := strings.TrimSpace(strings.ReplaceAll(string(raw), "\r\n", "\n"))
	if text == "" {
		return "", nil, validationErr("%s: file is empty", path)
	}

	slug := Slugify(path)
	if slug == "" {
		return "", nil, validationErr("%s: filename yields an empty slug", path)
	}

	lines := strings.Split(text, "\n")
	if title(lines[0]) == "" {
		return "", nil, validationErr("%s: first line must be the title", path)
	}

	return slug, lines, nil
}

func title(l string) string {
	return strings.TrimSpace(strings.TrimLeft(l, "#"))
}

func line(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func validationErr(format string, args ...any) error {
	return goerrors.New(fmt.Sprintf(format, args...), goerrors.CategoryValidation)
}
