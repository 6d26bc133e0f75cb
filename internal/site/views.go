package site

import (
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/tbell/folio/internal/record"
)

// PostView is a post prepared for templating: Markdown converted,
// dates formatted, tags split.
type PostView struct {
	Slug         string
	Title        string
	Author       string
	ThumbnailURL string
	Tags         []string
	SummaryHTML  template.HTML
	BodyHTML     template.HTML
	CreatedAt    string
	UpdatedAt    string
	// JSON-LD for the post page, embedded verbatim in a script tag.
	StructuredData template.JS
}

// ProjectView is a project prepared for templating.
type ProjectView struct {
	Slug            string
	Title           string
	ProjectType     string
	Summary         string
	Duration        string
	Skills          string
	DescriptionHTML template.HTML
	CreatedAt       string
	UpdatedAt       string
}

const summaryRunes = 200

func buildPostView(p *record.Post, md renderer) *PostView {
	summary := p.Summary
	if summary == "" {
		summary = truncate(p.BodyMD, summaryRunes)
	}

	return &PostView{
		Slug:         p.Slug,
		Title:        p.Title,
		Author:       p.Author,
		ThumbnailURL: p.ThumbnailURL,
		Tags:         p.TagList(),
		SummaryHTML:  template.HTML(md.render([]byte(summary))),
		BodyHTML:     template.HTML(md.render([]byte(p.BodyMD))),
		CreatedAt:    formatDate(p.CreatedAt),
		UpdatedAt:    formatDate(p.UpdatedAt),
	}
}

func buildProjectView(pr *record.Project, md renderer) *ProjectView {
	return &ProjectView{
		Slug:            pr.Slug,
		Title:           pr.Title,
		ProjectType:     pr.ProjectType,
		Summary:         pr.Summary,
		Duration:        pr.Duration,
		Skills:          pr.Skills,
		DescriptionHTML: template.HTML(md.render([]byte(pr.DescriptionMD))),
		CreatedAt:       formatDate(pr.CreatedAt),
		UpdatedAt:       formatDate(pr.UpdatedAt),
	}
}

func formatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 02, 2006")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// durationEnd parses the token after the last '-' of a duration like
// "Mar 2021 - Jun 2023". Sentinels like "Present" and malformed values
// come back as the zero time, which sorts such projects to the bottom.
func durationEnd(duration string) time.Time {
	i := strings.LastIndex(duration, "-")
	if i < 0 {
		return time.Time{}
	}
	end, err := time.Parse("Jan 2006", strings.TrimSpace(duration[i+1:]))
	if err != nil {
		return time.Time{}
	}
	return end
}

// sortProjectsByEnd orders projects by the end of their duration,
// most recent first.
func sortProjectsByEnd(projects []*record.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return durationEnd(projects[i].Duration).After(durationEnd(projects[j].Duration))
	})
}
