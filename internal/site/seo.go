package site

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tbell/folio/internal/record"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// writeSitemap emits sitemap.xml: the four index pages plus one entry
// per live project and post, with updated_at as lastmod when present.
func writeSitemap(baseURL string, posts []*record.Post, projects []*record.Project, outDir string) error {
	base := strings.TrimRight(baseURL, "/")
	today := time.Now().Format("2006-01-02")

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []urlEntry{
			{Loc: base + "/", LastMod: today, ChangeFreq: "weekly", Priority: "1.0"},
			{Loc: base + "/about/", LastMod: today, ChangeFreq: "monthly", Priority: "0.8"},
			{Loc: base + "/projects/", LastMod: today, ChangeFreq: "weekly", Priority: "0.8"},
			{Loc: base + "/posts/", LastMod: today, ChangeFreq: "daily", Priority: "0.9"},
		},
	}

	for _, pr := range projects {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        fmt.Sprintf("%s/projects/%s/", base, pr.Slug),
			LastMod:    lastMod(pr.UpdatedAt),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        fmt.Sprintf("%s/posts/%s/", base, p.Slug),
			LastMod:    lastMod(p.UpdatedAt),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sitemap: %w", err)
	}
	out = append([]byte(xml.Header), out...)
	return os.WriteFile(filepath.Join(outDir, "sitemap.xml"), out, 0o664)
}

// writeRobots emits a robots.txt permitting all crawlers and pointing
// at the sitemap.
func writeRobots(baseURL, outDir string) error {
	base := strings.TrimRight(baseURL, "/")
	robots := strings.Join([]string{
		"User-agent: *",
		"Allow: /",
		"",
		"Sitemap: " + base + "/sitemap.xml",
		"",
	}, "\n")
	return os.WriteFile(filepath.Join(outDir, "robots.txt"), []byte(robots), 0o664)
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// PersonJSONLD returns schema.org Person structured data for the site
// owner.
func PersonJSONLD(author, description, baseURL string) string {
	return marshalJSONLD(map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Person",
		"name":        author,
		"url":         strings.TrimRight(baseURL, "/"),
		"description": description,
	})
}

// BlogPostingJSONLD returns schema.org BlogPosting structured data for
// one post.
func BlogPostingJSONLD(p *record.Post, author, baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "BlogPosting",
		"headline": p.Title,
		"author": map[string]any{
			"@type": "Person",
			"name":  author,
		},
		"url":           fmt.Sprintf("%s/posts/%s/", base, p.Slug),
		"datePublished": lastMod(p.CreatedAt),
		"dateModified":  lastMod(p.UpdatedAt),
		"description":   truncate(p.Summary, summaryRunes),
	}
	if tags := p.TagList(); len(tags) > 0 {
		data["keywords"] = strings.Join(tags, ", ")
	}
	return marshalJSONLD(data)
}

// WebSiteJSONLD returns schema.org WebSite structured data for the
// site as a whole.
func WebSiteJSONLD(siteTitle, description, author, baseURL string) string {
	return marshalJSONLD(map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        siteTitle,
		"description": description,
		"url":         strings.TrimRight(baseURL, "/"),
		"author": map[string]any{
			"@type": "Person",
			"name":  author,
		},
	})
}

func marshalJSONLD(data map[string]any) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		// Maps of strings cannot fail to marshal.
		return "{}"
	}
	return string(out)
}
