// Package site renders the staged records into a self-contained static
// output tree: HTML pages, static assets, sitemap, robots.txt, and an
// atom feed. Builds are always full; there is no incremental mode.
package site

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-logger/glog"
	"github.com/otiai10/copy"

	"github.com/tbell/folio/internal/config"
	"github.com/tbell/folio/internal/record"
	"github.com/tbell/folio/internal/store"
)

// Fixed HTML used when the about content files are absent. A missing
// about file is not an error.
const (
	aboutPlaceholder        = "<p>About content not found.</p>"
	aboutSummaryPlaceholder = "<p>About me content not found.</p>"
)

// Builder produces the output tree from whatever is live in the store.
type Builder struct {
	cfg      *config.Config
	posts    *store.PostStore
	projects *store.ProjectStore
	md       renderer
	log      glog.Logger
}

// NewBuilder wires a builder to the store and configuration.
func NewBuilder(cfg *config.Config, s *store.Store, log glog.Logger) *Builder {
	return &Builder{
		cfg:      cfg,
		posts:    s.Posts(),
		projects: s.Projects(),
		md:       newMarkdownRenderer(),
		log:      log,
	}
}

type siteParam struct {
	SiteTitle   string
	Description string
	Author      string
	BaseURL     string
}

type indexParam struct {
	siteParam
	AboutHTML      template.HTML
	Posts          []*PostView
	Projects       []*ProjectView
	StructuredData template.JS
}

type aboutParam struct {
	siteParam
	AboutHTML      template.HTML
	StructuredData template.JS
}

type postListParam struct {
	siteParam
	Posts []*PostView
}

type projectListParam struct {
	siteParam
	Projects []*ProjectView
}

type postParam struct {
	siteParam
	Post *PostView
}

type projectParam struct {
	siteParam
	Project *ProjectView
}

// Build runs the whole publish pipeline. Individual pages that cannot
// be rendered are skipped; a missing per-item template aborts the
// build because no page of that kind could be produced.
func (b *Builder) Build(ctx context.Context) error {
	if err := b.ensureDirs(); err != nil {
		return err
	}
	b.replaceStatic()

	posts, err := b.posts.FetchAll(ctx)
	if err != nil {
		return err
	}
	projects, err := b.projects.FetchAll(ctx)
	if err != nil {
		return err
	}
	sortProjectsByEnd(projects)

	postViews := make([]*PostView, 0, len(posts))
	for _, p := range posts {
		v := buildPostView(p, b.md)
		v.StructuredData = template.JS(BlogPostingJSONLD(p, b.cfg.Author, b.cfg.BaseURL))
		postViews = append(postViews, v)
	}
	projectViews := make([]*ProjectView, 0, len(projects))
	for _, pr := range projects {
		projectViews = append(projectViews, buildProjectView(pr, b.md))
	}

	engine := newTemplateEngine(b.cfg.TemplatesDir)
	base := siteParam{
		SiteTitle:   b.cfg.SiteTitle,
		Description: b.cfg.Description,
		Author:      b.cfg.Author,
		BaseURL:     strings.TrimRight(b.cfg.BaseURL, "/"),
	}

	b.renderPage(engine, "index.html", filepath.Join(b.cfg.OutputDir, "index.html"), indexParam{
		siteParam:      base,
		AboutHTML:      b.loadAboutSummary(),
		Posts:          postViews,
		Projects:       projectViews,
		StructuredData: template.JS(WebSiteJSONLD(base.SiteTitle, base.Description, base.Author, base.BaseURL)),
	})
	b.renderPage(engine, "about.html", filepath.Join(b.cfg.OutputDir, "about", "index.html"), aboutParam{
		siteParam:      base,
		AboutHTML:      b.loadAbout(),
		StructuredData: template.JS(PersonJSONLD(base.Author, base.Description, base.BaseURL)),
	})
	b.renderPage(engine, "posts.html", filepath.Join(b.cfg.OutputDir, "posts", "index.html"), postListParam{
		siteParam: base,
		Posts:     postViews,
	})
	b.renderPage(engine, "projects.html", filepath.Join(b.cfg.OutputDir, "projects", "index.html"), projectListParam{
		siteParam: base,
		Projects:  projectViews,
	})

	if err := b.renderPostPages(engine, base, postViews); err != nil {
		return err
	}
	if err := b.renderProjectPages(engine, base, projectViews); err != nil {
		return err
	}

	b.emitSEO(posts, projects)

	b.log.Info("site built",
		"posts", len(posts),
		"projects", len(projects),
		"output", b.cfg.OutputDir)
	return nil
}

// renderPage renders one standalone page. Failures are logged and the
// pipeline moves on.
func (b *Builder) renderPage(engine *templateEngine, tmpl, outPath string, data any) {
	if err := engine.renderToFile(tmpl, outPath, data); err != nil {
		b.log.Error("page skipped", "template", tmpl, "error", err)
	}
}

func (b *Builder) renderPostPages(engine *templateEngine, base siteParam, posts []*PostView) error {
	// Probe the template first: without it no post page can exist.
	if _, err := engine.get("post.html"); err != nil {
		return err
	}

	for _, v := range posts {
		outPath := filepath.Join(b.cfg.OutputDir, "posts", v.Slug, "index.html")
		if err := engine.renderToFile("post.html", outPath, postParam{siteParam: base, Post: v}); err != nil {
			b.log.Error("post page skipped", "slug", v.Slug, "error", err)
		}
	}
	return nil
}

func (b *Builder) renderProjectPages(engine *templateEngine, base siteParam, projects []*ProjectView) error {
	if _, err := engine.get("project.html"); err != nil {
		return err
	}

	for _, v := range projects {
		outPath := filepath.Join(b.cfg.OutputDir, "projects", v.Slug, "index.html")
		if err := engine.renderToFile("project.html", outPath, projectParam{siteParam: base, Project: v}); err != nil {
			b.log.Error("project page skipped", "slug", v.Slug, "error", err)
		}
	}
	return nil
}

func (b *Builder) ensureDirs() error {
	for _, dir := range []string{
		b.cfg.OutputDir,
		filepath.Join(b.cfg.OutputDir, "posts"),
		filepath.Join(b.cfg.OutputDir, "projects"),
		filepath.Join(b.cfg.OutputDir, "static"),
	} {
		if err := os.MkdirAll(dir, 0o775); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// replaceStatic swaps the static subtree wholesale: remove, then copy.
// A crash between the two leaves no static assets; accepted risk of
// the full-replace strategy.
func (b *Builder) replaceStatic() {
	dst := filepath.Join(b.cfg.OutputDir, "static")

	if _, err := os.Stat(b.cfg.StaticDir); err != nil {
		b.log.Warn("static source missing, skipping copy", "dir", b.cfg.StaticDir)
		return
	}

	if err := os.RemoveAll(dst); err != nil {
		b.log.Error("remove old static tree", "error", err)
		return
	}
	if err := copy.Copy(b.cfg.StaticDir, dst); err != nil {
		b.log.Error("copy static tree", "error", err)
	}
}

// loadAboutSummary renders about_summary.md line by line, joined with
// line breaks, for the condensed form on the index page.
func (b *Builder) loadAboutSummary() template.HTML {
	raw, err := os.ReadFile(filepath.Join(b.cfg.ContentDir, "about_summary.md"))
	if err != nil {
		return aboutSummaryPlaceholder
	}

	var htmlLines []string
	for _, line := range strings.Split(string(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			htmlLines = append(htmlLines, b.md.render([]byte(line)))
		}
	}
	return template.HTML(strings.Join(htmlLines, "<br>"))
}

// loadAbout renders about.md whole for the dedicated about page.
func (b *Builder) loadAbout() template.HTML {
	raw, err := os.ReadFile(filepath.Join(b.cfg.ContentDir, "about.md"))
	if err != nil {
		return aboutPlaceholder
	}
	return template.HTML(b.md.render(raw))
}

// emitSEO writes the sitemap, robots.txt, and atom feed from the same
// record sets the pages were rendered from.
func (b *Builder) emitSEO(posts []*record.Post, projects []*record.Project) {
	if err := writeSitemap(b.cfg.BaseURL, posts, projects, b.cfg.OutputDir); err != nil {
		b.log.Error("sitemap not written", "error", err)
	}
	if err := writeRobots(b.cfg.BaseURL, b.cfg.OutputDir); err != nil {
		b.log.Error("robots.txt not written", "error", err)
	}
	if err := writeFeed(b.cfg.SiteTitle, b.cfg.Author, b.cfg.BaseURL, posts, b.cfg.OutputDir); err != nil {
		b.log.Error("atom feed not written", "error", err)
	}
}
