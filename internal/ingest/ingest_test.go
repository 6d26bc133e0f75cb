package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-logger/glog"

	"github.com/tbell/folio/internal/config"
	"github.com/tbell/folio/internal/store"
)

const timeFormat = "2006-01-02 15:04:05"

func newTestReconciler(t *testing.T) (*Reconciler, *store.Store) {
	t.Helper()

	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	cfg := &config.Config{Author: "Site Owner", TimeFormat: timeFormat}
	return New(s, cfg, glog.NewLogger()), s
}

func contentDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o664); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func postSource(title string) string {
	return "# " + title + `
2024-03-01 10:30:00
A summary.
https://example.com/t.png
go
Body text.`
}

func TestAddNewPosts(t *testing.T) {
	ctx := context.Background()
	rec, s := newTestReconciler(t)

	dir := contentDir(t, map[string]string{
		"First Post.md": postSource("First Post"),
		"broken.md":     "# Broken\nnot a date\nsummary\nthumb\ntags\nbody",
	})

	if err := rec.AddNewPosts(ctx, dir); err != nil {
		t.Fatalf("AddNewPosts: %v", err)
	}

	got, err := s.Posts().Fetch(ctx, "first-post")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("valid post was not inserted")
	}
	if got.Author != "Site Owner" {
		t.Errorf("author default not applied: %q", got.Author)
	}

	// The malformed file is skipped, not inserted, and does not abort.
	broken, err := s.Posts().Fetch(ctx, "broken")
	if err != nil {
		t.Fatal(err)
	}
	if broken != nil {
		t.Error("malformed post was inserted")
	}
}

func TestAddNewPostsSlugCollision(t *testing.T) {
	// "My Post.md" and "my_post.md" slugify to the same value; exactly
	// one is inserted, the other skipped.
	ctx := context.Background()
	rec, s := newTestReconciler(t)

	dir := contentDir(t, map[string]string{
		"My Post.md": postSource("My Post"),
		"my_post.md": postSource("Shadowed"),
	})

	if err := rec.AddNewPosts(ctx, dir); err != nil {
		t.Fatal(err)
	}

	all, err := s.Posts().FetchAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("inserted %d posts, want 1", len(all))
	}
	if all[0].Slug != "my-post" {
		t.Errorf("slug = %q", all[0].Slug)
	}
}

func TestAddNewPostsNeverTouchesExisting(t *testing.T) {
	ctx := context.Background()
	rec, s := newTestReconciler(t)

	dir := contentDir(t, map[string]string{"Stable.md": postSource("Stable")})
	if err := rec.AddNewPosts(ctx, dir); err != nil {
		t.Fatal(err)
	}
	before, _ := s.Posts().Fetch(ctx, "stable")

	// Change the source and add again: the record must not change.
	if err := os.WriteFile(filepath.Join(dir, "Stable.md"), []byte(postSource("Changed Title")), 0o664); err != nil {
		t.Fatal(err)
	}
	if err := rec.AddNewPosts(ctx, dir); err != nil {
		t.Fatal(err)
	}

	after, _ := s.Posts().Fetch(ctx, "stable")
	if after.Title != before.Title || !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Errorf("add-new modified an existing record: %+v -> %+v", before, after)
	}
}

func TestRewriteAllPostsIdempotentEndState(t *testing.T) {
	ctx := context.Background()
	rec, s := newTestReconciler(t)

	dir := contentDir(t, map[string]string{
		"One.md": postSource("One"),
		"Two.md": postSource("Two"),
	})

	for i := 0; i < 2; i++ {
		if err := rec.RewriteAllPosts(ctx, dir); err != nil {
			t.Fatalf("rewrite %d: %v", i, err)
		}
	}

	all, err := s.Posts().FetchAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("live posts = %d, want 2", len(all))
	}
	titles := map[string]bool{}
	for _, p := range all {
		titles[p.Title] = true
	}
	if !titles["One"] || !titles["Two"] {
		t.Errorf("unexpected live set: %+v", titles)
	}
}

func TestRewriteAllPostsArchivesReplaced(t *testing.T) {
	ctx := context.Background()
	rec, s := newTestReconciler(t)

	dir := contentDir(t, map[string]string{"Evolving.md": postSource("V1")})
	if err := rec.RewriteAllPosts(ctx, dir); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "Evolving.md"), []byte(postSource("V2")), 0o664); err != nil {
		t.Fatal(err)
	}
	if err := rec.RewriteAllPosts(ctx, dir); err != nil {
		t.Fatal(err)
	}

	before, err := s.Posts().FetchAll(ctx)
	if err != nil {
		t.Fatal(err)
	}

	live, err := s.Posts().Fetch(ctx, "evolving")
	if err != nil {
		t.Fatal(err)
	}
	if live == nil || live.Title != "V2" {
		t.Fatalf("live record not replaced: %+v", live)
	}
	if len(before) != 1 {
		t.Errorf("live rows = %d, want 1", len(before))
	}
	// Archive-then-reinsert mints a fresh row; the old id lives on in
	// the archive table only.
	if live.ID == 1 {
		t.Error("rewrite updated in place instead of archiving")
	}
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	rec, s := newTestReconciler(t)

	dir := contentDir(t, map[string]string{"Gone.md": postSource("Gone")})
	if err := rec.AddNewPosts(ctx, dir); err != nil {
		t.Fatal(err)
	}

	if err := rec.DeletePost(ctx, "gone"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	live, err := s.Posts().Fetch(ctx, "gone")
	if err != nil {
		t.Fatal(err)
	}
	if live != nil {
		t.Error("deleted post still live")
	}

	// Deleting a slug that never existed is reported, not an error.
	if err := rec.DeletePost(ctx, "never-was"); err != nil {
		t.Errorf("delete of missing slug returned %v", err)
	}
}

func TestProjectWorkflows(t *testing.T) {
	ctx := context.Background()
	rec, s := newTestReconciler(t)

	dir := contentDir(t, map[string]string{
		"Site Generator.md": `# Site Generator

A static site generator.
Jan 2024 - Present
Go
Builds this site.`,
	})

	if err := rec.AddNewProjects(ctx, dir); err != nil {
		t.Fatal(err)
	}
	pr, err := s.Projects().Fetch(ctx, "site-generator")
	if err != nil {
		t.Fatal(err)
	}
	if pr == nil {
		t.Fatal("project not inserted")
	}
	if pr.ProjectType != "Personal Project" {
		t.Errorf("blank project type not defaulted: %q", pr.ProjectType)
	}

	if err := rec.RewriteAllProjects(ctx, dir); err != nil {
		t.Fatal(err)
	}
	if err := rec.DeleteProject(ctx, "site-generator"); err != nil {
		t.Fatal(err)
	}
	if err := rec.DeleteProject(ctx, "site-generator"); err != nil {
		t.Errorf("second delete returned %v", err)
	}
}
