// Package ingest reconciles Markdown source directories against the
// staging store. Per-file failures are logged and skipped; one bad
// file never aborts a batch.
package ingest

import (
	"context"
	"path/filepath"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"

	"github.com/tbell/folio/internal/config"
	"github.com/tbell/folio/internal/content"
	"github.com/tbell/folio/internal/store"
)

// Reconciler drives the ingestion workflows for both entity types.
type Reconciler struct {
	posts      *store.PostStore
	projects   *store.ProjectStore
	author     string
	timeFormat string
	log        glog.Logger
}

// New wires a reconciler to the store. The configured author is the
// default byline for posts whose source does not carry one.
func New(s *store.Store, cfg *config.Config, log glog.Logger) *Reconciler {
	return &Reconciler{
		posts:      s.Posts(),
		projects:   s.Projects(),
		author:     cfg.Author,
		timeFormat: cfg.TimeFormat,
		log:        log,
	}
}

// AddNewPosts inserts posts whose slug is not live yet. Existing
// records are never touched.
func (r *Reconciler) AddNewPosts(ctx context.Context, dir string) error {
	files, err := sources(dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		post, err := content.ParsePost(file, r.timeFormat)
		if err != nil {
			r.log.Info("skipping post", "file", file, "reason", err)
			continue
		}
		if post.Author == "" {
			post.Author = r.author
		}

		exists, err := r.posts.Exists(ctx, post.Slug)
		if err != nil {
			r.log.Error("exists check failed", "slug", post.Slug, "error", err)
			continue
		}
		if exists {
			r.log.Info("skipping post, slug already exists", "slug", post.Slug, "file", file)
			continue
		}

		if err := r.posts.Insert(ctx, post); err != nil {
			r.logInsertErr("post", post.Slug, err)
			continue
		}
		r.log.Info("inserted post", "slug", post.Slug)
	}
	return nil
}

// RewriteAllPosts resynchronizes the live table with the source
// directory. Existing slugs are archived and reinserted so every
// replaced row leaves an audit snapshot.
func (r *Reconciler) RewriteAllPosts(ctx context.Context, dir string) error {
	files, err := sources(dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		post, err := content.ParsePost(file, r.timeFormat)
		if err != nil {
			r.log.Info("skipping post", "file", file, "reason", err)
			continue
		}
		if post.Author == "" {
			post.Author = r.author
		}

		exists, err := r.posts.Exists(ctx, post.Slug)
		if err != nil {
			r.log.Error("exists check failed", "slug", post.Slug, "error", err)
			continue
		}
		if exists {
			if err := r.posts.Archive(ctx, post.Slug, time.Now().UTC()); err != nil {
				r.log.Error("archive failed", "slug", post.Slug, "error", err)
				continue
			}
		}

		if err := r.posts.Insert(ctx, post); err != nil {
			r.logInsertErr("post", post.Slug, err)
			continue
		}
		r.log.Info("rewrote post", "slug", post.Slug)
	}
	return nil
}

// DeletePost archives the post with the given slug. An absent slug is
// reported and ignored.
func (r *Reconciler) DeletePost(ctx context.Context, slug string) error {
	err := r.posts.Archive(ctx, slug, time.Now().UTC())
	if goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		r.log.Info("no post found", "slug", slug)
		return nil
	}
	return err
}

// AddNewProjects inserts projects whose slug is not live yet.
func (r *Reconciler) AddNewProjects(ctx context.Context, dir string) error {
	files, err := sources(dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		project, err := content.ParseProject(file)
		if err != nil {
			r.log.Info("skipping project", "file", file, "reason", err)
			continue
		}

		exists, err := r.projects.Exists(ctx, project.Slug)
		if err != nil {
			r.log.Error("exists check failed", "slug", project.Slug, "error", err)
			continue
		}
		if exists {
			r.log.Info("skipping project, slug already exists", "slug", project.Slug, "file", file)
			continue
		}

		if err := r.projects.Insert(ctx, project); err != nil {
			r.logInsertErr("project", project.Slug, err)
			continue
		}
		r.log.Info("inserted project", "slug", project.Slug)
	}
	return nil
}

// RewriteAllProjects resynchronizes projects, archiving replaced rows.
func (r *Reconciler) RewriteAllProjects(ctx context.Context, dir string) error {
	files, err := sources(dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		project, err := content.ParseProject(file)
		if err != nil {
			r.log.Info("skipping project", "file", file, "reason", err)
			continue
		}

		exists, err := r.projects.Exists(ctx, project.Slug)
		if err != nil {
			r.log.Error("exists check failed", "slug", project.Slug, "error", err)
			continue
		}
		if exists {
			if err := r.projects.Archive(ctx, project.Slug, time.Now().UTC()); err != nil {
				r.log.Error("archive failed", "slug", project.Slug, "error", err)
				continue
			}
		}

		if err := r.projects.Insert(ctx, project); err != nil {
			r.logInsertErr("project", project.Slug, err)
			continue
		}
		r.log.Info("rewrote project", "slug", project.Slug)
	}
	return nil
}

// DeleteProject archives the project with the given slug. An absent
// slug is reported and ignored.
func (r *Reconciler) DeleteProject(ctx context.Context, slug string) error {
	err := r.projects.Archive(ctx, slug, time.Now().UTC())
	if goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		r.log.Info("no project found", "slug", slug)
		return nil
	}
	return err
}

func (r *Reconciler) logInsertErr(kind, slug string, err error) {
	if goerrors.IsCategory(err, goerrors.CategoryConflict) {
		r.log.Info("skipping "+kind+", slug already exists", "slug", slug)
		return
	}
	r.log.Error("insert failed", "kind", kind, "slug", slug, "error", err)
}

// sources lists the Markdown files in dir, in directory enumeration
// order. Each file is independent, so order does not affect outcomes.
func sources(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, "*.md"))
}
