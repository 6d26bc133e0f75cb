package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/tbell/folio/internal/record"
)

// ProjectStore mirrors PostStore for portfolio projects.
type ProjectStore struct {
	db *bun.DB
}

// Exists reports whether a live project with the slug exists.
func (ps *ProjectStore) Exists(ctx context.Context, slug string) (bool, error) {
	ok, err := ps.db.NewSelect().
		Model((*record.Project)(nil)).
		Where("slug = ?", slug).
		Exists(ctx)
	if err != nil {
		return false, storageErr(err, "check", "project", slug)
	}
	return ok, nil
}

// Insert adds a new live project, stamping timestamps the store owns.
func (ps *ProjectStore) Insert(ctx context.Context, pr *record.Project) error {
	now := time.Now().UTC()
	if pr.CreatedAt.IsZero() {
		pr.CreatedAt = now
	}
	pr.UpdatedAt = now

	if _, err := ps.db.NewInsert().Model(pr).Exec(ctx); err != nil {
		return conflictErr(err, "project", pr.Slug)
	}
	return nil
}

// Update overwrites all mutable fields by slug and refreshes
// updated_at.
func (ps *ProjectStore) Update(ctx context.Context, pr *record.Project) error {
	pr.UpdatedAt = time.Now().UTC()

	res, err := ps.db.NewUpdate().
		Model(pr).
		Column("title", "project_type", "summary", "duration", "skills", "description_md", "updated_at").
		Where("slug = ?", pr.Slug).
		Exec(ctx)
	if err != nil {
		return storageErr(err, "update", "project", pr.Slug)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFoundErr("project", pr.Slug)
	}
	return nil
}

// Archive moves the project into deleted_projects in one transaction.
func (ps *ProjectStore) Archive(ctx context.Context, slug string, deletedAt time.Time) error {
	err := ps.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		live := new(record.Project)
		if err := tx.NewSelect().Model(live).Where("slug = ?", slug).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFoundErr("project", slug)
			}
			return storageErr(err, "load", "project", slug)
		}

		if _, err := tx.NewInsert().Model(live.Archived(deletedAt)).Exec(ctx); err != nil {
			return storageErr(err, "archive", "project", slug)
		}

		if _, err := tx.NewDelete().Model((*record.Project)(nil)).Where("slug = ?", slug).Exec(ctx); err != nil {
			return storageErr(err, "delete", "project", slug)
		}
		return nil
	})
	return err
}

// Fetch returns the live project with the slug, or nil when absent.
func (ps *ProjectStore) Fetch(ctx context.Context, slug string) (*record.Project, error) {
	pr := new(record.Project)
	err := ps.db.NewSelect().Model(pr).Where("slug = ?", slug).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(err, "fetch", "project", slug)
	}
	return pr, nil
}

// FetchAll returns every live project, newest first.
func (ps *ProjectStore) FetchAll(ctx context.Context) ([]*record.Project, error) {
	var projects []*record.Project
	err := ps.db.NewSelect().
		Model(&projects).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, storageErr(err, "fetch", "projects", "*")
	}
	return projects, nil
}
