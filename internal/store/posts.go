package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/tbell/folio/internal/record"
)

// PostStore performs post operations against the live and archive
// tables. Every method is one transaction.
type PostStore struct {
	db *bun.DB
}

// Exists reports whether a live post with the slug exists.
func (ps *PostStore) Exists(ctx context.Context, slug string) (bool, error) {
	ok, err := ps.db.NewSelect().
		Model((*record.Post)(nil)).
		Where("slug = ?", slug).
		Exists(ctx)
	if err != nil {
		return false, storageErr(err, "check", "post", slug)
	}
	return ok, nil
}

// Insert adds a new live post. The store fills created_at when the
// record does not carry one and always stamps updated_at.
func (ps *PostStore) Insert(ctx context.Context, p *record.Post) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if _, err := ps.db.NewInsert().Model(p).Exec(ctx); err != nil {
		return conflictErr(err, "post", p.Slug)
	}
	return nil
}

// Update overwrites all mutable fields of the post with the given slug
// and refreshes updated_at. The id and created_at are immutable.
func (ps *PostStore) Update(ctx context.Context, p *record.Post) error {
	p.UpdatedAt = time.Now().UTC()

	res, err := ps.db.NewUpdate().
		Model(p).
		Column("title", "summary", "body_md", "author", "thumbnail_url", "tags", "updated_at").
		Where("slug = ?", p.Slug).
		Exec(ctx)
	if err != nil {
		return storageErr(err, "update", "post", p.Slug)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFoundErr("post", p.Slug)
	}
	return nil
}

// Archive moves the post with the given slug into deleted_posts,
// stamping deletedAt. Copy and delete happen in one transaction: if
// the snapshot cannot be written, the live row stays.
func (ps *PostStore) Archive(ctx context.Context, slug string, deletedAt time.Time) error {
	err := ps.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		live := new(record.Post)
		if err := tx.NewSelect().Model(live).Where("slug = ?", slug).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFoundErr("post", slug)
			}
			return storageErr(err, "load", "post", slug)
		}

		if _, err := tx.NewInsert().Model(live.Archived(deletedAt)).Exec(ctx); err != nil {
			return storageErr(err, "archive", "post", slug)
		}

		if _, err := tx.NewDelete().Model((*record.Post)(nil)).Where("slug = ?", slug).Exec(ctx); err != nil {
			return storageErr(err, "delete", "post", slug)
		}
		return nil
	})
	return err
}

// Fetch returns the live post with the slug, or nil when absent.
func (ps *PostStore) Fetch(ctx context.Context, slug string) (*record.Post, error) {
	p := new(record.Post)
	err := ps.db.NewSelect().Model(p).Where("slug = ?", slug).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(err, "fetch", "post", slug)
	}
	return p, nil
}

// FetchAll returns every live post, newest first.
func (ps *PostStore) FetchAll(ctx context.Context) ([]*record.Post, error) {
	var posts []*record.Post
	err := ps.db.NewSelect().
		Model(&posts).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, storageErr(err, "fetch", "posts", "*")
	}
	return posts, nil
}

// FetchByTags returns live posts whose tags column contains any of the
// given tags as a substring, newest first. An empty tag list yields an
// empty result.
func (ps *PostStore) FetchByTags(ctx context.Context, tags []string) ([]*record.Post, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	var posts []*record.Post
	q := ps.db.NewSelect().Model(&posts)
	q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, tag := range tags {
			q = q.WhereOr("tags LIKE ?", "%"+tag+"%")
		}
		return q
	})

	if err := q.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, storageErr(err, "fetch", "posts by tags", "*")
	}
	return posts, nil
}
