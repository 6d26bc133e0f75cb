// Package record defines the persisted shape of the content the
// pipeline stages between ingestion and rendering. The store owns
// record identity (slug) and timestamps; everything else comes from
// the Markdown source.
package record

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Post is a live blog post, keyed by slug.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Slug         string    `bun:"slug,notnull,unique"`
	Title        string    `bun:"title,notnull"`
	Summary      string    `bun:"summary"`
	BodyMD       string    `bun:"body_md,notnull"`
	Author       string    `bun:"author"`
	ThumbnailURL string    `bun:"thumbnail_url"`
	Tags         string    `bun:"tags"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}

// TagList splits the comma-separated tags column into trimmed tokens.
func (p *Post) TagList() []string {
	if strings.TrimSpace(p.Tags) == "" {
		return nil
	}
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Project is a live portfolio project, keyed by slug.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:pr"`

	ID            int64     `bun:"id,pk,autoincrement"`
	Slug          string    `bun:"slug,notnull,unique"`
	Title         string    `bun:"title,notnull"`
	ProjectType   string    `bun:"project_type"`
	Summary       string    `bun:"summary"`
	Duration      string    `bun:"duration"`
	Skills        string    `bun:"skills"`
	DescriptionMD string    `bun:"description_md"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}

// ArchivedPost is an append-only snapshot of a post that left the live
// table. It carries the original row id and is never mutated. Slugs are
// not unique here; the archive is a historical log.
type ArchivedPost struct {
	bun.BaseModel `bun:"table:deleted_posts,alias:dp"`

	ID           int64     `bun:"id,notnull"`
	Slug         string    `bun:"slug,notnull"`
	Title        string    `bun:"title,notnull"`
	Summary      string    `bun:"summary"`
	BodyMD       string    `bun:"body_md,notnull"`
	Author       string    `bun:"author"`
	ThumbnailURL string    `bun:"thumbnail_url"`
	Tags         string    `bun:"tags"`
	CreatedAt    time.Time `bun:"created_at,nullzero"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero"`
	DeletedAt    time.Time `bun:"deleted_at,notnull"`
}

// ArchivedProject is the archive counterpart of Project.
type ArchivedProject struct {
	bun.BaseModel `bun:"table:deleted_projects,alias:dpr"`

	ID            int64     `bun:"id,notnull"`
	Slug          string    `bun:"slug,notnull"`
	Title         string    `bun:"title,notnull"`
	ProjectType   string    `bun:"project_type"`
	Summary       string    `bun:"summary"`
	Duration      string    `bun:"duration"`
	Skills        string    `bun:"skills"`
	DescriptionMD string    `bun:"description_md"`
	CreatedAt     time.Time `bun:"created_at,nullzero"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero"`
	DeletedAt     time.Time `bun:"deleted_at,notnull"`
}

// Archived builds the archive snapshot for a post.
func (p *Post) Archived(deletedAt time.Time) *ArchivedPost {
	return &ArchivedPost{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Summary:      p.Summary,
		BodyMD:       p.BodyMD,
		Author:       p.Author,
		ThumbnailURL: p.ThumbnailURL,
		Tags:         p.Tags,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

// Archived builds the archive snapshot for a project.
func (pr *Project) Archived(deletedAt time.Time) *ArchivedProject {
	return &ArchivedProject{
		ID:            pr.ID,
		Slug:          pr.Slug,
		Title:         pr.Title,
		ProjectType:   pr.ProjectType,
		Summary:       pr.Summary,
		Duration:      pr.Duration,
		Skills:        pr.Skills,
		DescriptionMD: pr.DescriptionMD,
		CreatedAt:     pr.CreatedAt,
		UpdatedAt:     pr.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}
