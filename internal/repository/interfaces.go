package repository

import (
	"context"

	"portfolio/internal/domain/models"
)

// ContentRepository reads posts and projects as raw rows. Single-row
// lookups return storage.ErrNotFound; every other failure wraps
// storage.ErrUnavailable.
type ContentRepository interface {
	PublishedPosts(ctx context.Context) ([]models.PostRow, error)
	PostBySlug(ctx context.Context, slug string) (*models.PostRow, error)
	PublishedPostsByTag(ctx context.Context, tagID string) ([]models.PostRow, error)
	Tags(ctx context.Context) ([]models.Tag, error)
	TagByID(ctx context.Context, tagID string) (*models.Tag, error)
	Projects(ctx context.Context) ([]models.ProjectRow, error)
	ProjectBySlug(ctx context.Context, slug string) (*models.ProjectRow, error)
	FeaturedProjects(ctx context.Context) ([]models.ProjectRow, error)
}
