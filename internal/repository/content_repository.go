package repository

import (
	"context"

	"portfolio/internal/domain/models"
	"portfolio/internal/storage/supabase"
)

const (
	postsTable        = "posts"
	postsTagsTable    = "posts_tags"
	tagsTable         = "tags"
	projectsTable     = "projects"
	profilesTable     = "profiles"
	publishedColumn   = "is_published"
	featuredColumn    = "is_featured"
	publishedAtColumn = "published_at"
	sortOrderColumn   = "sort_order"
	createdAtColumn   = "created_at"
)

// The author relation is embedded under its table name, "users".
const postColumns = `
	id, created_at, updated_at, title, slug, content, summary, cover_image,
	is_published, published_at, author_id,
	tags (id, name),
	users (id, username, avatar_url)`

const projectColumns = `
	id, created_at, updated_at, title, slug, description, content,
	image_url, github_url, demo_url, is_featured, sort_order,
	technologies (id, name, icon_url)`

type RestContentRepo struct {
	client *supabase.Client
}

func NewRestContentRepo(client *supabase.Client) *RestContentRepo {
	return &RestContentRepo{client: client}
}

func (r *RestContentRepo) PublishedPosts(ctx context.Context) ([]models.PostRow, error) {
	const op = "repository.content_repository.PublishedPosts"

	var rows []models.PostRow
	err := r.client.From(postsTable).
		Select(postColumns).
		Eq(publishedColumn, true).
		Order(publishedAtColumn, supabase.Descending, false).
		Execute(ctx, &rows)
	if err != nil {
		return nil, unavailable(op, err)
	}

	return rows, nil
}

func (r *RestContentRepo) PostBySlug(ctx context.Context, slug string) (*models.PostRow, error) {
	const op = "repository.content_repository.PostBySlug"

	var row models.PostRow
	err := r.client.From(postsTable).
		Select(postColumns).
		Eq("slug", slug).
		Single().
		Execute(ctx, &row)
	if err != nil {
		return nil, notFoundOr(op, err)
	}

	return &row, nil
}

func (r *RestContentRepo) PublishedPostsByTag(ctx context.Context, tagID string) ([]models.PostRow, error) {
	const op = "repository.content_repository.PublishedPostsByTag"

	var links []struct {
		PostID string `json:"post_id"`
	}
	err := r.client.From(postsTagsTable).
		Select("post_id").
		Eq("tag_id", tagID).
		Execute(ctx, &links)
	if err != nil {
		return nil, unavailable(op, err)
	}

	if len(links) == 0 {
		return []models.PostRow{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.PostID)
	}

	var rows []models.PostRow
	err = r.client.From(postsTable).
		Select(postColumns).
		In("id", ids).
		Eq(publishedColumn, true).
		Order(publishedAtColumn, supabase.Descending, false).
		Execute(ctx, &rows)
	if err != nil {
		return nil, unavailable(op, err)
	}

	return rows, nil
}

func (r *RestContentRepo) Tags(ctx context.Context) ([]models.Tag, error) {
	const op = "repository.content_repository.Tags"

	var tags []models.Tag
	err := r.client.From(tagsTable).
		Select("id, name").
		Order("name", supabase.Ascending).
		Execute(ctx, &tags)
	if err != nil {
		return nil, unavailable(op, err)
	}

	return tags, nil
}

func (r *RestContentRepo) TagByID(ctx context.Context, tagID string) (*models.Tag, error) {
	const op = "repository.content_repository.TagByID"

	var tag models.Tag
	err := r.client.From(tagsTable).
		Select("id, name").
		Eq("id", tagID).
		Single().
		Execute(ctx, &tag)
	if err != nil {
		return nil, notFoundOr(op, err)
	}

	return &tag, nil
}

func (r *RestContentRepo) Projects(ctx context.Context) ([]models.ProjectRow, error) {
	const op = "repository.content_repository.Projects"

	var rows []models.ProjectRow
	err := r.client.From(projectsTable).
		Select(projectColumns).
		Order(sortOrderColumn, supabase.Ascending, true).
		Order(createdAtColumn, supabase.Descending).
		Execute(ctx, &rows)
	if err != nil {
		return nil, unavailable(op, err)
	}

	return rows, nil
}

func (r *RestContentRepo) ProjectBySlug(ctx context.Context, slug string) (*models.ProjectRow, error) {
	const op = "repository.content_repository.ProjectBySlug"

	var row models.ProjectRow
	err := r.client.From(projectsTable).
		Select(projectColumns).
		Eq("slug", slug).
		Single().
		Execute(ctx, &row)
	if err != nil {
		return nil, notFoundOr(op, err)
	}

	return &row, nil
}

func (r *RestContentRepo) FeaturedProjects(ctx context.Context) ([]models.ProjectRow, error) {
	const op = "repository.content_repository.FeaturedProjects"

	var rows []models.ProjectRow
	err := r.client.From(projectsTable).
		Select(projectColumns).
		Eq(featuredColumn, true).
		Order(sortOrderColumn, supabase.Ascending, true).
		Execute(ctx, &rows)
	if err != nil {
		return nil, unavailable(op, err)
	}

	return rows, nil
}
