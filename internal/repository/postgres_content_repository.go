package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"portfolio/internal/domain/models"
	"portfolio/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Embedded relations come back as json columns so a row scans the same
// way the REST API returns it.
const (
	postTagsSelect = `COALESCE((
		SELECT json_agg(json_build_object('id', t.id::text, 'name', t.name) ORDER BY t.name)
		FROM posts_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = p.id), '[]'::json) AS tags`

	postAuthorSelect = `(
		SELECT json_build_object('id', u.id::text, 'username', u.username, 'avatar_url', u.avatar_url)
		FROM users u
		WHERE u.id = p.author_id) AS users`

	projectTechnologiesSelect = `COALESCE((
		SELECT json_agg(json_build_object('id', t.id::text, 'name', t.name, 'icon_url', t.icon_url) ORDER BY t.name)
		FROM project_technologies ptc JOIN technologies t ON t.id = ptc.technology_id
		WHERE ptc.project_id = p.id), '[]'::json) AS technologies`
)

type PostgresContentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPostgresContentRepo(db *pgxpool.Pool) *PostgresContentRepo {
	return &PostgresContentRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresContentRepo) selectPosts() sq.SelectBuilder {
	return r.sb.Select(
		"p.id::text", "p.created_at", "p.updated_at", "p.title", "p.slug",
		"p.content", "p.summary", "p.cover_image", "p.is_published",
		"p.published_at", "p.author_id::text",
		postTagsSelect,
		postAuthorSelect,
	).From("posts p")
}

func (r *PostgresContentRepo) selectProjects() sq.SelectBuilder {
	return r.sb.Select(
		"p.id::text", "p.created_at", "p.updated_at", "p.title", "p.slug",
		"p.description", "p.content", "p.image_url", "p.github_url",
		"p.demo_url", "p.is_featured", "p.sort_order",
		projectTechnologiesSelect,
	).From("projects p")
}

func (r *PostgresContentRepo) PublishedPosts(ctx context.Context) ([]models.PostRow, error) {
	const op = "repository.postgres_content_repository.PublishedPosts"

	query, args, err := r.selectPosts().
		Where(sq.Eq{"p.is_published": true}).
		OrderBy("p.published_at DESC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r.queryPosts(ctx, op, query, args...)
}

func (r *PostgresContentRepo) PostBySlug(ctx context.Context, slug string) (*models.PostRow, error) {
	const op = "repository.postgres_content_repository.PostBySlug"

	query, args, err := r.selectPosts().
		Where(sq.Eq{"p.slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, unavailable(op, err)
	}

	return &row, nil
}

func (r *PostgresContentRepo) PublishedPostsByTag(ctx context.Context, tagID string) ([]models.PostRow, error) {
	const op = "repository.postgres_content_repository.PublishedPostsByTag"

	query, args, err := r.selectPosts().
		Where(sq.Eq{"p.is_published": true}).
		Where("EXISTS (SELECT 1 FROM posts_tags pt WHERE pt.post_id = p.id AND pt.tag_id::text = ?)", tagID).
		OrderBy("p.published_at DESC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r.queryPosts(ctx, op, query, args...)
}

func (r *PostgresContentRepo) Tags(ctx context.Context) ([]models.Tag, error) {
	const op = "repository.postgres_content_repository.Tags"

	query, args, err := r.sb.Select("id::text", "name").
		From("tags").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, unavailable(op, err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}

	return tags, nil
}

func (r *PostgresContentRepo) TagByID(ctx context.Context, tagID string) (*models.Tag, error) {
	const op = "repository.postgres_content_repository.TagByID"

	query, args, err := r.sb.Select("id::text", "name").
		From("tags").
		Where(sq.Eq{"id::text": tagID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var tag models.Tag
	err = r.db.QueryRow(ctx, query, args...).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, unavailable(op, err)
	}

	return &tag, nil
}

func (r *PostgresContentRepo) Projects(ctx context.Context) ([]models.ProjectRow, error) {
	const op = "repository.postgres_content_repository.Projects"

	query, args, err := r.selectProjects().
		OrderBy("p.sort_order ASC NULLS FIRST", "p.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r.queryProjects(ctx, op, query, args...)
}

func (r *PostgresContentRepo) ProjectBySlug(ctx context.Context, slug string) (*models.ProjectRow, error) {
	const op = "repository.postgres_content_repository.ProjectBySlug"

	query, args, err := r.selectProjects().
		Where(sq.Eq{"p.slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, unavailable(op, err)
	}

	return &row, nil
}

func (r *PostgresContentRepo) FeaturedProjects(ctx context.Context) ([]models.ProjectRow, error) {
	const op = "repository.postgres_content_repository.FeaturedProjects"

	query, args, err := r.selectProjects().
		Where(sq.Eq{"p.is_featured": true}).
		OrderBy("p.sort_order ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r.queryProjects(ctx, op, query, args...)
}

func (r *PostgresContentRepo) queryPosts(ctx context.Context, op, query string, args ...interface{}) ([]models.PostRow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	posts := make([]models.PostRow, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, unavailable(op, err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}

	return posts, nil
}

func (r *PostgresContentRepo) queryProjects(ctx context.Context, op, query string, args ...interface{}) ([]models.ProjectRow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	projects := make([]models.ProjectRow, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, unavailable(op, err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}

	return projects, nil
}

func scanPost(row pgx.Row) (models.PostRow, error) {
	var (
		post      models.PostRow
		tagsJSON  []byte
		usersJSON []byte
	)

	err := row.Scan(
		&post.ID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.Summary,
		&post.CoverImage,
		&post.IsPublished,
		&post.PublishedAt,
		&post.AuthorID,
		&tagsJSON,
		&usersJSON,
	)
	if err != nil {
		return models.PostRow{}, err
	}

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &post.Tags); err != nil {
			return models.PostRow{}, fmt.Errorf("decode tags: %w", err)
		}
	}
	if len(usersJSON) > 0 {
		if err := json.Unmarshal(usersJSON, &post.Users); err != nil {
			return models.PostRow{}, fmt.Errorf("decode author: %w", err)
		}
	}

	return post, nil
}

func scanProject(row pgx.Row) (models.ProjectRow, error) {
	var (
		project  models.ProjectRow
		techJSON []byte
	)

	err := row.Scan(
		&project.ID,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.Title,
		&project.Slug,
		&project.Description,
		&project.Content,
		&project.ImageURL,
		&project.GithubURL,
		&project.DemoURL,
		&project.IsFeatured,
		&project.SortOrder,
		&techJSON,
	)
	if err != nil {
		return models.ProjectRow{}, err
	}

	if len(techJSON) > 0 {
		if err := json.Unmarshal(techJSON, &project.Technologies); err != nil {
			return models.ProjectRow{}, fmt.Errorf("decode technologies: %w", err)
		}
	}

	return project, nil
}
