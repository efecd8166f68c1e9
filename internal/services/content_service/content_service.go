package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"
	"portfolio/internal/lib/markdown"
	"portfolio/internal/repository"
	"portfolio/internal/storage"
)

// ContentService is the read-only access layer for posts, projects and tags.
// Rows are normalized before they leave it and list results are never nil.
type ContentService struct {
	log  *slog.Logger
	repo repository.ContentRepository
	md   *markdown.Renderer
}

func NewContentService(log *slog.Logger, repo repository.ContentRepository) *ContentService {
	return &ContentService{
		log:  log,
		repo: repo,
		md:   markdown.New(),
	}
}

func (s *ContentService) ListPublishedPosts(ctx context.Context) ([]models.BlogPost, error) {
	const op = "content_service.ListPublishedPosts"
	log := s.log.With(slog.String("op", op))

	rows, err := s.repo.PublishedPosts(ctx)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		return []models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.renderPosts(log, publishedOnly(models.NormalizePosts(rows))), nil
}

// GetPostBySlug returns the post with the given slug whether or not it is
// published. Callers serving anonymous readers must check IsPublished.
func (s *ContentService) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	const op = "content_service.GetPostBySlug"
	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	row, err := s.repo.PostBySlug(ctx, slug)
	if err != nil {
		logLookupErr(log, "failed to get post", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post := models.NormalizePost(*row)
	post.ContentHTML = s.render(log, post.Content)
	return &post, nil
}

func (s *ContentService) ListProjects(ctx context.Context) ([]models.Project, error) {
	const op = "content_service.ListProjects"
	log := s.log.With(slog.String("op", op))

	rows, err := s.repo.Projects(ctx)
	if err != nil {
		log.Error("failed to list projects", sl.Err(err))
		return []models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.renderProjects(log, models.NormalizeProjects(rows)), nil
}

func (s *ContentService) GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	const op = "content_service.GetProjectBySlug"
	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	row, err := s.repo.ProjectBySlug(ctx, slug)
	if err != nil {
		logLookupErr(log, "failed to get project", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	project := models.NormalizeProject(*row)
	project.ContentHTML = s.render(log, project.Content)
	return &project, nil
}

func (s *ContentService) ListFeaturedProjects(ctx context.Context) ([]models.Project, error) {
	const op = "content_service.ListFeaturedProjects"
	log := s.log.With(slog.String("op", op))

	rows, err := s.repo.FeaturedProjects(ctx)
	if err != nil {
		log.Error("failed to list featured projects", sl.Err(err))
		return []models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	projects := models.NormalizeProjects(rows)

	featured := projects[:0]
	for _, p := range projects {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}

	return s.renderProjects(log, featured), nil
}

func (s *ContentService) ListTags(ctx context.Context) ([]models.Tag, error) {
	const op = "content_service.ListTags"
	log := s.log.With(slog.String("op", op))

	tags, err := s.repo.Tags(ctx)
	if err != nil {
		log.Error("failed to list tags", sl.Err(err))
		return []models.Tag{}, fmt.Errorf("%s: %w", op, err)
	}

	if tags == nil {
		tags = []models.Tag{}
	}

	return tags, nil
}

// ListPostsByTag returns the tag and its published posts, newest first.
// An unknown tag is storage.ErrNotFound.
func (s *ContentService) ListPostsByTag(ctx context.Context, tagID string) (*models.Tag, []models.BlogPost, error) {
	const op = "content_service.ListPostsByTag"
	log := s.log.With(
		slog.String("op", op),
		slog.String("tag_id", tagID),
	)

	tag, err := s.repo.TagByID(ctx, tagID)
	if err != nil {
		logLookupErr(log, "failed to get tag", err)
		return nil, []models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.repo.PublishedPostsByTag(ctx, tagID)
	if err != nil {
		log.Error("failed to list posts by tag", sl.Err(err))
		return tag, []models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	return tag, s.renderPosts(log, publishedOnly(models.NormalizePosts(rows))), nil
}

// logLookupErr keeps misses out of the error log.
func logLookupErr(log *slog.Logger, msg string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		log.Debug(msg, sl.Err(err))
		return
	}
	log.Error(msg, sl.Err(err))
}

// on failure only the markdown is served
func (s *ContentService) render(log *slog.Logger, src string) string {
	html, err := s.md.Render(src)
	if err != nil {
		log.Warn("failed to render markdown", sl.Err(err))
		return ""
	}
	return html
}

func (s *ContentService) renderPosts(log *slog.Logger, posts []models.BlogPost) []models.BlogPost {
	for i := range posts {
		posts[i].ContentHTML = s.render(log, posts[i].Content)
	}
	return posts
}

func (s *ContentService) renderProjects(log *slog.Logger, projects []models.Project) []models.Project {
	for i := range projects {
		projects[i].ContentHTML = s.render(log, projects[i].Content)
	}
	return projects
}

func publishedOnly(posts []models.BlogPost) []models.BlogPost {
	out := posts[:0]
	for _, p := range posts {
		if p.IsPublished {
			out = append(out, p)
		}
	}
	return out
}
