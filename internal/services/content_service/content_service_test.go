package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/repository"
	"portfolio/internal/storage"
	"portfolio/internal/storage/supabase"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) PublishedPosts(ctx context.Context) ([]models.PostRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostRow), args.Error(1)
}

func (m *MockContentRepository) PostBySlug(ctx context.Context, slug string) (*models.PostRow, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostRow), args.Error(1)
}

func (m *MockContentRepository) PublishedPostsByTag(ctx context.Context, tagID string) ([]models.PostRow, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostRow), args.Error(1)
}

func (m *MockContentRepository) Tags(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockContentRepository) TagByID(ctx context.Context, tagID string) (*models.Tag, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockContentRepository) Projects(ctx context.Context) ([]models.ProjectRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProjectRow), args.Error(1)
}

func (m *MockContentRepository) ProjectBySlug(ctx context.Context, slug string) (*models.ProjectRow, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectRow), args.Error(1)
}

func (m *MockContentRepository) FeaturedProjects(ctx context.Context) ([]models.ProjectRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProjectRow), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fakePostRow(published bool, publishedAt time.Time) models.PostRow {
	return models.PostRow{
		ID:          gofakeit.UUID(),
		CreatedAt:   publishedAt.Add(-time.Hour),
		PublishedAt: &publishedAt,
		Title:       gofakeit.Sentence(4),
		Slug:        gofakeit.Username(),
		IsPublished: published,
	}
}

func unavailableErr() error {
	return fmt.Errorf("repository: %w: %w", storage.ErrUnavailable, context.DeadlineExceeded)
}

func TestContentService_ListPublishedPosts(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	newer := fakePostRow(true, now)
	older := fakePostRow(true, now.Add(-24*time.Hour))
	draft := fakePostRow(false, now.Add(time.Hour))

	tests := []struct {
		name      string
		mockSetup func(m *MockContentRepository)
		wantSlugs []string
		wantErr   error
	}{
		{
			name: "newest first and drafts dropped",
			mockSetup: func(m *MockContentRepository) {
				m.On("PublishedPosts", ctx).Return([]models.PostRow{draft, newer, older}, nil).Once()
			},
			wantSlugs: []string{newer.Slug, older.Slug},
		},
		{
			name: "no rows",
			mockSetup: func(m *MockContentRepository) {
				m.On("PublishedPosts", ctx).Return(nil, nil).Once()
			},
			wantSlugs: []string{},
		},
		{
			name: "source unavailable",
			mockSetup: func(m *MockContentRepository) {
				m.On("PublishedPosts", ctx).Return(nil, unavailableErr()).Once()
			},
			wantSlugs: []string{},
			wantErr:   storage.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockContentRepository)
			tt.mockSetup(repo)
			service := NewContentService(discardLogger(), repo)

			posts, err := service.ListPublishedPosts(ctx)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			require.NotNil(t, posts)
			slugs := make([]string, 0, len(posts))
			for _, p := range posts {
				assert.True(t, p.IsPublished)
				assert.NotNil(t, p.Tags)
				slugs = append(slugs, p.Slug)
			}
			assert.Equal(t, tt.wantSlugs, slugs)

			repo.AssertExpectations(t)
		})
	}
}

func TestContentService_GetPostBySlug(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	hello := models.PostRow{
		ID:          "p1",
		CreatedAt:   now,
		PublishedAt: &now,
		Title:       "Hello World",
		Slug:        "hello-world",
		IsPublished: true,
		Tags:        []models.Tag{{ID: "1", Name: "intro"}},
	}

	t.Run("tags kept and author absent", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("PostBySlug", ctx, "hello-world").Return(&hello, nil).Once()
		service := NewContentService(discardLogger(), repo)

		post, err := service.GetPostBySlug(ctx, "hello-world")
		require.NoError(t, err)
		assert.Equal(t, []models.Tag{{ID: "1", Name: "intro"}}, post.Tags)
		assert.Nil(t, post.Author)
		assert.Equal(t, models.AnonymousAuthor, post.AuthorName())

		body, err := json.Marshal(post)
		require.NoError(t, err)
		assert.NotContains(t, string(body), `"author"`)
	})

	t.Run("unknown slug", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("PostBySlug", ctx, "missing").
			Return(nil, fmt.Errorf("repository: %w", storage.ErrNotFound)).Once()
		service := NewContentService(discardLogger(), repo)

		post, err := service.GetPostBySlug(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Nil(t, post)
	})

	t.Run("unavailable is not a miss", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("PostBySlug", ctx, "hello-world").Return(nil, unavailableErr()).Once()
		service := NewContentService(discardLogger(), repo)

		_, err := service.GetPostBySlug(ctx, "hello-world")
		assert.ErrorIs(t, err, storage.ErrUnavailable)
		assert.NotErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("drafts are returned to the caller", func(t *testing.T) {
		draft := hello
		draft.IsPublished = false

		repo := new(MockContentRepository)
		repo.On("PostBySlug", ctx, "hello-world").Return(&draft, nil).Once()
		service := NewContentService(discardLogger(), repo)

		post, err := service.GetPostBySlug(ctx, "hello-world")
		require.NoError(t, err)
		assert.False(t, post.IsPublished)
	})
}

func TestContentService_ListProjects(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	one, two := 1, 2

	rows := []models.ProjectRow{
		{ID: "a", Slug: "unordered", CreatedAt: now},
		{ID: "b", Slug: "first-new", CreatedAt: now, SortOrder: &one},
		{ID: "c", Slug: "first-old", CreatedAt: now.Add(-time.Hour), SortOrder: &one},
		{ID: "d", Slug: "second", CreatedAt: now, SortOrder: &two, Technologies: []models.Technology{{ID: "go", Name: "Go"}}},
	}

	repo := new(MockContentRepository)
	repo.On("Projects", ctx).Return(rows, nil).Once()
	service := NewContentService(discardLogger(), repo)

	projects, err := service.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 4)

	for i := 1; i < len(projects); i++ {
		prev, cur := projects[i-1], projects[i]
		assert.LessOrEqual(t, prev.SortOrder, cur.SortOrder)
		if prev.SortOrder == cur.SortOrder {
			assert.False(t, cur.CreatedAt.After(prev.CreatedAt))
		}
		assert.NotNil(t, cur.Technologies)
	}
	assert.NotNil(t, projects[0].Technologies)
	assert.Equal(t, "Go", projects[3].Technologies[0].Name)
}

func TestContentService_GetProjectBySlug(t *testing.T) {
	ctx := context.Background()

	repo := new(MockContentRepository)
	repo.On("ProjectBySlug", ctx, "site").Return(&models.ProjectRow{ID: "1", Slug: "site"}, nil).Once()
	repo.On("ProjectBySlug", ctx, "missing").
		Return(nil, fmt.Errorf("repository: %w", storage.ErrNotFound)).Once()
	service := NewContentService(discardLogger(), repo)

	project, err := service.GetProjectBySlug(ctx, "site")
	require.NoError(t, err)
	assert.Equal(t, []models.Technology{}, project.Technologies)

	_, err = service.GetProjectBySlug(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	repo.AssertExpectations(t)
}

func TestContentService_ListFeaturedProjects(t *testing.T) {
	ctx := context.Background()

	t.Run("zero featured projects", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("FeaturedProjects", ctx).Return([]models.ProjectRow{}, nil).Once()
		service := NewContentService(discardLogger(), repo)

		projects, err := service.ListFeaturedProjects(ctx)
		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
	})

	t.Run("non featured rows dropped", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("FeaturedProjects", ctx).Return([]models.ProjectRow{
			{ID: "1", Slug: "a", IsFeatured: true},
			{ID: "2", Slug: "b"},
		}, nil).Once()
		service := NewContentService(discardLogger(), repo)

		projects, err := service.ListFeaturedProjects(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "a", projects[0].Slug)
	})
}

func TestContentService_ListPostsByTag(t *testing.T) {
	ctx := context.Background()
	tag := &models.Tag{ID: "t1", Name: "intro"}

	t.Run("tag with posts", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("TagByID", ctx, "t1").Return(tag, nil).Once()
		repo.On("PublishedPostsByTag", ctx, "t1").
			Return([]models.PostRow{fakePostRow(true, time.Now())}, nil).Once()
		service := NewContentService(discardLogger(), repo)

		got, posts, err := service.ListPostsByTag(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, tag, got)
		assert.Len(t, posts, 1)
	})

	t.Run("unknown tag", func(t *testing.T) {
		repo := new(MockContentRepository)
		repo.On("TagByID", ctx, "nope").
			Return(nil, fmt.Errorf("repository: %w", storage.ErrNotFound)).Once()
		service := NewContentService(discardLogger(), repo)

		got, posts, err := service.ListPostsByTag(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Nil(t, got)
		assert.NotNil(t, posts)
		repo.AssertNotCalled(t, "PublishedPostsByTag", ctx, "nope")
	})
}

func TestContentService_ListTags(t *testing.T) {
	ctx := context.Background()

	repo := new(MockContentRepository)
	repo.On("Tags", ctx).Return(nil, nil).Once()
	service := NewContentService(discardLogger(), repo)

	tags, err := service.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Tag{}, tags)
}

func TestContentService_Unconfigured(t *testing.T) {
	ctx := context.Background()

	repo := repository.NewRestContentRepo(supabase.New(supabase.Config{}))
	service := NewContentService(discardLogger(), repo)

	posts, err := service.ListPublishedPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	projects, err := service.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	featured, err := service.ListFeaturedProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, featured)

	tags, err := service.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = service.GetPostBySlug(ctx, "hello-world")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = service.GetProjectBySlug(ctx, "site")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, _, err = service.ListPostsByTag(ctx, "t1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestContentService_RendersMarkdown(t *testing.T) {
	ctx := context.Background()

	body := "## Setup\n\n- [x] done\n\n<script>alert(1)</script>"
	post := fakePostRow(true, time.Now())
	post.Content = &body

	projectBody := "Built with **Go**."
	project := models.ProjectRow{ID: "1", Slug: "site", IsFeatured: true, Content: &projectBody}

	repo := new(MockContentRepository)
	repo.On("PublishedPosts", ctx).Return([]models.PostRow{post}, nil).Once()
	repo.On("PostBySlug", ctx, post.Slug).Return(&post, nil).Once()
	repo.On("ProjectBySlug", ctx, "site").Return(&project, nil).Once()
	repo.On("FeaturedProjects", ctx).Return([]models.ProjectRow{project}, nil).Once()
	service := NewContentService(discardLogger(), repo)

	posts, err := service.ListPublishedPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, body, posts[0].Content)
	assert.Contains(t, posts[0].ContentHTML, "Setup</h2>")
	assert.Contains(t, posts[0].ContentHTML, "<li>")
	assert.NotContains(t, posts[0].ContentHTML, "<script")

	got, err := service.GetPostBySlug(ctx, post.Slug)
	require.NoError(t, err)
	assert.Equal(t, posts[0].ContentHTML, got.ContentHTML)

	p, err := service.GetProjectBySlug(ctx, "site")
	require.NoError(t, err)
	assert.Contains(t, p.ContentHTML, "<strong>Go</strong>")

	featured, err := service.ListFeaturedProjects(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Contains(t, featured[0].ContentHTML, "<strong>Go</strong>")

	repo.AssertExpectations(t)
}

func TestContentService_EmptyContentHasNoHTML(t *testing.T) {
	ctx := context.Background()

	repo := new(MockContentRepository)
	repo.On("PublishedPosts", ctx).Return([]models.PostRow{fakePostRow(true, time.Now())}, nil).Once()
	service := NewContentService(discardLogger(), repo)

	posts, err := service.ListPublishedPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Empty(t, posts[0].ContentHTML)
}
