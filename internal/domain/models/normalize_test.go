package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePost(t *testing.T) {
	avatar := "https://example.com/a.png"
	content := "body"
	now := time.Now()

	tests := []struct {
		name       string
		row        PostRow
		wantAuthor *Author
		wantName   string
	}{
		{
			name:       "no author relation",
			row:        PostRow{ID: "1", Slug: "hello-world", CreatedAt: now},
			wantAuthor: nil,
			wantName:   AnonymousAuthor,
		},
		{
			name: "author relation",
			row: PostRow{
				ID:        "2",
				Slug:      "with-author",
				CreatedAt: now,
				Content:   &content,
				Users:     &AuthorRow{ID: "u1", Username: "jun", AvatarURL: &avatar},
			},
			wantAuthor: &Author{ID: "u1", FullName: "jun", AvatarURL: &avatar},
			wantName:   "jun",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := NormalizePost(tt.row)

			assert.NotNil(t, post.Tags)
			assert.Empty(t, post.Tags)
			assert.Equal(t, tt.wantAuthor, post.Author)
			assert.Equal(t, tt.wantName, post.AuthorName())
			assert.Equal(t, deref(tt.row.Content), post.Content)
		})
	}
}

func TestNormalizePost_TagsSerializeAsArray(t *testing.T) {
	post := NormalizePost(PostRow{ID: "1", Slug: "s"})

	body, err := json.Marshal(post)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"tags":[]`)
}

func TestNormalizeProject(t *testing.T) {
	order := 3

	project := NormalizeProject(ProjectRow{ID: "1", Slug: "a", SortOrder: &order})
	assert.Equal(t, 3, project.SortOrder)
	assert.Equal(t, []Technology{}, project.Technologies)

	project = NormalizeProject(ProjectRow{ID: "2", Slug: "b"})
	assert.Equal(t, 0, project.SortOrder)

	body, err := json.Marshal(project)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"technologies":[]`)
}

func TestNormalizeRowsNeverNil(t *testing.T) {
	assert.NotNil(t, NormalizePosts(nil))
	assert.NotNil(t, NormalizeProjects(nil))
}

func TestDisplayDate(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	published := created.Add(48 * time.Hour)

	assert.Equal(t, created, BlogPost{CreatedAt: created}.DisplayDate())
	assert.Equal(t, published, BlogPost{CreatedAt: created, PublishedAt: &published}.DisplayDate())
}
