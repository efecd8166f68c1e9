package models

import (
	"time"
)

// AnonymousAuthor is shown when a post has no author relation.
const AnonymousAuthor = "Anonymous"

type Tag struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Author struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// AuthorRow is the "users" relation as embedded by the data service.
type AuthorRow struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// PostRow is a posts row with its embedded relations, before normalization.
type PostRow struct {
	ID          string     `db:"id" json:"id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at"`
	PublishedAt *time.Time `db:"published_at" json:"published_at"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Content     *string    `db:"content" json:"content"`
	Summary     *string    `db:"summary" json:"summary"`
	CoverImage  *string    `db:"cover_image" json:"cover_image"`
	IsPublished bool       `db:"is_published" json:"is_published"`
	AuthorID    *string    `db:"author_id" json:"author_id"`
	Tags        []Tag      `json:"tags"`
	Users       *AuthorRow `json:"users"`
}

type BlogPost struct {
	ID          string     `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"content_html"`
	Summary     string     `json:"summary"`
	CoverImage  *string    `json:"cover_image"`
	IsPublished bool       `json:"is_published"`
	Author      *Author    `json:"author,omitempty"`
	Tags        []Tag      `json:"tags"`
}

// AuthorName returns the author's display name or AnonymousAuthor.
func (p BlogPost) AuthorName() string {
	if p.Author == nil || p.Author.FullName == "" {
		return AnonymousAuthor
	}
	return p.Author.FullName
}

// DisplayDate is published_at when set, created_at otherwise.
func (p BlogPost) DisplayDate() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}
