package models

import "time"

type Technology struct {
	ID      string  `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	IconURL *string `db:"icon_url" json:"icon_url"`
}

// ProjectRow is a projects row with its embedded technologies, before normalization.
type ProjectRow struct {
	ID           string       `db:"id" json:"id"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time   `db:"updated_at" json:"updated_at"`
	Title        string       `db:"title" json:"title"`
	Slug         string       `db:"slug" json:"slug"`
	Description  *string      `db:"description" json:"description"`
	Content      *string      `db:"content" json:"content"`
	ImageURL     *string      `db:"image_url" json:"image_url"`
	GithubURL    *string      `db:"github_url" json:"github_url"`
	DemoURL      *string      `db:"demo_url" json:"demo_url"`
	IsFeatured   bool         `db:"is_featured" json:"is_featured"`
	SortOrder    *int         `db:"sort_order" json:"sort_order"`
	Technologies []Technology `json:"technologies"`
}

type Project struct {
	ID           string       `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Description  string       `json:"description"`
	Content      string       `json:"content"`
	ContentHTML  string       `json:"content_html"`
	ImageURL     *string      `json:"image_url"`
	GithubURL    *string      `json:"github_url"`
	DemoURL      *string      `json:"demo_url"`
	IsFeatured   bool         `json:"is_featured"`
	SortOrder    int          `json:"sort_order"`
	Technologies []Technology `json:"technologies"`
}
