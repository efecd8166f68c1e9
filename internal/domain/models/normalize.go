package models

// NormalizePost maps a row into a BlogPost. Every row leaving the content
// layer goes through here: Tags is never nil, and a missing "users"
// relation leaves Author nil.
func NormalizePost(row PostRow) BlogPost {
	post := BlogPost{
		ID:          row.ID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		PublishedAt: row.PublishedAt,
		Title:       row.Title,
		Slug:        row.Slug,
		Content:     deref(row.Content),
		Summary:     deref(row.Summary),
		CoverImage:  row.CoverImage,
		IsPublished: row.IsPublished,
		Tags:        make([]Tag, 0, len(row.Tags)),
	}

	post.Tags = append(post.Tags, row.Tags...)

	if row.Users != nil {
		post.Author = &Author{
			ID:        row.Users.ID,
			FullName:  row.Users.Username,
			AvatarURL: row.Users.AvatarURL,
		}
	}

	return post
}

func NormalizePosts(rows []PostRow) []BlogPost {
	posts := make([]BlogPost, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, NormalizePost(row))
	}
	return posts
}

// NormalizeProject maps a row into a Project. Technologies is never nil and
// a null sort_order becomes 0, matching the nulls-first ordering of listings.
func NormalizeProject(row ProjectRow) Project {
	project := Project{
		ID:           row.ID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Title:        row.Title,
		Slug:         row.Slug,
		Description:  deref(row.Description),
		Content:      deref(row.Content),
		ImageURL:     row.ImageURL,
		GithubURL:    row.GithubURL,
		DemoURL:      row.DemoURL,
		IsFeatured:   row.IsFeatured,
		Technologies: make([]Technology, 0, len(row.Technologies)),
	}

	project.Technologies = append(project.Technologies, row.Technologies...)

	if row.SortOrder != nil {
		project.SortOrder = *row.SortOrder
	}

	return project
}

func NormalizeProjects(rows []ProjectRow) []Project {
	projects := make([]Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, NormalizeProject(row))
	}
	return projects
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
