package dto

import (
	"time"

	"portfolio/internal/domain/models"
)

type TagPostsResponse struct {
	Tag   models.Tag        `json:"tag"`
	Posts []models.BlogPost `json:"posts"`
}

type LoginResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionResponse struct {
	UserID    string              `json:"user_id"`
	Email     string              `json:"email"`
	ExpiresAt time.Time           `json:"expires_at"`
	Profile   *models.UserProfile `json:"profile"`
}
