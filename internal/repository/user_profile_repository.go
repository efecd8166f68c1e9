package repository

import (
	"context"

	"portfolio/internal/domain/models"
	"portfolio/internal/storage/supabase"
)

// RestUserProfileRepo reads "profiles" rows with the owner's bearer token,
// one authenticated client per call.
type RestUserProfileRepo struct {
	cfg  supabase.Config
	opts []supabase.Option
}

func NewRestUserProfileRepo(cfg supabase.Config, opts ...supabase.Option) *RestUserProfileRepo {
	return &RestUserProfileRepo{cfg: cfg, opts: opts}
}

func (r *RestUserProfileRepo) UserProfile(ctx context.Context, accessToken, userID string) (*models.UserProfile, error) {
	const op = "repository.user_profile_repository.UserProfile"

	client := supabase.NewAuthenticated(r.cfg, accessToken, r.opts...)

	var profile models.UserProfile
	err := client.From(profilesTable).
		Select("id, username, full_name, avatar_url").
		Eq("id", userID).
		Single().
		Execute(ctx, &profile)
	if err != nil {
		return nil, notFoundOr(op, err)
	}

	return &profile, nil
}
