package repository

import (
	"context"
	"errors"
	"fmt"

	"portfolio/internal/storage"
	"portfolio/internal/storage/postgresql"
	"portfolio/internal/storage/supabase"
)

type Repository struct {
	db      *postgresql.Storage
	Content ContentRepository
}

// NewRepository connects to dsn and serves content straight from Postgres.
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	db, err := postgresql.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		db:      db,
		Content: NewPostgresContentRepo(db.Pool()),
	}, nil
}

// NewRestRepository serves content through the data service REST API.
func NewRestRepository(client *supabase.Client) *Repository {
	return &Repository{
		Content: NewRestContentRepo(client),
	}
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Stop()
	}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
}

func notFoundOr(op string, err error) error {
	if errors.Is(err, supabase.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return unavailable(op, err)
}
