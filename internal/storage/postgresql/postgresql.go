package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

//go:embed schema.sql
var schema string

// Storage owns the connection pool for the direct Postgres content source.
type Storage struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// FromPool wraps an existing pool.
func FromPool(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Migrate creates the content tables when they do not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgresql.Migrate"

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Stop() {
	s.db.Close()
}
