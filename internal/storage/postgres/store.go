package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"tasknotes/internal/storage"
)

type Store struct {
	logger zerolog.Logger
	pool   *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

func New(logger zerolog.Logger, pool *pgxpool.Pool) *Store {
	return &Store{
		logger: logger,
		pool:   pool,
	}
}

const createTablesQuery = `
CREATE TABLE IF NOT EXISTS users (
    id         uuid PRIMARY KEY,
    username   text NOT NULL UNIQUE,
    password   text NOT NULL,
    created_at timestamptz NOT NULL,
    updated_at timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id            uuid PRIMARY KEY,
    user_id       uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    fingerprint   text NOT NULL,
    refresh_token text NOT NULL UNIQUE,
    expires_at    timestamptz NOT NULL,
    created_at    timestamptz NOT NULL,
    updated_at    timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id          bigserial PRIMARY KEY,
    owner       uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    description text NOT NULL,
    status      text NOT NULL,
    priority    text NOT NULL,
    created_at  timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
    id         bigserial PRIMARY KEY,
    owner      uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    body       text NOT NULL,
    created_at timestamptz NOT NULL
);
`

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, createTablesQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create tables")
		return err
	}

	s.logger.Info().Msg("ensured schema")
	return nil
}
