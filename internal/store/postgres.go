package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a Blob backed by a Postgres table, for deployments that
// keep learner models server-side.
type PostgresStore struct {
	pool    *pgxpool.Pool
	queries blobQueries
	now     func() time.Time
}

// OpenPostgres connects to dsn, verifies the connection and creates the
// blob table.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{
		pool:    pool,
		queries: blobQueries{dialect: dialect.Postgres},
		now:     time.Now,
	}
	query, args := s.queries.createTable()
	if _, err := pool.Exec(ctx, query, args...); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create blob table: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := s.queries.get(key)

	var value string
	err := s.pool.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query blob %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query, args := s.queries.upsert(key, value, s.now())
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save blob %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	query, args := s.queries.remove(key)
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("remove blob %q: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
