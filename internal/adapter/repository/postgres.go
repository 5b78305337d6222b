package repository

import (
	"context"
	"errors"
	"fmt"

	"cv-generator/internal/model"
	"cv-generator/internal/slug"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	sqlUpsertCV = `INSERT INTO cv_documents (slug, data, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (slug) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

	sqlInsertCV = `INSERT INTO cv_documents (slug, data, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (slug) DO NOTHING`

	sqlSelectCV = `SELECT data FROM cv_documents WHERE slug = $1`

	sqlExistsCV = `SELECT EXISTS (SELECT 1 FROM cv_documents WHERE slug = $1)`
)

// querier is the part of *pgxpool.Pool the store uses.
type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PostgresStore keeps each CV as a JSONB row in cv_documents. The table is
// created by the migration package.
type PostgresStore struct {
	pool querier
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (r *PostgresStore) Put(ctx context.Context, key string, cv model.CV) error {
	if err := checkWriteSlug(key); err != nil {
		return err
	}
	b, err := encodeCV(cv)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, sqlUpsertCV, key, b); err != nil {
		return fmt.Errorf("upsert cv %s: %w", key, err)
	}
	return nil
}

func (r *PostgresStore) Create(ctx context.Context, key string, cv model.CV) error {
	if err := checkWriteSlug(key); err != nil {
		return err
	}
	b, err := encodeCV(cv)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, sqlInsertCV, key, b)
	if err != nil {
		return fmt.Errorf("insert cv %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return taken(key)
	}
	return nil
}

func (r *PostgresStore) Get(ctx context.Context, key string) (model.CV, error) {
	if !slug.Valid(key) {
		return model.CV{}, notFound(key, nil)
	}
	var raw []byte
	err := r.pool.QueryRow(ctx, sqlSelectCV, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CV{}, notFound(key, nil)
		}
		return model.CV{}, notFound(key, err)
	}
	return decodeCV(key, raw)
}

func (r *PostgresStore) Exists(ctx context.Context, key string) (bool, error) {
	var ok bool
	if err := r.pool.QueryRow(ctx, sqlExistsCV, key).Scan(&ok); err != nil {
		return false, fmt.Errorf("probe cv %s: %w", key, err)
	}
	return ok, nil
}
