package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return run(ctx, migrations(), func(ctx context.Context, sql string) error {
		_, err := pool.Exec(ctx, sql)
		return err
	})
}

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

func migrations() []Migration {
	return []Migration{
		{
			Name: "create_cv_documents",
			SQL: `
				CREATE TABLE IF NOT EXISTS cv_documents (
					slug       TEXT PRIMARY KEY,
					data       JSONB NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				);
			`,
		},
		{
			Name: "index_cv_documents_full_name",
			SQL: `
				CREATE INDEX IF NOT EXISTS cv_documents_full_name_idx
				ON cv_documents ((data->'profile'->>'fullName'));
			`,
		},
	}
}

func run(ctx context.Context, ms []Migration, exec func(ctx context.Context, sql string) error) error {
	slog.Info("Starting database migrations", "count", len(ms))

	for _, m := range ms {
		if err := exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}
