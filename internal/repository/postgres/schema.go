package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and indexes if they do not exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				title VARCHAR(255) NOT NULL,
				institute VARCHAR(255) NOT NULL,
				subject VARCHAR(255) NOT NULL,
				chapter VARCHAR(255) NOT NULL,
				topic VARCHAR(255) NOT NULL,
				type VARCHAR(16) NOT NULL,
				url TEXT,
				body TEXT,
				position INTEGER NOT NULL DEFAULT 0,
				created_by UUID NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)
		`, tables.Contents),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_topic_position_idx
			ON %s (institute, subject, chapter, topic, position)
			WHERE deleted_at IS NULL
		`, tables.Contents, tables.Contents),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				user_id UUID PRIMARY KEY,
				preferences JSONB NOT NULL DEFAULT '{}'::jsonb,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.UserPreferences),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return nil
}

// DropSchema drops every table owned by the service
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Contents, tables.UserPreferences} {
		if _, err := pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, table)); err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
	}
	return nil
}

// ClearContents removes every content row while keeping the schema
func ClearContents(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) (int64, error) {
	tag, err := pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, tables.Contents))
	if err != nil {
		return 0, fmt.Errorf("clear contents: %w", err)
	}
	return tag.RowsAffected(), nil
}
