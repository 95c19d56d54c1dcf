package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"fanfic/internal/repository"
)

// Execer is the subset of *pgxpool.Pool / pgx.Tx needed for DDL
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// SchemaStatements returns the DDL for the fanfic tables, in execution order.
func SchemaStatements(tables *repository.TableNames) []string {
	return []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				user_id TEXT,
				name VARCHAR(255) NOT NULL,
				canon_type VARCHAR(100),
				description TEXT,
				is_system BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Fandoms),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				fandom_id TEXT REFERENCES %s(id) ON DELETE SET NULL,
				title VARCHAR(255) NOT NULL,
				summary TEXT,
				rating VARCHAR(50),
				pairing VARCHAR(255),
				tags TEXT,
				status VARCHAR(50),
				language VARCHAR(50),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Stories, tables.Fandoms),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				story_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				order_index INTEGER NOT NULL DEFAULT 1,
				title VARCHAR(255),
				notes TEXT,
				content TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Chapters, tables.Stories),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfandoms_user_id ON %s(user_id)`, tables.Prefix, tables.Fandoms),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfanfic_stories_user_id ON %s(user_id)`, tables.Prefix, tables.Stories),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfanfic_chapters_story_order ON %s(story_id, order_index)`, tables.Prefix, tables.Chapters),
	}
}

// EnsureSchema creates tables and indexes if they don't exist
func EnsureSchema(ctx context.Context, exec Execer, tables *repository.TableNames) error {
	for _, stmt := range SchemaStatements(tables) {
		if _, err := exec.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// DropTables drops all fanfic tables in reverse dependency order
func DropTables(ctx context.Context, exec Execer, tables *repository.TableNames) error {
	all := tables.All()
	for i := len(all) - 1; i >= 0; i-- {
		if _, err := exec.Exec(ctx, "DROP TABLE IF EXISTS "+all[i]+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", all[i], err)
		}
	}
	return nil
}
