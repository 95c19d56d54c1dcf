package sqlite

import (
	"context"
	"fmt"

	"fanfic/internal/domain/repositories"
	"fanfic/internal/repository"
)

// SchemaStatements returns the DDL for the fanfic tables.
// Timestamps are declared TIMESTAMP so the driver scans them into time.Time.
func SchemaStatements(tables *repository.TableNames) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
            id TEXT PRIMARY KEY,
            user_id TEXT,
            name TEXT NOT NULL,
            canon_type TEXT,
            description TEXT,
            is_system BOOLEAN NOT NULL DEFAULT 0,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );`, tables.Fandoms),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            fandom_id TEXT REFERENCES %s(id) ON DELETE SET NULL,
            title TEXT NOT NULL,
            summary TEXT,
            rating TEXT,
            pairing TEXT,
            tags TEXT,
            status TEXT,
            language TEXT,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );`, tables.Stories, tables.Fandoms),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
            id TEXT PRIMARY KEY,
            story_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
            order_index INTEGER NOT NULL DEFAULT 1,
            title TEXT,
            notes TEXT,
            content TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );`, tables.Chapters, tables.Stories),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfandoms_user_id ON %s(user_id);`, tables.Prefix, tables.Fandoms),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfanfic_stories_user_id ON %s(user_id);`, tables.Prefix, tables.Stories),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfanfic_chapters_story_order ON %s(story_id, order_index);`, tables.Prefix, tables.Chapters),
	}
}

// EnsureSchema creates tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db repositories.SQLTX, tables *repository.TableNames) error {
	for _, stmt := range SchemaStatements(tables) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// DropTables drops all fanfic tables, children first.
func DropTables(ctx context.Context, db repositories.SQLTX, tables *repository.TableNames) error {
	all := tables.All()
	for i := len(all) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+all[i]); err != nil {
			return fmt.Errorf("drop %s: %w", all[i], err)
		}
	}
	return nil
}
