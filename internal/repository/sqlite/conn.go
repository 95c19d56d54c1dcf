// Package sqlite is the embedded storage backend used for local development and tests.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"fanfic/internal/repository"
)

// RepositoryConfig holds configuration for SQLite repository implementations
type RepositoryConfig struct {
	DB     *sql.DB
	Tables *repository.TableNames
}

// Open opens (or creates) a SQLite database at the given path with WAL journaling
// and foreign keys enforced on every connection.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)
	return open(dsn)
}

// OpenMemory opens a private in-memory database identified by name.
// Each distinct name is an independent database.
func OpenMemory(name string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(ON)", name)
	db, err := open(dsn)
	if err != nil {
		return nil, err
	}
	// The database lives only as long as one connection keeps it open
	db.SetMaxOpenConns(1)
	return db, nil
}

func open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}
