// Package backend opens the configured storage driver and exposes the
// fanfic repositories behind the domain interfaces.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"fanfic/internal/config"
	"fanfic/internal/domain/repositories"
	fanficRepo "fanfic/internal/domain/repositories/fanfic"
	"fanfic/internal/repository"
	"fanfic/internal/repository/postgres"
	postgresFanfic "fanfic/internal/repository/postgres/fanfic"
	"fanfic/internal/repository/sqlite"
	sqliteFanfic "fanfic/internal/repository/sqlite/fanfic"
)

// Store bundles the repositories and lifecycle hooks of one driver.
type Store struct {
	Driver   string
	Tables   *repository.TableNames
	Fandoms  fanficRepo.FandomRepository
	Stories  fanficRepo.StoryRepository
	Chapters fanficRepo.ChapterRepository
	Tx       repositories.TransactionManager

	ping   func(ctx context.Context) error
	ensure func(ctx context.Context) error
	drop   func(ctx context.Context) error
	close  func() error
}

// Open connects to the database selected by cfg.DBDriver.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	tables := repository.NewTableNames(cfg.TablePrefix)

	switch cfg.DBDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DatabaseURL, tables, logger)
	case config.DriverSQLite:
		return openSQLite(cfg.SQLitePath, tables, logger)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %q", cfg.DBDriver)
	}
}

func openPostgres(ctx context.Context, url string, tables *repository.TableNames, logger *slog.Logger) (*Store, error) {
	pool, err := postgres.CreateConnectionPool(ctx, url)
	if err != nil {
		return nil, err
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	return &Store{
		Driver:   config.DriverPostgres,
		Tables:   tables,
		Fandoms:  postgresFanfic.NewFandomRepository(repoConfig),
		Stories:  postgresFanfic.NewStoryRepository(repoConfig),
		Chapters: postgresFanfic.NewChapterRepository(repoConfig),
		Tx:       postgres.NewTransactionManager(pool, logger),
		ping:     pool.Ping,
		ensure:   func(ctx context.Context) error { return postgres.EnsureSchema(ctx, pool, tables) },
		drop:     func(ctx context.Context) error { return postgres.DropTables(ctx, pool, tables) },
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

func openSQLite(path string, tables *repository.TableNames, logger *slog.Logger) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}

	return newSQLiteStore(db, tables, logger), nil
}

// OpenMemory returns a throwaway in-memory SQLite store with the schema applied.
func OpenMemory(ctx context.Context, name string, tables *repository.TableNames, logger *slog.Logger) (*Store, error) {
	db, err := sqlite.OpenMemory(name)
	if err != nil {
		return nil, err
	}

	s := newSQLiteStore(db, tables, logger)
	if err := s.EnsureSchema(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func newSQLiteStore(db *sql.DB, tables *repository.TableNames, logger *slog.Logger) *Store {
	repoConfig := &sqlite.RepositoryConfig{DB: db, Tables: tables}

	return &Store{
		Driver:   config.DriverSQLite,
		Tables:   tables,
		Fandoms:  sqliteFanfic.NewFandomRepository(repoConfig),
		Stories:  sqliteFanfic.NewStoryRepository(repoConfig),
		Chapters: sqliteFanfic.NewChapterRepository(repoConfig),
		Tx:       sqlite.NewTransactionManager(db, logger),
		ping:     db.PingContext,
		ensure:   func(ctx context.Context) error { return sqlite.EnsureSchema(ctx, db, tables) },
		drop:     func(ctx context.Context) error { return sqlite.DropTables(ctx, db, tables) },
		close:    db.Close,
	}
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// EnsureSchema creates the tables and indexes if they don't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.ensure(ctx)
}

// DropTables drops every fanfic table.
func (s *Store) DropTables(ctx context.Context) error {
	return s.drop(ctx)
}

// Close releases the underlying connections.
func (s *Store) Close() error {
	return s.close()
}
