//go:build integration

package fanfic_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"fanfic/internal/repository"
	"fanfic/internal/repository/postgres"
	"fanfic/internal/repository/postgres/fanfic"
	"fanfic/internal/repository/storetest"
)

// startPostgres runs a disposable postgres container and returns its URL.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "fanfic",
			"POSTGRES_PASSWORD": "fanfic",
			"POSTGRES_DB":       "fanfic",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://fanfic:fanfic@%s:%s/fanfic?sslmode=disable", host, port.Port())
}

func makePostgresStore(t *testing.T) *storetest.Store {
	t.Helper()
	ctx := context.Background()

	pool, err := postgres.CreateConnectionPool(ctx, startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tables := repository.NewTableNames("test_")
	require.NoError(t, postgres.EnsureSchema(ctx, pool, tables))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	return &storetest.Store{
		Fandoms:  fanfic.NewFandomRepository(cfg),
		Stories:  fanfic.NewStoryRepository(cfg),
		Chapters: fanfic.NewChapterRepository(cfg),
		Tx:       postgres.NewTransactionManager(pool, logger),
	}
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePostgresStore)
}
