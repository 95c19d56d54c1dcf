package fanfic

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fanfic/internal/domain"
	models "fanfic/internal/domain/models/fanfic"
	fanficRepo "fanfic/internal/domain/repositories/fanfic"
	"fanfic/internal/repository"
	"fanfic/internal/repository/postgres"
)

// PostgresFandomRepository implements the FandomRepository interface
type PostgresFandomRepository struct {
	pool   *pgxpool.Pool
	tables *repository.TableNames
}

// NewFandomRepository creates a new fandom repository
func NewFandomRepository(config *postgres.RepositoryConfig) fanficRepo.FandomRepository {
	return &PostgresFandomRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new fandom
func (r *PostgresFandomRepository) Create(ctx context.Context, fandom *models.Fandom) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Fandoms, repository.FandomColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		fandom.ID,
		fandom.UserID,
		fandom.Name,
		fandom.CanonType,
		fandom.Description,
		fandom.IsSystem,
		fandom.CreatedAt,
		fandom.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("fandom '%s' already exists", fandom.ID),
				ResourceType: "fandom",
				ResourceID:   fandom.ID,
			}
		}
		return fmt.Errorf("create fandom: %w", err)
	}

	return nil
}

// GetByID retrieves a fandom by ID
func (r *PostgresFandomRepository) GetByID(ctx context.Context, id string) (*models.Fandom, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, repository.FandomColumns, r.tables.Fandoms)

	var fandom models.Fandom
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := repository.ScanFandom(executor.QueryRow(ctx, query, id), &fandom); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("fandom %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get fandom: %w", err)
	}

	return &fandom, nil
}

// ListVisible retrieves the user's fandoms plus all ownerless ones
func (r *PostgresFandomRepository) ListVisible(ctx context.Context, userID string) ([]models.Fandom, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY name ASC, created_at ASC
	`, repository.FandomColumns, r.tables.Fandoms)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list fandoms: %w", err)
	}
	defer rows.Close()

	var fandoms []models.Fandom
	for rows.Next() {
		var fandom models.Fandom
		if err := repository.ScanFandom(rows, &fandom); err != nil {
			return nil, fmt.Errorf("scan fandom: %w", err)
		}
		fandoms = append(fandoms, fandom)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fandoms: %w", err)
	}

	if fandoms == nil {
		fandoms = []models.Fandom{}
	}

	return fandoms, nil
}

// Update applies a partial update and returns the updated fandom
func (r *PostgresFandomRepository) Update(ctx context.Context, id string, patch *models.FandomPatch, updatedAt time.Time) (*models.Fandom, error) {
	assignments := append(repository.FandomAssignments(patch),
		repository.Assignment{Column: "updated_at", Value: updatedAt})
	set, args := repository.SetClause(assignments, repository.DollarPlaceholder)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, r.tables.Fandoms, set, len(args)+1, repository.FandomColumns)
	args = append(args, id)

	var fandom models.Fandom
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := repository.ScanFandom(executor.QueryRow(ctx, query, args...), &fandom); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("fandom %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update fandom: %w", err)
	}

	return &fandom, nil
}

// UpsertSystem inserts a catalog fandom or refreshes its descriptive fields.
// The row is always forced back to ownerless and system.
func (r *PostgresFandomRepository) UpsertSystem(ctx context.Context, fandom *models.Fandom) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, NULL, $2, $3, $4, TRUE, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			user_id = NULL,
			name = EXCLUDED.name,
			canon_type = EXCLUDED.canon_type,
			description = EXCLUDED.description,
			is_system = TRUE,
			updated_at = EXCLUDED.updated_at
	`, r.tables.Fandoms, repository.FandomColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		fandom.ID,
		fandom.Name,
		fandom.CanonType,
		fandom.Description,
		fandom.CreatedAt,
		fandom.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert system fandom %s: %w", fandom.Name, err)
	}

	return nil
}
