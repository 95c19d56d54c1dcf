// Package fanfic implements the fanfic repositories on SQLite.
package fanfic

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fanfic/internal/domain"
	models "fanfic/internal/domain/models/fanfic"
	fanficRepo "fanfic/internal/domain/repositories/fanfic"
	"fanfic/internal/repository"
	"fanfic/internal/repository/sqlite"
)

// SqliteFandomRepository implements the FandomRepository interface
type SqliteFandomRepository struct {
	db     *sql.DB
	tables *repository.TableNames
}

// NewFandomRepository creates a new fandom repository
func NewFandomRepository(config *sqlite.RepositoryConfig) fanficRepo.FandomRepository {
	return &SqliteFandomRepository{db: config.DB, tables: config.Tables}
}

func (r *SqliteFandomRepository) Create(ctx context.Context, fandom *models.Fandom) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		r.tables.Fandoms, repository.FandomColumns, repository.Placeholders(8, repository.QuestionPlaceholder))

	if _, err := sqlite.GetExecutor(ctx, r.db).ExecContext(ctx, query, repository.FandomArgs(fandom)...); err != nil {
		if sqlite.IsDuplicateError(err) {
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

func (r *SqliteFandomRepository) GetByID(ctx context.Context, id string) (*models.Fandom, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, repository.FandomColumns, r.tables.Fandoms)

	var fandom models.Fandom
	if err := repository.ScanFandom(sqlite.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id), &fandom); err != nil {
		if sqlite.IsNoRowsError(err) {
			return nil, fmt.Errorf("fandom %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get fandom: %w", err)
	}
	return &fandom, nil
}

func (r *SqliteFandomRepository) ListVisible(ctx context.Context, userID string) ([]models.Fandom, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = ? OR user_id IS NULL ORDER BY name ASC, created_at ASC`,
		repository.FandomColumns, r.tables.Fandoms)

	rows, err := sqlite.GetExecutor(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list fandoms: %w", err)
	}
	defer rows.Close()

	fandoms := []models.Fandom{}
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
	return fandoms, nil
}

func (r *SqliteFandomRepository) Update(ctx context.Context, id string, patch *models.FandomPatch, updatedAt time.Time) (*models.Fandom, error) {
	assignments := append(repository.FandomAssignments(patch),
		repository.Assignment{Column: "updated_at", Value: updatedAt})
	set, args := repository.SetClause(assignments, repository.QuestionPlaceholder)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ? RETURNING %s`, r.tables.Fandoms, set, repository.FandomColumns)
	args = append(args, id)

	var fandom models.Fandom
	if err := repository.ScanFandom(sqlite.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...), &fandom); err != nil {
		if sqlite.IsNoRowsError(err) {
			return nil, fmt.Errorf("fandom %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update fandom: %w", err)
	}
	return &fandom, nil
}

func (r *SqliteFandomRepository) UpsertSystem(ctx context.Context, fandom *models.Fandom) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (%s) VALUES (?, NULL, ?, ?, ?, 1, ?, ?)
        ON CONFLICT (id) DO UPDATE SET
            user_id = NULL,
            name = excluded.name,
            canon_type = excluded.canon_type,
            description = excluded.description,
            is_system = 1,
            updated_at = excluded.updated_at`,
		r.tables.Fandoms, repository.FandomColumns)

	_, err := sqlite.GetExecutor(ctx, r.db).ExecContext(ctx, query,
		fandom.ID, fandom.Name, fandom.CanonType, fandom.Description, fandom.CreatedAt, fandom.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert system fandom %s: %w", fandom.Name, err)
	}
	return nil
}
