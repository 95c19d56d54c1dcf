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

// PostgresStoryRepository implements the StoryRepository interface
type PostgresStoryRepository struct {
	pool   *pgxpool.Pool
	tables *repository.TableNames
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(config *postgres.RepositoryConfig) fanficRepo.StoryRepository {
	return &PostgresStoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new story
func (r *PostgresStoryRepository) Create(ctx context.Context, story *models.Story) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.tables.Stories, repository.StoryColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		story.ID,
		story.UserID,
		story.FandomID,
		story.Title,
		story.Summary,
		story.Rating,
		story.Pairing,
		story.Tags,
		story.Status,
		story.Language,
		story.CreatedAt,
		story.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("fandom for story: %w", domain.ErrNotFound)
		}
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("story '%s' already exists", story.ID),
				ResourceType: "story",
				ResourceID:   story.ID,
			}
		}
		return fmt.Errorf("create story: %w", err)
	}

	return nil
}

// GetOwned retrieves a story by ID, scoped to its owner
func (r *PostgresStoryRepository) GetOwned(ctx context.Context, id, userID string) (*models.Story, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, repository.StoryColumns, r.tables.Stories)

	var story models.Story
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := repository.ScanStory(executor.QueryRow(ctx, query, id, userID), &story); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get story: %w", err)
	}

	return &story, nil
}

// ListByUser retrieves all stories for a user, ordered by updated_at DESC
func (r *PostgresStoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Story, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, repository.StoryColumns, r.tables.Stories)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer rows.Close()

	var stories []models.Story
	for rows.Next() {
		var story models.Story
		if err := repository.ScanStory(rows, &story); err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		stories = append(stories, story)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stories: %w", err)
	}

	if stories == nil {
		stories = []models.Story{}
	}

	return stories, nil
}

// UpdateOwned applies a partial update to a story owned by userID
func (r *PostgresStoryRepository) UpdateOwned(ctx context.Context, id, userID string, patch *models.StoryPatch, updatedAt time.Time) (*models.Story, error) {
	assignments := append(repository.StoryAssignments(patch),
		repository.Assignment{Column: "updated_at", Value: updatedAt})
	set, args := repository.SetClause(assignments, repository.DollarPlaceholder)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s
	`, r.tables.Stories, set, len(args)+1, len(args)+2, repository.StoryColumns)
	args = append(args, id, userID)

	var story models.Story
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := repository.ScanStory(executor.QueryRow(ctx, query, args...), &story); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
		}
		if postgres.IsPgForeignKeyError(err) {
			return nil, fmt.Errorf("fandom for story %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update story: %w", err)
	}

	return &story, nil
}
