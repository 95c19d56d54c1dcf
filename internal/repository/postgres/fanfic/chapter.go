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

// PostgresChapterRepository implements the ChapterRepository interface
type PostgresChapterRepository struct {
	pool   *pgxpool.Pool
	tables *repository.TableNames
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(config *postgres.RepositoryConfig) fanficRepo.ChapterRepository {
	return &PostgresChapterRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new chapter
func (r *PostgresChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Chapters, repository.ChapterColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		chapter.ID,
		chapter.StoryID,
		chapter.OrderIndex,
		chapter.Title,
		chapter.Notes,
		chapter.Content,
		chapter.CreatedAt,
		chapter.UpdatedAt,
	)
	if err != nil {
		// Parent story vanished between the ownership check and the insert
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("story %s: %w", chapter.StoryID, domain.ErrNotFound)
		}
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("chapter '%s' already exists", chapter.ID),
				ResourceType: "chapter",
				ResourceID:   chapter.ID,
			}
		}
		return fmt.Errorf("create chapter: %w", err)
	}

	return nil
}

// GetInStory retrieves a chapter by ID, scoped to its story
func (r *PostgresChapterRepository) GetInStory(ctx context.Context, id, storyID string) (*models.Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND story_id = $2
	`, repository.ChapterColumns, r.tables.Chapters)

	var chapter models.Chapter
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := repository.ScanChapter(executor.QueryRow(ctx, query, id, storyID), &chapter); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chapter: %w", err)
	}

	return &chapter, nil
}

// ListByStory retrieves a story's chapters in reading order
func (r *PostgresChapterRepository) ListByStory(ctx context.Context, storyID string) ([]models.Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE story_id = $1
		ORDER BY order_index ASC, created_at ASC
	`, repository.ChapterColumns, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var chapter models.Chapter
		if err := repository.ScanChapter(rows, &chapter); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}

	if chapters == nil {
		chapters = []models.Chapter{}
	}

	return chapters, nil
}

// UpdateInStory applies a partial update to a chapter of storyID
func (r *PostgresChapterRepository) UpdateInStory(ctx context.Context, id, storyID string, patch *models.ChapterPatch, updatedAt time.Time) (*models.Chapter, error) {
	assignments := append(repository.ChapterAssignments(patch),
		repository.Assignment{Column: "updated_at", Value: updatedAt})
	set, args := repository.SetClause(assignments, repository.DollarPlaceholder)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $%d AND story_id = $%d
		RETURNING %s
	`, r.tables.Chapters, set, len(args)+1, len(args)+2, repository.ChapterColumns)
	args = append(args, id, storyID)

	var chapter models.Chapter
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := repository.ScanChapter(executor.QueryRow(ctx, query, args...), &chapter); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update chapter: %w", err)
	}

	return &chapter, nil
}

// Delete deletes a chapter
func (r *PostgresChapterRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
