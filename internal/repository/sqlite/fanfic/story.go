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

// SqliteStoryRepository implements the StoryRepository interface
type SqliteStoryRepository struct {
	db     *sql.DB
	tables *repository.TableNames
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(config *sqlite.RepositoryConfig) fanficRepo.StoryRepository {
	return &SqliteStoryRepository{db: config.DB, tables: config.Tables}
}

func (r *SqliteStoryRepository) Create(ctx context.Context, story *models.Story) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		r.tables.Stories, repository.StoryColumns, repository.Placeholders(12, repository.QuestionPlaceholder))

	if _, err := sqlite.GetExecutor(ctx, r.db).ExecContext(ctx, query, repository.StoryArgs(story)...); err != nil {
		if sqlite.IsForeignKeyError(err) {
			return fmt.Errorf("fandom for story: %w", domain.ErrNotFound)
		}
		if sqlite.IsDuplicateError(err) {
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

func (r *SqliteStoryRepository) GetOwned(ctx context.Context, id, userID string) (*models.Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? AND user_id = ?`, repository.StoryColumns, r.tables.Stories)

	var story models.Story
	if err := repository.ScanStory(sqlite.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id, userID), &story); err != nil {
		if sqlite.IsNoRowsError(err) {
			return nil, fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get story: %w", err)
	}
	return &story, nil
}

func (r *SqliteStoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = ? ORDER BY updated_at DESC`,
		repository.StoryColumns, r.tables.Stories)

	rows, err := sqlite.GetExecutor(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer rows.Close()

	stories := []models.Story{}
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
	return stories, nil
}

func (r *SqliteStoryRepository) UpdateOwned(ctx context.Context, id, userID string, patch *models.StoryPatch, updatedAt time.Time) (*models.Story, error) {
	assignments := append(repository.StoryAssignments(patch),
		repository.Assignment{Column: "updated_at", Value: updatedAt})
	set, args := repository.SetClause(assignments, repository.QuestionPlaceholder)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ? AND user_id = ? RETURNING %s`,
		r.tables.Stories, set, repository.StoryColumns)
	args = append(args, id, userID)

	var story models.Story
	if err := repository.ScanStory(sqlite.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...), &story); err != nil {
		if sqlite.IsNoRowsError(err) {
			return nil, fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
		}
		if sqlite.IsForeignKeyError(err) {
			return nil, fmt.Errorf("fandom for story %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update story: %w", err)
	}
	return &story, nil
}
