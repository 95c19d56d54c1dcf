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

// SqliteChapterRepository implements the ChapterRepository interface
type SqliteChapterRepository struct {
	db     *sql.DB
	tables *repository.TableNames
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(config *sqlite.RepositoryConfig) fanficRepo.ChapterRepository {
	return &SqliteChapterRepository{db: config.DB, tables: config.Tables}
}

func (r *SqliteChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		r.tables.Chapters, repository.ChapterColumns, repository.Placeholders(8, repository.QuestionPlaceholder))

	if _, err := sqlite.GetExecutor(ctx, r.db).ExecContext(ctx, query, repository.ChapterArgs(chapter)...); err != nil {
		if sqlite.IsForeignKeyError(err) {
			return fmt.Errorf("story %s: %w", chapter.StoryID, domain.ErrNotFound)
		}
		if sqlite.IsDuplicateError(err) {
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

func (r *SqliteChapterRepository) GetInStory(ctx context.Context, id, storyID string) (*models.Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? AND story_id = ?`, repository.ChapterColumns, r.tables.Chapters)

	var chapter models.Chapter
	if err := repository.ScanChapter(sqlite.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id, storyID), &chapter); err != nil {
		if sqlite.IsNoRowsError(err) {
			return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chapter: %w", err)
	}
	return &chapter, nil
}

func (r *SqliteChapterRepository) ListByStory(ctx context.Context, storyID string) ([]models.Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE story_id = ? ORDER BY order_index ASC, created_at ASC`,
		repository.ChapterColumns, r.tables.Chapters)

	rows, err := sqlite.GetExecutor(ctx, r.db).QueryContext(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	chapters := []models.Chapter{}
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
	return chapters, nil
}

func (r *SqliteChapterRepository) UpdateInStory(ctx context.Context, id, storyID string, patch *models.ChapterPatch, updatedAt time.Time) (*models.Chapter, error) {
	assignments := append(repository.ChapterAssignments(patch),
		repository.Assignment{Column: "updated_at", Value: updatedAt})
	set, args := repository.SetClause(assignments, repository.QuestionPlaceholder)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ? AND story_id = ? RETURNING %s`,
		r.tables.Chapters, set, repository.ChapterColumns)
	args = append(args, id, storyID)

	var chapter models.Chapter
	if err := repository.ScanChapter(sqlite.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...), &chapter); err != nil {
		if sqlite.IsNoRowsError(err) {
			return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update chapter: %w", err)
	}
	return &chapter, nil
}

func (r *SqliteChapterRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Chapters)

	result, err := sqlite.GetExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
