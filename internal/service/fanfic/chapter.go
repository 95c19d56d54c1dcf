package fanfic

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"fanfic/internal/config"
	models "fanfic/internal/domain/models/fanfic"
	fanficRepo "fanfic/internal/domain/repositories/fanfic"
	"fanfic/internal/domain/services"
	fanficSvc "fanfic/internal/domain/services/fanfic"
)

// chapterService implements the ChapterService interface
type chapterService struct {
	chapterRepo fanficRepo.ChapterRepository
	authorizer  services.FanficAuthorizer
	logger      *slog.Logger
}

// NewChapterService creates a new chapter service
func NewChapterService(
	chapterRepo fanficRepo.ChapterRepository,
	authorizer services.FanficAuthorizer,
	logger *slog.Logger,
) fanficSvc.ChapterService {
	return &chapterService{
		chapterRepo: chapterRepo,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// ListChapters retrieves the chapters of an owned story
func (s *chapterService) ListChapters(ctx context.Context, storyID, userID string) (*models.ListResult[models.Chapter], error) {
	if _, err := s.authorizer.AssertStoryOwned(ctx, storyID, userID); err != nil {
		return nil, err
	}

	chapters, err := s.chapterRepo.ListByStory(ctx, storyID)
	if err != nil {
		return nil, err
	}

	return models.NewListResult(chapters), nil
}

// CreateChapter adds a chapter to an owned story
func (s *chapterService) CreateChapter(ctx context.Context, req *fanficSvc.CreateChapterRequest) (*models.Chapter, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationFailed(err)
	}

	if _, err := s.authorizer.AssertStoryOwned(ctx, req.StoryID, req.UserID); err != nil {
		return nil, err
	}

	orderIndex := models.DefaultOrderIndex
	if req.OrderIndex != nil {
		orderIndex = *req.OrderIndex
	}

	now := time.Now().UTC()
	chapter := &models.Chapter{
		ID:         uuid.NewString(),
		StoryID:    req.StoryID,
		OrderIndex: orderIndex,
		Title:      trimmed(req.Title),
		Notes:      req.Notes,
		Content:    req.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.chapterRepo.Create(ctx, chapter); err != nil {
		return nil, err
	}

	s.logger.Info("chapter created",
		"id", chapter.ID,
		"story_id", chapter.StoryID,
		"order_index", chapter.OrderIndex,
		"user_id", req.UserID,
	)

	return chapter, nil
}

// UpdateChapter applies a partial update to a chapter of an owned story
func (s *chapterService) UpdateChapter(ctx context.Context, id, storyID, userID string, req *fanficSvc.UpdateChapterRequest) (*models.Chapter, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, validationFailed(err)
	}

	if _, err := s.authorizer.AssertChapterOwned(ctx, id, storyID, userID); err != nil {
		return nil, err
	}

	updated, err := s.chapterRepo.UpdateInStory(ctx, id, storyID, &req.Patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info("chapter updated",
		"id", id,
		"story_id", storyID,
		"user_id", userID,
	)

	return updated, nil
}

// DeleteChapter deletes a chapter of an owned story.
// The delete itself reports NotFound if the row vanished after the ownership check.
func (s *chapterService) DeleteChapter(ctx context.Context, id, storyID, userID string) error {
	if _, err := s.authorizer.AssertChapterOwned(ctx, id, storyID, userID); err != nil {
		return err
	}

	if err := s.chapterRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("chapter deleted",
		"id", id,
		"story_id", storyID,
		"user_id", userID,
	)

	return nil
}

func (s *chapterService) validateCreateRequest(req *fanficSvc.CreateChapterRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.StoryID, validation.Required),
		validation.Field(&req.OrderIndex, validation.Min(0), validation.Max(config.MaxOrderIndex)),
		validation.Field(&req.Title, validation.Length(0, config.MaxChapterTitleLength)),
		validation.Field(&req.Content, validation.Required),
	)
}

func (s *chapterService) validateUpdateRequest(req *fanficSvc.UpdateChapterRequest) error {
	if req.Patch.IsEmpty() {
		return errEmptyPatch
	}

	p := &req.Patch
	return validation.ValidateStruct(p,
		validation.Field(&p.OrderIndex, validation.Min(0), validation.Max(config.MaxOrderIndex)),
		validation.Field(&p.Title, optionalLength(config.MaxChapterTitleLength)),
		validation.Field(&p.Content, validation.NilOrNotEmpty),
	)
}
