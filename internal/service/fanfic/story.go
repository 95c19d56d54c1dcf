package fanfic

import (
	"context"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"fanfic/internal/config"
	models "fanfic/internal/domain/models/fanfic"
	fanficRepo "fanfic/internal/domain/repositories/fanfic"
	"fanfic/internal/domain/services"
	fanficSvc "fanfic/internal/domain/services/fanfic"
)

// storyService implements the StoryService interface
type storyService struct {
	storyRepo  fanficRepo.StoryRepository
	authorizer services.FanficAuthorizer
	logger     *slog.Logger
}

// NewStoryService creates a new story service
func NewStoryService(
	storyRepo fanficRepo.StoryRepository,
	authorizer services.FanficAuthorizer,
	logger *slog.Logger,
) fanficSvc.StoryService {
	return &storyService{
		storyRepo:  storyRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// ListStories retrieves all stories owned by the caller
func (s *storyService) ListStories(ctx context.Context, userID string) (*models.ListResult[models.Story], error) {
	stories, err := s.storyRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return models.NewListResult(stories), nil
}

// CreateStory creates a story, attaching it to a fandom when one is given
func (s *storyService) CreateStory(ctx context.Context, req *fanficSvc.CreateStoryRequest) (*models.Story, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationFailed(err)
	}

	if req.FandomID != nil {
		if _, err := s.authorizer.AssertFandomAccessible(ctx, *req.FandomID, req.UserID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	story := &models.Story{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		FandomID:  req.FandomID,
		Title:     strings.TrimSpace(req.Title),
		Summary:   req.Summary,
		Rating:    req.Rating,
		Pairing:   req.Pairing,
		Tags:      req.Tags,
		Status:    req.Status,
		Language:  req.Language,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	s.logger.Info("story created",
		"id", story.ID,
		"title", story.Title,
		"user_id", req.UserID,
	)

	return story, nil
}

// UpdateStory applies a partial update to a story owned by the caller.
// A new fandom is checked for accessibility; clearing the fandom is not.
func (s *storyService) UpdateStory(ctx context.Context, id, userID string, req *fanficSvc.UpdateStoryRequest) (*models.Story, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, validationFailed(err)
	}

	if _, err := s.authorizer.AssertStoryOwned(ctx, id, userID); err != nil {
		return nil, err
	}

	patch := req.Patch
	if patch.FandomID.Present && patch.FandomID.Value != nil {
		if _, err := s.authorizer.AssertFandomAccessible(ctx, *patch.FandomID.Value, userID); err != nil {
			return nil, err
		}
	}
	patch.Title = trimmed(patch.Title)

	updated, err := s.storyRepo.UpdateOwned(ctx, id, userID, &patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info("story updated",
		"id", id,
		"user_id", userID,
	)

	return updated, nil
}

func (s *storyService) validateCreateRequest(req *fanficSvc.CreateStoryRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.FandomID, validation.NilOrNotEmpty),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxStoryTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Rating, validation.Length(0, config.MaxShortLabelLength)),
		validation.Field(&req.Pairing, validation.Length(0, config.MaxPairingLength)),
		validation.Field(&req.Status, validation.Length(0, config.MaxShortLabelLength)),
		validation.Field(&req.Language, validation.Length(0, config.MaxShortLabelLength)),
	)
}

func (s *storyService) validateUpdateRequest(req *fanficSvc.UpdateStoryRequest) error {
	if req.Patch.IsEmpty() {
		return errEmptyPatch
	}

	p := &req.Patch
	return validation.ValidateStruct(p,
		validation.Field(&p.FandomID, validation.By(func(value interface{}) error {
			o, _ := value.(models.OptionalString)
			if o.Value != nil && *o.Value == "" {
				return validation.ErrNilOrNotEmpty
			}
			return nil
		})),
		validation.Field(&p.Title,
			validation.Length(1, config.MaxStoryTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&p.Rating, optionalLength(config.MaxShortLabelLength)),
		validation.Field(&p.Pairing, optionalLength(config.MaxPairingLength)),
		validation.Field(&p.Status, optionalLength(config.MaxShortLabelLength)),
		validation.Field(&p.Language, optionalLength(config.MaxShortLabelLength)),
	)
}
