package fanfic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"fanfic/internal/config"
	"fanfic/internal/domain"
	models "fanfic/internal/domain/models/fanfic"
	fanficRepo "fanfic/internal/domain/repositories/fanfic"
	"fanfic/internal/domain/services"
	fanficSvc "fanfic/internal/domain/services/fanfic"
)

// fandomService implements the FandomService interface
type fandomService struct {
	fandomRepo fanficRepo.FandomRepository
	authorizer services.FanficAuthorizer
	logger     *slog.Logger
}

// NewFandomService creates a new fandom service
func NewFandomService(
	fandomRepo fanficRepo.FandomRepository,
	authorizer services.FanficAuthorizer,
	logger *slog.Logger,
) fanficSvc.FandomService {
	return &fandomService{
		fandomRepo: fandomRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// ListFandoms returns the caller's fandoms plus all ownerless ones
func (s *fandomService) ListFandoms(ctx context.Context, userID string) (*models.ListResult[models.Fandom], error) {
	fandoms, err := s.fandomRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}

	return models.NewListResult(fandoms), nil
}

// CreateFandom creates a private fandom owned by the caller
func (s *fandomService) CreateFandom(ctx context.Context, req *fanficSvc.CreateFandomRequest) (*models.Fandom, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationFailed(err)
	}

	now := time.Now().UTC()
	owner := req.UserID
	fandom := &models.Fandom{
		ID:          uuid.NewString(),
		UserID:      &owner,
		Name:        strings.TrimSpace(req.Name),
		CanonType:   trimmed(req.CanonType),
		Description: req.Description,
		IsSystem:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.fandomRepo.Create(ctx, fandom); err != nil {
		return nil, err
	}

	s.logger.Info("fandom created",
		"id", fandom.ID,
		"name", fandom.Name,
		"user_id", req.UserID,
	)

	return fandom, nil
}

// UpdateFandom applies a partial update to a fandom the caller may modify.
// Another user's fandom is forbidden, and so is a system fandom the caller does not own.
func (s *fandomService) UpdateFandom(ctx context.Context, id, userID string, req *fanficSvc.UpdateFandomRequest) (*models.Fandom, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, validationFailed(err)
	}

	fandom, err := s.authorizer.AssertFandomAccessible(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// Accessibility lets system fandoms through; mutation needs ownership
	if fandom.IsOwnedByOther(userID) {
		return nil, &domain.ForbiddenError{Message: fmt.Sprintf("fandom %s belongs to another user", id)}
	}
	if fandom.IsSystem && !fandom.IsOwnedBy(userID) {
		return nil, &domain.ForbiddenError{Message: fmt.Sprintf("fandom %s is a read-only system fandom", id)}
	}

	patch := req.Patch
	patch.Name = trimmed(patch.Name)

	updated, err := s.fandomRepo.Update(ctx, id, &patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info("fandom updated",
		"id", id,
		"user_id", userID,
	)

	return updated, nil
}

func (s *fandomService) validateCreateRequest(req *fanficSvc.CreateFandomRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFandomNameLength),
			validation.By(notBlank),
		),
		validation.Field(&req.CanonType, validation.Length(0, config.MaxCanonTypeLength)),
	)
}

func (s *fandomService) validateUpdateRequest(req *fanficSvc.UpdateFandomRequest) error {
	if req.Patch.IsEmpty() {
		return errEmptyPatch
	}

	p := &req.Patch
	return validation.ValidateStruct(p,
		validation.Field(&p.Name,
			validation.Length(1, config.MaxFandomNameLength),
			validation.By(notBlank),
		),
		validation.Field(&p.CanonType, optionalLength(config.MaxCanonTypeLength)),
	)
}
