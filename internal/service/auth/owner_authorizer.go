package auth

import (
	"context"
	"fmt"

	"fanfic/internal/domain"
	"fanfic/internal/domain/models/fanfic"
	fanficRepo "fanfic/internal/domain/repositories/fanfic"
	"fanfic/internal/domain/services"
)

// OwnerBasedAuthorizer implements FanficAuthorizer using ownership checks.
//
// Stories are scoped by owner inside the repository query, so a foreign
// story is reported as not found. Chapters inherit that check through their
// story. Fandoms are the only entity that can be visible but forbidden.
type OwnerBasedAuthorizer struct {
	fandomRepo  fanficRepo.FandomRepository
	storyRepo   fanficRepo.StoryRepository
	chapterRepo fanficRepo.ChapterRepository
}

var _ services.FanficAuthorizer = (*OwnerBasedAuthorizer)(nil)

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	fandomRepo fanficRepo.FandomRepository,
	storyRepo fanficRepo.StoryRepository,
	chapterRepo fanficRepo.ChapterRepository,
) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		fandomRepo:  fandomRepo,
		storyRepo:   storyRepo,
		chapterRepo: chapterRepo,
	}
}

// AssertFandomAccessible checks the fandom is a system fandom, ownerless, or the caller's own.
// An ownerless fandom without the system flag is accessible to everyone.
func (a *OwnerBasedAuthorizer) AssertFandomAccessible(ctx context.Context, fandomID, userID string) (*fanfic.Fandom, error) {
	fandom, err := a.fandomRepo.GetByID(ctx, fandomID)
	if err != nil {
		return nil, err
	}

	if fandom.IsOwnedByOther(userID) && !fandom.IsSystem {
		return nil, &domain.ForbiddenError{
			Message: fmt.Sprintf("fandom %s belongs to another user", fandomID),
		}
	}

	return fandom, nil
}

// AssertStoryOwned returns the story only if userID owns it
func (a *OwnerBasedAuthorizer) AssertStoryOwned(ctx context.Context, storyID, userID string) (*fanfic.Story, error) {
	return a.storyRepo.GetOwned(ctx, storyID, userID)
}

// AssertChapterOwned checks the parent story first, then the chapter within it
func (a *OwnerBasedAuthorizer) AssertChapterOwned(ctx context.Context, chapterID, storyID, userID string) (*fanfic.Chapter, error) {
	if _, err := a.AssertStoryOwned(ctx, storyID, userID); err != nil {
		return nil, err
	}

	return a.chapterRepo.GetInStory(ctx, chapterID, storyID)
}
