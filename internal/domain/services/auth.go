package services

import (
	"context"

	"fanfic/internal/domain/models/fanfic"
)

// FanficAuthorizer resolves an entity and checks that the caller may act on it.
// Every check is a read; none of them mutate state.
//
// Stories are owned directly, chapters transitively through their story, and
// fandoms are visible when they are system fandoms, ownerless, or the caller's own.
type FanficAuthorizer interface {
	// AssertFandomAccessible returns the fandom if userID may reference it.
	// domain.ErrNotFound if it does not exist, domain.ErrForbidden if it is
	// another user's private fandom.
	AssertFandomAccessible(ctx context.Context, fandomID, userID string) (*fanfic.Fandom, error)

	// AssertStoryOwned returns the story if it exists and belongs to userID.
	// Missing and foreign stories both yield domain.ErrNotFound.
	AssertStoryOwned(ctx context.Context, storyID, userID string) (*fanfic.Story, error)

	// AssertChapterOwned checks story ownership, then returns the chapter if it belongs to that story.
	AssertChapterOwned(ctx context.Context, chapterID, storyID, userID string) (*fanfic.Chapter, error)
}
