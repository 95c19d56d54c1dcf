package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fanfic/internal/domain"
	"fanfic/internal/domain/models/fanfic"
)

// Minimal in-memory repositories. Only the lookups the authorizer uses are implemented.

type fakeFandomRepo struct {
	fandoms map[string]*fanfic.Fandom
}

func (r *fakeFandomRepo) Create(context.Context, *fanfic.Fandom) error { return errors.New("unused") }
func (r *fakeFandomRepo) GetByID(_ context.Context, id string) (*fanfic.Fandom, error) {
	f, ok := r.fandoms[id]
	if !ok {
		return nil, fmt.Errorf("fandom %s: %w", id, domain.ErrNotFound)
	}
	return f, nil
}
func (r *fakeFandomRepo) ListVisible(context.Context, string) ([]fanfic.Fandom, error) {
	return nil, errors.New("unused")
}
func (r *fakeFandomRepo) Update(context.Context, string, *fanfic.FandomPatch, time.Time) (*fanfic.Fandom, error) {
	return nil, errors.New("unused")
}
func (r *fakeFandomRepo) UpsertSystem(context.Context, *fanfic.Fandom) error { return errors.New("unused") }

type fakeStoryRepo struct {
	stories map[string]*fanfic.Story
}

func (r *fakeStoryRepo) Create(context.Context, *fanfic.Story) error { return errors.New("unused") }
func (r *fakeStoryRepo) GetOwned(_ context.Context, id, userID string) (*fanfic.Story, error) {
	s, ok := r.stories[id]
	if !ok || s.UserID != userID {
		return nil, fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}
	return s, nil
}
func (r *fakeStoryRepo) ListByUser(context.Context, string) ([]fanfic.Story, error) {
	return nil, errors.New("unused")
}
func (r *fakeStoryRepo) UpdateOwned(context.Context, string, string, *fanfic.StoryPatch, time.Time) (*fanfic.Story, error) {
	return nil, errors.New("unused")
}

type fakeChapterRepo struct {
	chapters map[string]*fanfic.Chapter
	lookups  int
}

func (r *fakeChapterRepo) Create(context.Context, *fanfic.Chapter) error { return errors.New("unused") }
func (r *fakeChapterRepo) GetInStory(_ context.Context, id, storyID string) (*fanfic.Chapter, error) {
	r.lookups++
	c, ok := r.chapters[id]
	if !ok || c.StoryID != storyID {
		return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}
func (r *fakeChapterRepo) ListByStory(context.Context, string) ([]fanfic.Chapter, error) {
	return nil, errors.New("unused")
}
func (r *fakeChapterRepo) UpdateInStory(context.Context, string, string, *fanfic.ChapterPatch, time.Time) (*fanfic.Chapter, error) {
	return nil, errors.New("unused")
}
func (r *fakeChapterRepo) Delete(context.Context, string) error { return errors.New("unused") }

func strPtr(s string) *string { return &s }

func newTestAuthorizer() (*OwnerBasedAuthorizer, *fakeChapterRepo) {
	fandoms := &fakeFandomRepo{fandoms: map[string]*fanfic.Fandom{
		"system":    {ID: "system", Name: "Naruto", IsSystem: true},
		"community": {ID: "community", Name: "Homebrew"},
		"alice-own": {ID: "alice-own", UserID: strPtr("alice"), Name: "Alice's AU"},
		"owned-sys": {ID: "owned-sys", UserID: strPtr("alice"), Name: "Curated", IsSystem: true},
	}}
	stories := &fakeStoryRepo{stories: map[string]*fanfic.Story{
		"story-a": {ID: "story-a", UserID: "alice", Title: "New Beginnings"},
		"story-b": {ID: "story-b", UserID: "bob", Title: "Elsewhere"},
	}}
	chapters := &fakeChapterRepo{chapters: map[string]*fanfic.Chapter{
		"ch-1": {ID: "ch-1", StoryID: "story-a", OrderIndex: 1, Content: "Once"},
		"ch-b": {ID: "ch-b", StoryID: "story-b", OrderIndex: 1, Content: "Twice"},
	}}
	return NewOwnerBasedAuthorizer(fandoms, stories, chapters), chapters
}

func TestAssertFandomAccessible(t *testing.T) {
	authz, _ := newTestAuthorizer()

	tests := []struct {
		name     string
		fandomID string
		userID   string
		wantErr  error
	}{
		{"system fandom visible to anyone", "system", "bob", nil},
		{"ownerless non-system fandom visible to anyone", "community", "bob", nil},
		{"own fandom", "alice-own", "alice", nil},
		{"another user's private fandom", "alice-own", "bob", domain.ErrForbidden},
		{"owned system fandom stays accessible", "owned-sys", "bob", nil},
		{"missing fandom", "nope", "alice", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fandom, err := authz.AssertFandomAccessible(context.Background(), tt.fandomID, tt.userID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if fandom != nil {
					t.Errorf("expected no fandom on error, got %+v", fandom)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fandom.ID != tt.fandomID {
				t.Errorf("got fandom %s, want %s", fandom.ID, tt.fandomID)
			}
		})
	}
}

func TestAssertStoryOwned_ForeignAndMissingAreIndistinguishable(t *testing.T) {
	authz, _ := newTestAuthorizer()
	ctx := context.Background()

	story, err := authz.AssertStoryOwned(ctx, "story-a", "alice")
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if story.Title != "New Beginnings" {
		t.Errorf("unexpected story %+v", story)
	}

	_, foreignErr := authz.AssertStoryOwned(ctx, "story-b", "alice")
	_, missingErr := authz.AssertStoryOwned(ctx, "story-x", "alice")
	for _, err := range []error{foreignErr, missingErr} {
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if errors.Is(err, domain.ErrForbidden) {
			t.Errorf("story lookups must never report Forbidden: %v", err)
		}
	}
}

func TestAssertChapterOwned(t *testing.T) {
	ctx := context.Background()

	t.Run("owned chapter", func(t *testing.T) {
		authz, _ := newTestAuthorizer()
		chapter, err := authz.AssertChapterOwned(ctx, "ch-1", "story-a", "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if chapter.Content != "Once" {
			t.Errorf("unexpected chapter %+v", chapter)
		}
	})

	t.Run("story check runs first", func(t *testing.T) {
		authz, chapters := newTestAuthorizer()
		_, err := authz.AssertChapterOwned(ctx, "ch-b", "story-b", "alice")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if chapters.lookups != 0 {
			t.Errorf("chapter lookup ran despite failed story check")
		}
	})

	t.Run("chapter from another story", func(t *testing.T) {
		authz, _ := newTestAuthorizer()
		_, err := authz.AssertChapterOwned(ctx, "ch-b", "story-a", "alice")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
