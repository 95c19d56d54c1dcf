// Package storetest is a behavioural suite every storage backend must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanfic/internal/domain"
	models "fanfic/internal/domain/models/fanfic"
	"fanfic/internal/domain/repositories"
	fanficRepo "fanfic/internal/domain/repositories/fanfic"
)

// Store bundles the repositories of one backend.
type Store struct {
	Fandoms  fanficRepo.FandomRepository
	Stories  fanficRepo.StoryRepository
	Chapters fanficRepo.ChapterRepository
	Tx       repositories.TransactionManager
}

// Run exercises the repository contracts against a backend.
// makeStore must return a store with the schema applied.
func Run(t *testing.T, makeStore func(t *testing.T) *Store) {
	t.Helper()

	s := makeStore(t)

	t.Run("fandoms", func(t *testing.T) { testFandoms(t, s) })
	t.Run("system fandom upsert", func(t *testing.T) { testUpsertSystem(t, s) })
	t.Run("stories", func(t *testing.T) { testStories(t, s) })
	t.Run("chapters", func(t *testing.T) { testChapters(t, s) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, s) })
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func strPtr(s string) *string { return &s }

func newUser() string { return "user-" + uuid.NewString() }

func newFandom(owner *string, name string) *models.Fandom {
	ts := now()
	return &models.Fandom{
		ID:        uuid.NewString(),
		UserID:    owner,
		Name:      name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func newStory(userID string, fandomID *string, title string, ts time.Time) *models.Story {
	return &models.Story{
		ID:        uuid.NewString(),
		UserID:    userID,
		FandomID:  fandomID,
		Title:     title,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func newChapter(storyID string, order int, content string, ts time.Time) *models.Chapter {
	return &models.Chapter{
		ID:         uuid.NewString(),
		StoryID:    storyID,
		OrderIndex: order,
		Content:    content,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
}

func indexOf[T any](items []T, id func(T) string, want string) int {
	for i, item := range items {
		if id(item) == want {
			return i
		}
	}
	return -1
}

func fandomID(f models.Fandom) string   { return f.ID }
func storyID(s models.Story) string     { return s.ID }
func chapterID(c models.Chapter) string { return c.ID }

func testFandoms(t *testing.T, s *Store) {
	ctx := context.Background()
	alice, bob := newUser(), newUser()

	suffix := uuid.NewString()[:8]
	beta := newFandom(&alice, "Beta "+suffix)
	beta.CanonType = strPtr("books")
	beta.Description = strPtr("second")
	alpha := newFandom(&alice, "Alpha "+suffix)
	shared := newFandom(nil, "Shared "+suffix)
	private := newFandom(&bob, "Bob only "+suffix)

	for _, f := range []*models.Fandom{beta, alpha, shared, private} {
		require.NoError(t, s.Fandoms.Create(ctx, f))
	}

	got, err := s.Fandoms.GetByID(ctx, beta.ID)
	require.NoError(t, err)
	assert.Equal(t, beta.Name, got.Name)
	assert.Equal(t, "books", *got.CanonType)
	assert.True(t, got.IsOwnedBy(alice))
	assert.True(t, got.CreatedAt.Equal(beta.CreatedAt))

	_, err = s.Fandoms.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	visible, err := s.Fandoms.ListVisible(ctx, alice)
	require.NoError(t, err)
	assert.NotEqual(t, -1, indexOf(visible, fandomID, shared.ID), "ownerless fandom is visible")
	assert.Equal(t, -1, indexOf(visible, fandomID, private.ID), "other user's fandom is hidden")
	assert.Less(t, indexOf(visible, fandomID, alpha.ID), indexOf(visible, fandomID, beta.ID), "ordered by name")

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		later := now().Add(time.Second)
		updated, err := s.Fandoms.Update(ctx, beta.ID, &models.FandomPatch{
			Description: models.Null(),
		}, later)
		require.NoError(t, err)
		assert.Equal(t, beta.Name, updated.Name)
		assert.Equal(t, "books", *updated.CanonType)
		assert.Nil(t, updated.Description)
		assert.True(t, updated.UpdatedAt.Equal(later))
		assert.True(t, updated.CreatedAt.Equal(beta.CreatedAt))
	})

	t.Run("update missing fandom", func(t *testing.T) {
		name := "ghost"
		_, err := s.Fandoms.Update(ctx, uuid.NewString(), &models.FandomPatch{Name: &name}, now())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		err := s.Fandoms.Create(ctx, alpha)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func testUpsertSystem(t *testing.T, s *Store) {
	ctx := context.Background()
	f := newFandom(nil, "Catalog "+uuid.NewString()[:8])
	f.CanonType = strPtr("anime")

	require.NoError(t, s.Fandoms.UpsertSystem(ctx, f))

	f.Description = strPtr("refreshed")
	f.UpdatedAt = f.UpdatedAt.Add(time.Minute)
	require.NoError(t, s.Fandoms.UpsertSystem(ctx, f))

	got, err := s.Fandoms.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSystem)
	assert.Nil(t, got.UserID)
	assert.Equal(t, "refreshed", *got.Description)
	assert.True(t, got.UpdatedAt.Equal(f.UpdatedAt))
}

func testStories(t *testing.T, s *Store) {
	ctx := context.Background()
	alice, bob := newUser(), newUser()

	fandom := newFandom(&alice, "Story fandom "+uuid.NewString()[:8])
	require.NoError(t, s.Fandoms.Create(ctx, fandom))

	base := now()
	older := newStory(alice, nil, "Older", base)
	newer := newStory(alice, &fandom.ID, "Newer", base.Add(time.Minute))
	newer.Rating = strPtr("T")
	theirs := newStory(bob, nil, "Bob's", base)

	for _, st := range []*models.Story{older, newer, theirs} {
		require.NoError(t, s.Stories.Create(ctx, st))
	}

	got, err := s.Stories.GetOwned(ctx, newer.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, fandom.ID, *got.FandomID)
	assert.Equal(t, "T", *got.Rating)
	assert.Nil(t, got.Summary)

	_, err = s.Stories.GetOwned(ctx, theirs.ID, alice)
	assert.ErrorIs(t, err, domain.ErrNotFound, "another user's story looks missing")

	list, err := s.Stories.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID, "most recently updated first")
	assert.Equal(t, -1, indexOf(list, storyID, theirs.ID))

	empty, err := s.Stories.ListByUser(ctx, newUser())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	t.Run("create with unknown fandom", func(t *testing.T) {
		missing := uuid.NewString()
		err := s.Stories.Create(ctx, newStory(alice, &missing, "Orphan", now()))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update clears fandom and sets fields", func(t *testing.T) {
		title := "Renamed"
		later := base.Add(2 * time.Minute)
		updated, err := s.Stories.UpdateOwned(ctx, newer.ID, alice, &models.StoryPatch{
			FandomID: models.Null(),
			Title:    &title,
			Summary:  models.Set("A summary"),
		}, later)
		require.NoError(t, err)
		assert.Nil(t, updated.FandomID)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "A summary", *updated.Summary)
		assert.Equal(t, "T", *updated.Rating, "absent field untouched")
		assert.True(t, updated.UpdatedAt.Equal(later))
	})

	t.Run("update by non-owner", func(t *testing.T) {
		title := "Hijack"
		_, err := s.Stories.UpdateOwned(ctx, older.ID, bob, &models.StoryPatch{Title: &title}, now())
		assert.ErrorIs(t, err, domain.ErrNotFound)

		unchanged, err := s.Stories.GetOwned(ctx, older.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, "Older", unchanged.Title)
	})
}

func testChapters(t *testing.T, s *Store) {
	ctx := context.Background()
	alice := newUser()

	story := newStory(alice, nil, "Chaptered", now())
	other := newStory(alice, nil, "Other", now())
	require.NoError(t, s.Stories.Create(ctx, story))
	require.NoError(t, s.Stories.Create(ctx, other))

	base := now()
	third := newChapter(story.ID, 3, "three", base)
	firstA := newChapter(story.ID, 1, "one-a", base)
	firstB := newChapter(story.ID, 1, "one-b", base.Add(time.Second))
	firstB.Title = strPtr("Prologue")

	for _, c := range []*models.Chapter{third, firstB, firstA} {
		require.NoError(t, s.Chapters.Create(ctx, c))
	}

	list, err := s.Chapters.ListByStory(ctx, story.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{firstA.ID, firstB.ID, third.ID},
		[]string{list[0].ID, list[1].ID, list[2].ID}, "order index, then creation time")

	got, err := s.Chapters.GetInStory(ctx, firstB.ID, story.ID)
	require.NoError(t, err)
	assert.Equal(t, "Prologue", *got.Title)
	assert.Nil(t, got.Notes)

	_, err = s.Chapters.GetInStory(ctx, firstB.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "chapter is scoped to its story")

	t.Run("create under missing story", func(t *testing.T) {
		err := s.Chapters.Create(ctx, newChapter(uuid.NewString(), 1, "x", now()))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("partial update", func(t *testing.T) {
		order := 5
		updated, err := s.Chapters.UpdateInStory(ctx, firstB.ID, story.ID, &models.ChapterPatch{
			OrderIndex: &order,
			Title:      models.Null(),
			Notes:      models.Set("A/N"),
		}, now())
		require.NoError(t, err)
		assert.Equal(t, 5, updated.OrderIndex)
		assert.Nil(t, updated.Title)
		assert.Equal(t, "A/N", *updated.Notes)
		assert.Equal(t, "one-b", updated.Content)

		content := "moved"
		_, err = s.Chapters.UpdateInStory(ctx, firstB.ID, other.ID, &models.ChapterPatch{Content: &content}, now())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete twice", func(t *testing.T) {
		require.NoError(t, s.Chapters.Delete(ctx, third.ID))

		err := s.Chapters.Delete(ctx, third.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		remaining, err := s.Chapters.ListByStory(ctx, story.ID)
		require.NoError(t, err)
		assert.Equal(t, -1, indexOf(remaining, chapterID, third.ID))
		assert.Len(t, remaining, 2)
	})

	t.Run("empty story lists no chapters", func(t *testing.T) {
		chapters, err := s.Chapters.ListByStory(ctx, other.ID)
		require.NoError(t, err)
		assert.NotNil(t, chapters)
		assert.Empty(t, chapters)
	})
}

func testTransactions(t *testing.T, s *Store) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	rolledBack := newFandom(nil, "Rolled back "+uuid.NewString()[:8])
	err := s.Tx.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.Fandoms.Create(txCtx, rolledBack); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = s.Fandoms.GetByID(ctx, rolledBack.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	committed := newFandom(nil, "Committed "+uuid.NewString()[:8])
	err = s.Tx.ExecTx(ctx, func(txCtx context.Context) error {
		return s.Fandoms.UpsertSystem(txCtx, committed)
	})
	require.NoError(t, err)

	got, err := s.Fandoms.GetByID(ctx, committed.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSystem)
}
