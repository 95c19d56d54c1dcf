package fanfic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"fanfic/internal/domain"
	models "fanfic/internal/domain/models/fanfic"
	"fanfic/internal/service/auth"
)

// memStore is an in-memory backend for service tests.
// calls counts every repository method invocation.
type memStore struct {
	fandoms  map[string]models.Fandom
	stories  map[string]models.Story
	chapters map[string]models.Chapter
	calls    int
}

func newMemStore() *memStore {
	return &memStore{
		fandoms:  map[string]models.Fandom{},
		stories:  map[string]models.Story{},
		chapters: map[string]models.Chapter{},
	}
}

type memFandoms struct{ s *memStore }
type memStories struct{ s *memStore }
type memChapters struct{ s *memStore }

func (r memFandoms) Create(_ context.Context, f *models.Fandom) error {
	r.s.calls++
	r.s.fandoms[f.ID] = *f
	return nil
}

func (r memFandoms) GetByID(_ context.Context, id string) (*models.Fandom, error) {
	r.s.calls++
	f, ok := r.s.fandoms[id]
	if !ok {
		return nil, fmt.Errorf("fandom %s: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (r memFandoms) ListVisible(_ context.Context, userID string) ([]models.Fandom, error) {
	r.s.calls++
	var out []models.Fandom
	for _, f := range r.s.fandoms {
		if f.UserID == nil || *f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memFandoms) Update(_ context.Context, id string, p *models.FandomPatch, updatedAt time.Time) (*models.Fandom, error) {
	r.s.calls++
	f, ok := r.s.fandoms[id]
	if !ok {
		return nil, fmt.Errorf("fandom %s: %w", id, domain.ErrNotFound)
	}
	if p.Name != nil {
		f.Name = *p.Name
	}
	p.CanonType.Apply(&f.CanonType)
	p.Description.Apply(&f.Description)
	f.UpdatedAt = updatedAt
	r.s.fandoms[id] = f
	return &f, nil
}

func (r memFandoms) UpsertSystem(_ context.Context, f *models.Fandom) error {
	r.s.calls++
	sys := *f
	sys.UserID = nil
	sys.IsSystem = true
	r.s.fandoms[f.ID] = sys
	return nil
}

func (r memStories) Create(_ context.Context, st *models.Story) error {
	r.s.calls++
	r.s.stories[st.ID] = *st
	return nil
}

func (r memStories) GetOwned(_ context.Context, id, userID string) (*models.Story, error) {
	r.s.calls++
	st, ok := r.s.stories[id]
	if !ok || st.UserID != userID {
		return nil, fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}
	return &st, nil
}

func (r memStories) ListByUser(_ context.Context, userID string) ([]models.Story, error) {
	r.s.calls++
	var out []models.Story
	for _, st := range r.s.stories {
		if st.UserID == userID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r memStories) UpdateOwned(_ context.Context, id, userID string, p *models.StoryPatch, updatedAt time.Time) (*models.Story, error) {
	r.s.calls++
	st, ok := r.s.stories[id]
	if !ok || st.UserID != userID {
		return nil, fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}
	p.FandomID.Apply(&st.FandomID)
	if p.Title != nil {
		st.Title = *p.Title
	}
	p.Summary.Apply(&st.Summary)
	p.Rating.Apply(&st.Rating)
	p.Pairing.Apply(&st.Pairing)
	p.Tags.Apply(&st.Tags)
	p.Status.Apply(&st.Status)
	p.Language.Apply(&st.Language)
	st.UpdatedAt = updatedAt
	r.s.stories[id] = st
	return &st, nil
}

func (r memChapters) Create(_ context.Context, c *models.Chapter) error {
	r.s.calls++
	r.s.chapters[c.ID] = *c
	return nil
}

func (r memChapters) GetInStory(_ context.Context, id, storyID string) (*models.Chapter, error) {
	r.s.calls++
	c, ok := r.s.chapters[id]
	if !ok || c.StoryID != storyID {
		return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (r memChapters) ListByStory(_ context.Context, storyID string) ([]models.Chapter, error) {
	r.s.calls++
	var out []models.Chapter
	for _, c := range r.s.chapters {
		if c.StoryID == storyID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r memChapters) UpdateInStory(_ context.Context, id, storyID string, p *models.ChapterPatch, updatedAt time.Time) (*models.Chapter, error) {
	r.s.calls++
	c, ok := r.s.chapters[id]
	if !ok || c.StoryID != storyID {
		return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	if p.OrderIndex != nil {
		c.OrderIndex = *p.OrderIndex
	}
	p.Title.Apply(&c.Title)
	p.Notes.Apply(&c.Notes)
	if p.Content != nil {
		c.Content = *p.Content
	}
	c.UpdatedAt = updatedAt
	r.s.chapters[id] = c
	return &c, nil
}

func (r memChapters) Delete(_ context.Context, id string) error {
	r.s.calls++
	if _, ok := r.s.chapters[id]; !ok {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.chapters, id)
	return nil
}

// testEnv wires the three services over one memStore.
type testEnv struct {
	store    *memStore
	fandoms  *fandomService
	stories  *storyService
	chapters *chapterService
}

func newTestEnv() *testEnv {
	store := newMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authz := auth.NewOwnerBasedAuthorizer(memFandoms{store}, memStories{store}, memChapters{store})

	return &testEnv{
		store:    store,
		fandoms:  NewFandomService(memFandoms{store}, authz, logger).(*fandomService),
		stories:  NewStoryService(memStories{store}, authz, logger).(*storyService),
		chapters: NewChapterService(memChapters{store}, authz, logger).(*chapterService),
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

var past = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
