package fanfic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanfic/internal/domain"
	models "fanfic/internal/domain/models/fanfic"
	fanficSvc "fanfic/internal/domain/services/fanfic"
)

func seedFandoms(env *testEnv) {
	env.store.fandoms["sys"] = models.Fandom{ID: "sys", Name: "Naruto", IsSystem: true}
	env.store.fandoms["mine"] = models.Fandom{ID: "mine", Name: "Alice AU", UserID: strPtr("alice")}
	env.store.fandoms["theirs"] = models.Fandom{ID: "theirs", Name: "Bob AU", UserID: strPtr("bob")}
}

func TestCreateStory(t *testing.T) {
	tests := []struct {
		name     string
		fandomID *string
		wantErr  error
	}{
		{"no fandom", nil, nil},
		{"system fandom", strPtr("sys"), nil},
		{"own fandom", strPtr("mine"), nil},
		{"another user's fandom", strPtr("theirs"), domain.ErrForbidden},
		{"missing fandom", strPtr("ghost"), domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			seedFandoms(env)

			story, err := env.stories.CreateStory(context.Background(), &fanficSvc.CreateStoryRequest{
				UserID:   "alice",
				FandomID: tt.fandomID,
				Title:    "New Beginnings",
				Rating:   strPtr("T"),
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, env.store.stories, "no insert on failure")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "alice", story.UserID)
			assert.Equal(t, tt.fandomID, story.FandomID)
			assert.Equal(t, "T", *story.Rating)
			assert.Nil(t, story.Summary)
			assert.Contains(t, env.store.stories, story.ID)
		})
	}
}

func TestCreateStory_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  fanficSvc.CreateStoryRequest
	}{
		{"missing title", fanficSvc.CreateStoryRequest{UserID: "alice"}},
		{"blank title", fanficSvc.CreateStoryRequest{UserID: "alice", Title: "\t"}},
		{"empty fandom id", fanficSvc.CreateStoryRequest{UserID: "alice", Title: "T", FandomID: strPtr("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			req := tt.req
			_, err := env.stories.CreateStory(context.Background(), &req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, env.store.calls)
		})
	}
}

func TestListStories_OnlyOwn(t *testing.T) {
	env := newTestEnv()
	env.store.stories["a1"] = models.Story{ID: "a1", UserID: "alice", Title: "One", UpdatedAt: past}
	env.store.stories["a2"] = models.Story{ID: "a2", UserID: "alice", Title: "Two", UpdatedAt: past.AddDate(0, 0, 1)}
	env.store.stories["b1"] = models.Story{ID: "b1", UserID: "bob", Title: "Bob's"}

	result, err := env.stories.ListStories(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	assert.Equal(t, "a2", result.Items[0].ID)
	assert.Equal(t, "a1", result.Items[1].ID)
}

func TestUpdateStory(t *testing.T) {
	seed := func(env *testEnv) {
		seedFandoms(env)
		env.store.stories["s1"] = models.Story{
			ID: "s1", UserID: "alice", FandomID: strPtr("mine"), Title: "Original",
			Summary: strPtr("sum"), Rating: strPtr("T"), Pairing: strPtr("A/B"),
			Tags: strPtr(`["fluff"]`), Status: strPtr("ongoing"), Language: strPtr("en"),
			CreatedAt: past, UpdatedAt: past,
		}
	}

	t.Run("title only preserves everything else", func(t *testing.T) {
		env := newTestEnv()
		seed(env)
		before := env.store.stories["s1"]

		updated, err := env.stories.UpdateStory(context.Background(), "s1", "alice", &fanficSvc.UpdateStoryRequest{
			Patch: models.StoryPatch{Title: strPtr("Renamed")},
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, before.FandomID, updated.FandomID)
		assert.Equal(t, before.Summary, updated.Summary)
		assert.Equal(t, before.Rating, updated.Rating)
		assert.Equal(t, before.Pairing, updated.Pairing)
		assert.Equal(t, before.Tags, updated.Tags)
		assert.Equal(t, before.Status, updated.Status)
		assert.Equal(t, before.Language, updated.Language)
		assert.Equal(t, before.CreatedAt, updated.CreatedAt)
		assert.True(t, updated.UpdatedAt.After(before.UpdatedAt))
	})

	t.Run("null fandom clears without accessibility check", func(t *testing.T) {
		env := newTestEnv()
		seed(env)
		delete(env.store.fandoms, "mine")

		updated, err := env.stories.UpdateStory(context.Background(), "s1", "alice", &fanficSvc.UpdateStoryRequest{
			Patch: models.StoryPatch{FandomID: models.Null()},
		})
		require.NoError(t, err)
		assert.Nil(t, updated.FandomID)
	})

	t.Run("new fandom must be accessible", func(t *testing.T) {
		env := newTestEnv()
		seed(env)

		_, err := env.stories.UpdateStory(context.Background(), "s1", "alice", &fanficSvc.UpdateStoryRequest{
			Patch: models.StoryPatch{FandomID: models.Set("theirs")},
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, "mine", *env.store.stories["s1"].FandomID)
	})

	t.Run("switch to system fandom", func(t *testing.T) {
		env := newTestEnv()
		seed(env)

		updated, err := env.stories.UpdateStory(context.Background(), "s1", "alice", &fanficSvc.UpdateStoryRequest{
			Patch: models.StoryPatch{FandomID: models.Set("sys"), Summary: models.Null()},
		})
		require.NoError(t, err)
		assert.Equal(t, "sys", *updated.FandomID)
		assert.Nil(t, updated.Summary)
	})

	t.Run("non-owner sees not found", func(t *testing.T) {
		env := newTestEnv()
		seed(env)

		_, err := env.stories.UpdateStory(context.Background(), "s1", "bob", &fanficSvc.UpdateStoryRequest{
			Patch: models.StoryPatch{Title: strPtr("Hijack")},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, "Original", env.store.stories["s1"].Title)
	})

	t.Run("empty patch fails before store access", func(t *testing.T) {
		env := newTestEnv()
		seed(env)

		_, err := env.stories.UpdateStory(context.Background(), "s1", "alice", &fanficSvc.UpdateStoryRequest{})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, env.store.calls)
	})
}
