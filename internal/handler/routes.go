package handler

import "net/http"

// Handlers groups every route handler the server mounts.
type Handlers struct {
	Health   *HealthHandler
	Fandoms  *FandomHandler
	Stories  *StoryHandler
	Chapters *ChapterHandler
}

// Register mounts the routes on mux (Go 1.22+ enhanced patterns).
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health.HealthCheck)

	// Fandom routes
	mux.HandleFunc("GET /api/fandoms", h.Fandoms.ListFandoms)
	mux.HandleFunc("POST /api/fandoms", h.Fandoms.CreateFandom)
	mux.HandleFunc("PATCH /api/fandoms/{id}", h.Fandoms.UpdateFandom)

	// Story routes
	mux.HandleFunc("GET /api/stories", h.Stories.ListStories)
	mux.HandleFunc("POST /api/stories", h.Stories.CreateStory)
	mux.HandleFunc("PATCH /api/stories/{id}", h.Stories.UpdateStory)

	// Chapter routes
	mux.HandleFunc("GET /api/stories/{storyId}/chapters", h.Chapters.ListChapters)
	mux.HandleFunc("POST /api/stories/{storyId}/chapters", h.Chapters.CreateChapter)
	mux.HandleFunc("PATCH /api/stories/{storyId}/chapters/{id}", h.Chapters.UpdateChapter)
	mux.HandleFunc("DELETE /api/stories/{storyId}/chapters/{id}", h.Chapters.DeleteChapter)
}
