package handler

import (
	"log/slog"
	"net/http"

	fanficSvc "fanfic/internal/domain/services/fanfic"
	"fanfic/internal/httputil"
)

// StoryHandler handles story HTTP requests
type StoryHandler struct {
	service fanficSvc.StoryService
	logger  *slog.Logger
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(service fanficSvc.StoryService, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{
		service: service,
		logger:  logger,
	}
}

// ListStories returns the caller's stories
// GET /api/stories
func (h *StoryHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListStories(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, result)
}

// CreateStory creates a story
// POST /api/stories
func (h *StoryHandler) CreateStory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req fanficSvc.CreateStoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		invalidBody(w)
		return
	}
	req.UserID = userID

	story, err := h.service.CreateStory(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusCreated, map[string]interface{}{"story": story})
}

// UpdateStory applies a partial update
// PATCH /api/stories/{id}
func (h *StoryHandler) UpdateStory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body updateStoryBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		invalidBody(w)
		return
	}
	patch, err := body.toPatch()
	if err != nil {
		handleError(w, err)
		return
	}

	story, err := h.service.UpdateStory(r.Context(), r.PathValue("id"), userID, &fanficSvc.UpdateStoryRequest{Patch: patch})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, map[string]interface{}{"story": story})
}
