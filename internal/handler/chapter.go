package handler

import (
	"log/slog"
	"net/http"

	fanficSvc "fanfic/internal/domain/services/fanfic"
	"fanfic/internal/httputil"
)

// ChapterHandler handles chapter HTTP requests.
// Every route is nested under the owning story.
type ChapterHandler struct {
	service fanficSvc.ChapterService
	logger  *slog.Logger
}

// NewChapterHandler creates a new chapter handler
func NewChapterHandler(service fanficSvc.ChapterService, logger *slog.Logger) *ChapterHandler {
	return &ChapterHandler{
		service: service,
		logger:  logger,
	}
}

// ListChapters returns a story's chapters in reading order
// GET /api/stories/{storyId}/chapters
func (h *ChapterHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListChapters(r.Context(), r.PathValue("storyId"), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, result)
}

// CreateChapter appends a chapter to a story
// POST /api/stories/{storyId}/chapters
func (h *ChapterHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req fanficSvc.CreateChapterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		invalidBody(w)
		return
	}
	req.UserID = userID
	req.StoryID = r.PathValue("storyId")

	chapter, err := h.service.CreateChapter(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusCreated, map[string]interface{}{"chapter": chapter})
}

// UpdateChapter applies a partial update
// PATCH /api/stories/{storyId}/chapters/{id}
func (h *ChapterHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body updateChapterBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		invalidBody(w)
		return
	}
	patch, err := body.toPatch()
	if err != nil {
		handleError(w, err)
		return
	}

	chapter, err := h.service.UpdateChapter(r.Context(), r.PathValue("id"), r.PathValue("storyId"), userID,
		&fanficSvc.UpdateChapterRequest{Patch: patch})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, map[string]interface{}{"chapter": chapter})
}

// DeleteChapter removes a chapter
// DELETE /api/stories/{storyId}/chapters/{id}
func (h *ChapterHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteChapter(r.Context(), r.PathValue("id"), r.PathValue("storyId"), userID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, nil)
}
