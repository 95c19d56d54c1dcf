package handler

import (
	"log/slog"
	"net/http"

	fanficSvc "fanfic/internal/domain/services/fanfic"
	"fanfic/internal/httputil"
)

// FandomHandler handles fandom HTTP requests
type FandomHandler struct {
	service fanficSvc.FandomService
	logger  *slog.Logger
}

// NewFandomHandler creates a new fandom handler
func NewFandomHandler(service fanficSvc.FandomService, logger *slog.Logger) *FandomHandler {
	return &FandomHandler{
		service: service,
		logger:  logger,
	}
}

// ListFandoms returns the fandoms visible to the caller
// GET /api/fandoms
func (h *FandomHandler) ListFandoms(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListFandoms(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, result)
}

// CreateFandom creates a private fandom
// POST /api/fandoms
func (h *FandomHandler) CreateFandom(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req fanficSvc.CreateFandomRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		invalidBody(w)
		return
	}
	req.UserID = userID

	fandom, err := h.service.CreateFandom(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusCreated, map[string]interface{}{"fandom": fandom})
}

// UpdateFandom applies a partial update
// PATCH /api/fandoms/{id}
func (h *FandomHandler) UpdateFandom(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var body updateFandomBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		invalidBody(w)
		return
	}
	patch, err := body.toPatch()
	if err != nil {
		handleError(w, err)
		return
	}

	fandom, err := h.service.UpdateFandom(r.Context(), r.PathValue("id"), userID, &fanficSvc.UpdateFandomRequest{Patch: patch})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, map[string]interface{}{"fandom": fandom})
}
