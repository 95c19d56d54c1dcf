package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"fanfic/internal/auth"
	"fanfic/internal/domain"
	"fanfic/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resourceType": conflictErr.ResourceType,
			"resourceId":   conflictErr.ResourceID,
		})
	default:
		slog.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// currentUserID resolves the caller or writes a 401.
// Returns false when the handler should stop.
func currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, err := auth.CurrentUser(r.Context())
	if err != nil {
		handleError(w, err)
		return "", false
	}
	return identity.UserID, true
}

func invalidBody(w http.ResponseWriter) {
	httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
}
