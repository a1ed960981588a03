package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ronin-designs/studiokeeper/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto a status code and a safe message.
// Validation errors carry their reason to the client; everything else is
// reduced to the sentinel's own text so storage details never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrAlreadyExists):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.ErrAlreadyExists.Error()})
	case errors.Is(err, common.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: common.ErrInvalidCredentials.Error()})
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: common.ErrUnauthorized.Error()})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: common.ErrNotFound.Error()})
	case errors.Is(err, common.ErrStorageUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: common.ErrStorageUnavailable.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: common.ErrInternal.Error()})
	}
}
