package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

const (
	msgUnauthorizedUser = "Unauthorized User"
	msgBadPayload       = "Invalid request payload"
	msgInternal         = "Internal server error"
	msgPanic            = "Something went wrong!"
	msgTooManyRequests  = "Too many request. Please try again later."
	msgNoNotes          = "No notes found for this user"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

// respondError writes {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps a service error kind to a status and fixed message.
// Unknown errors become 500 without detail.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorConflict):
		respondError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, common.ErrorInvalidCredentials):
		respondError(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, common.ErrorUnauthorized):
		respondError(w, http.StatusUnauthorized, "Unauthorized access")
	case errors.Is(err, common.ErrorNotFound):
		respondError(w, http.StatusNotFound, "Note doesn't exist")
	default:
		respondError(w, http.StatusInternalServerError, msgInternal)
	}
}
