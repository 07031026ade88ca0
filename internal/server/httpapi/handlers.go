package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// decodeAndValidate reads a JSON body into dst and runs its validation
// rules, writing the 400 response itself when either step fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst validation.Validatable) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, msgBadPayload)
		return false
	}
	if err := dst.Validate(); err != nil {
		if fields, ok := fieldErrors(err); ok {
			respondJSON(w, http.StatusBadRequest, map[string]any{"error": fields})
			return false
		}
		respondError(w, http.StatusBadRequest, msgBadPayload)
		return false
	}
	return true
}

// userID returns the identity attached by authGate.
func userID(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

func (s *HTTPServer) handlePing(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := s.users.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *HTTPServer) handleListNotes(w http.ResponseWriter, r *http.Request) {
	items, err := s.notes.List(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if len(items) == 0 {
		respondError(w, http.StatusNotFound, msgNoNotes)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.notes.Get(r.Context(), userID(r), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": note})
}

func (s *HTTPServer) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	note, err := s.notes.Create(r.Context(), userID(r), req.Title, req.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"data": note, "message": "Note created successfully"})
}

func (s *HTTPServer) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	upd := models.NoteUpdate{Title: nonEmpty(req.Title), Body: nonEmpty(req.Body)}
	note, err := s.notes.Update(r.Context(), userID(r), mux.Vars(r)["id"], upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": note, "message": "Note updated successfully"})
}

func (s *HTTPServer) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.notes.Delete(r.Context(), userID(r), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}

func (s *HTTPServer) handleExportNotes(w http.ResponseWriter, r *http.Request) {
	url, err := s.exports.Export(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
