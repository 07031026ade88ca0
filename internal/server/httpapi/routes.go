package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handler returns the complete HTTP handler: routes, gate, logging and
// panic recovery.
func (s *HTTPServer) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	router.HandleFunc("/signup", s.handleSignup).Methods(http.MethodPost)
	router.Handle("/login", s.limiter.Middleware(http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost)

	notes := router.PathPrefix("/notes").Subrouter()
	notes.Use(s.authGate)
	notes.HandleFunc("", s.handleListNotes).Methods(http.MethodGet)
	notes.HandleFunc("/createnote", s.handleCreateNote).Methods(http.MethodPost)
	notes.HandleFunc("/export", s.handleExportNotes).Methods(http.MethodPost)
	notes.HandleFunc("/updateNote/{id}", s.handleUpdateNote).Methods(http.MethodPut)
	notes.HandleFunc("/delete-note/{id}", s.handleDeleteNote).Methods(http.MethodDelete)
	notes.HandleFunc("/{id}", s.handleGetNote).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return s.requestLogger(s.recoverer(router))
}
