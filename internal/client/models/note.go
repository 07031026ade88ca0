// Package models defines client-side data models used by the GophNotes CLI.
package models

import "time"

// Note mirrors the note document returned by the server API.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteChanges is a partial update. Nil fields are left as they are.
type NoteChanges struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}
