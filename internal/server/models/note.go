// Package models defines server-side data models persisted in the database.
package models

import "time"

// Note is a user's text note. UserID is set once at creation and never
// changes; only Title and Body are mutable.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteUpdate carries the mutable note fields. A nil field is left unchanged.
type NoteUpdate struct {
	Title *string
	Body  *string
}

// Empty reports whether the update changes nothing.
func (u NoteUpdate) Empty() bool {
	return u.Title == nil && u.Body == nil
}
