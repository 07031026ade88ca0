package models

import "time"

// User is a registered identity. PasswordHash holds the bcrypt hash; the
// plaintext password never reaches this struct.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
