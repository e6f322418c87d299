package domain

import "time"

// User represents a registered account. The password hash never leaves the
// server: it is excluded from JSON marshalling and the transport layer builds
// its own payloads from the remaining fields.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
