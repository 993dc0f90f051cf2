package models

import (
	"strings"
	"time"
)

// User is a participant in expenses. Authentication data lives with the
// identity collaborator, not here.
type User struct {
	// ID is the stable numeric identifier handed out by the store.
	ID int64

	// Name is the display name used in balance breakdowns.
	Name string

	// Email is unique and stored lower-cased.
	Email string

	// CreatedAt is when the user row was created.
	CreatedAt time.Time
}

// NewUser creates a User with normalized fields. The ID is assigned on insert.
func NewUser(name, email string) *User {
	return &User{
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: time.Now().UTC(),
	}
}
