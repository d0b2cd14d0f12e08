package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Username and Email are stored trimmed and
// lower-cased; PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns a copy of u with the password hash cleared.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
