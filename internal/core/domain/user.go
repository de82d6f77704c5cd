package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a shop account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	AgeVerified  bool      `json:"age_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser builds an account; the display name defaults to the local part of
// the email address.
func NewUser(email, passwordHash string, now time.Time) *User {
	email = NormalizeEmail(email)
	return &User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayNameFor(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}
}

// NormalizeEmail trims and lower-cases an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func displayNameFor(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
