package models

import (
	"time"
)

// User is a registered account. The password hash is never serialized;
// OAuth accounts carry an empty hash and a non-email provider.
type User struct {
	ID               string     `json:"id" db:"id"`
	Email            string     `json:"email" db:"email"`
	PasswordHash     string     `json:"-" db:"password_hash"`
	Provider         string     `json:"provider" db:"provider"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty" db:"email_confirmed_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// ProviderEmail is the provider value for password accounts
const ProviderEmail = "email"

// ProviderGoogle is the provider value for Google OAuth accounts
const ProviderGoogle = "google"

// Confirmed reports whether the user's email address has been verified
func (u *User) Confirmed() bool {
	return u.EmailConfirmedAt != nil
}

// UserCheck is the response of the duplicate-email pre-check
type UserCheck struct {
	Exists   bool   `json:"exists"`
	Provider string `json:"provider,omitempty"`
}
