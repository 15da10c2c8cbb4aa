package models

import (
	"time"
)

// Session is an opaque bearer token row. The token itself is the
// credential; no signing or claims are involved.
type Session struct {
	Token     string    `json:"token" db:"token"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Identity is the resolved per-request authentication context: the
// session, its user, and the admin allow-list result. Resolved once by
// middleware and passed down; never re-derived per view.
type Identity struct {
	Session *Session
	User    *User
	IsAdmin bool
}

// CanModify reports whether the identity may mutate a row owned by
// ownerID. Ownership and the admin allow-list are the only two grants.
func (i *Identity) CanModify(ownerID string) bool {
	if i == nil || i.User == nil {
		return false
	}
	return i.IsAdmin || i.User.ID == ownerID
}

// AuthEventType classifies auth-state changes pushed to subscribers
type AuthEventType string

const (
	AuthEventSignedIn  AuthEventType = "SIGNED_IN"
	AuthEventSignedOut AuthEventType = "SIGNED_OUT"
	AuthEventConfirmed AuthEventType = "EMAIL_CONFIRMED"
)

// AuthEvent is a single auth-state change notification
type AuthEvent struct {
	Type   AuthEventType `json:"event"`
	UserID string        `json:"user_id"`
	Email  string        `json:"email,omitempty"`
	At     time.Time     `json:"at"`
}
