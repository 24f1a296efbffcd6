package core

import "time"

// Identity is the externally asserted caller claim carried inside a session credential
type Identity struct {
	Email string `json:"email"`
}

// Session represents an issued session credential
type Session struct {
	ID        string    // Unique token identifier
	Email     string    // Email claim of the caller
	IssuedAt  time.Time // When the session was created
	ExpiresAt time.Time // When the credential stops being accepted
}

// Identity returns the claim the session was issued for
func (s *Session) Identity() Identity {
	return Identity{Email: s.Email}
}

// Authorize compares the verified identity against the owner a request claims to act for.
func Authorize(identity Identity, claimedOwner string) error {
	if identity.Email != claimedOwner {
		return ErrForbidden
	}
	return nil
}
