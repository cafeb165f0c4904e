package types

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNoSession is returned when an operation runs without an authenticated user.
var ErrNoSession = errors.New("no authenticated session")

// Session identifies the authenticated user of a request. Every data access
// is scoped to Session.UserID.
type Session struct {
	UserID uuid.UUID
	Email  string
	// Token is the raw bearer token, kept for calls made on the user's behalf.
	Token string
}

// Valid reports whether the session carries a user.
func (s *Session) Valid() bool {
	return s != nil && s.UserID != uuid.Nil
}

// SessionFromClaims builds a session from validated token claims.
func SessionFromClaims(claims *TokenClaims, token string) *Session {
	return &Session{UserID: claims.UserID, Email: claims.Email, Token: token}
}
