// Package identity holds the credential side of an account: email, password
// hash and the session revocation watermark. Portal profiles reference an
// identity by id and never see the hash.
package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("identity: not found")
	ErrEmailExists        = errors.New("identity: email already registered")
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
)

// User is the provider's view of an identity.
type User struct {
	ID                 string
	Email              string
	EmailConfirmed     bool
	SessionsValidAfter *time.Time
	CreatedAt          time.Time
}

// SessionValid reports whether a session issued at issuedAt survives the
// last revocation. Tokens carry second precision, so the watermark is
// compared at the same precision.
func (u User) SessionValid(issuedAt time.Time) bool {
	if u.SessionsValidAfter == nil {
		return true
	}
	return !issuedAt.Before(u.SessionsValidAfter.Truncate(time.Second))
}

// Provider is the authentication backend the portal delegates to.
type Provider interface {
	CreateUser(ctx context.Context, email, password string, emailConfirmed bool) (User, error)
	GetUser(ctx context.Context, userID string) (User, error)
	UpdatePassword(ctx context.Context, userID, password string) error
	DeleteUser(ctx context.Context, userID string) error
	Authenticate(ctx context.Context, email, password string) (User, error)

	// RevokeSessions invalidates every session issued before now.
	RevokeSessions(ctx context.Context, userID string) error
}
