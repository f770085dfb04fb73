package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/pkg/cryptox"
	"github.com/aussiebroadwan/partnerportal/pkg/idx"
)

// Local keeps identities in the portal's own database with Argon2id hashes.
type Local struct {
	Store store.Store
	Now   func() time.Time
}

func NewLocal(st store.Store) *Local {
	return &Local{Store: st, Now: time.Now}
}

var _ Provider = (*Local)(nil)

func (l *Local) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Local) CreateUser(ctx context.Context, email, password string, emailConfirmed bool) (User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := l.now()
	rec := domain.Identity{
		ID:             idx.NewAt(now).String(),
		Email:          domain.NormalizeEmail(email),
		PasswordHash:   hash,
		EmailConfirmed: emailConfirmed,
		CreatedAt:      now,
	}
	if err := l.Store.Identities().CreateIdentity(ctx, rec); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return toUser(rec), nil
}

func (l *Local) GetUser(ctx context.Context, userID string) (User, error) {
	rec, err := l.Store.Identities().GetIdentityByID(ctx, userID)
	if err != nil {
		return User{}, mapErr(err)
	}
	return toUser(rec), nil
}

func (l *Local) UpdatePassword(ctx context.Context, userID, password string) error {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return mapErr(l.Store.Identities().UpdateIdentityPassword(ctx, userID, hash, l.now()))
}

func (l *Local) DeleteUser(ctx context.Context, userID string) error {
	return mapErr(l.Store.Identities().DeleteIdentity(ctx, userID))
}

// Authenticate checks email and password. Unknown emails and wrong passwords
// both return ErrInvalidCredentials.
func (l *Local) Authenticate(ctx context.Context, email, password string) (User, error) {
	rec, err := l.Store.Identities().GetIdentityByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := cryptox.VerifyPassword(password, rec.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("verify password: %w", err)
	}
	return toUser(rec), nil
}

func (l *Local) RevokeSessions(ctx context.Context, userID string) error {
	return mapErr(l.Store.Identities().RevokeIdentitySessions(ctx, userID, l.now()))
}

func mapErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func toUser(rec domain.Identity) User {
	return User{
		ID:                 rec.ID,
		Email:              rec.Email,
		EmailConfirmed:     rec.EmailConfirmed,
		SessionsValidAfter: rec.SessionsValidAfter,
		CreatedAt:          rec.CreatedAt,
	}
}
