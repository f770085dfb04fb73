package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/identity"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/pkg/cryptox"
	"github.com/aussiebroadwan/partnerportal/pkg/idx"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("already_bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized_bootstrap")
	ErrBootstrapDisabled     = errors.New("bootstrap_disabled")
)

// BootstrapService creates the first admin without an invitation.
type BootstrapService struct {
	Store    store.Store
	Identity identity.Provider

	Token          string // pre-configured bootstrap token, empty disables bootstrap
	Policy         domain.PasswordPolicy
	PasswordMaxAge time.Duration
	Now            func() time.Time
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	n, err := s.Store.Admins().CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Bootstrap creates an active admin with the given password. It only works
// while there are no admins at all.
func (s *BootstrapService) Bootstrap(ctx context.Context, token, email, fullName, password string) (domain.AdminUser, error) {
	l := slogx.FromContext(ctx)

	if s.Token == "" {
		return domain.AdminUser{}, ErrBootstrapDisabled
	}
	if !cryptox.EqualSecret(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return domain.AdminUser{}, ErrBootstrapUnauthorized
	}
	if done, err := s.IsBootstrapped(ctx); err != nil {
		return domain.AdminUser{}, upstream("count admins", err)
	} else if done {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.AdminUser{}, ErrBootstrapAlready
	}

	email, err := checkEmail(email)
	if err != nil {
		return domain.AdminUser{}, err
	}
	name := strings.TrimSpace(fullName)
	if name == "" {
		return domain.AdminUser{}, invalid("invalid input", "full_name is required")
	}
	if err := checkPassword(s.Policy, password); err != nil {
		return domain.AdminUser{}, err
	}
	if err := emailTaken(ctx, s.Store, email); err != nil {
		return domain.AdminUser{}, err
	}

	user, err := s.Identity.CreateUser(ctx, email, password, true)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return domain.AdminUser{}, &ConflictError{Email: email}
		}
		return domain.AdminUser{}, upstream("create identity", err)
	}

	now := clock(s.Now)
	admin := domain.AdminUser{
		ID:                idx.NewAt(now).String(),
		UserID:            user.ID,
		Email:             email,
		FullName:          name,
		IsActive:          true,
		PasswordExpiresAt: passwordExpiry(now, s.PasswordMaxAge),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Admins().CountAdmins(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrBootstrapAlready
		}
		return tx.Admins().CreateAdmin(ctx, admin)
	})
	if err != nil {
		if derr := s.Identity.DeleteUser(ctx, user.ID); derr != nil {
			l.Error("failed to remove orphaned identity", slog.String("user_id", user.ID), slogx.Err(derr))
		}
		if errors.Is(err, ErrBootstrapAlready) {
			return domain.AdminUser{}, err
		}
		return domain.AdminUser{}, persistErr("create admin", email, err)
	}

	l.Info("successfully bootstrapped first admin", slog.String("admin_id", admin.ID))
	return admin, nil
}
