package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/identity"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
)

// AdminService is the back office view of admin accounts.
type AdminService struct {
	Store    store.Store
	Identity identity.Provider

	Policy         domain.PasswordPolicy
	PasswordMaxAge time.Duration
	Now            func() time.Time
}

// InvitationStatus describes the admin's outstanding setup token, if any.
type InvitationStatus struct {
	Pending   bool
	CreatedAt *time.Time
	ExpiresAt *time.Time
}

func (s *AdminService) List(ctx context.Context) ([]domain.AdminUser, error) {
	return s.Store.Admins().ListAdmins(ctx)
}

func (s *AdminService) Get(ctx context.Context, adminID string) (domain.AdminUser, error) {
	a, err := s.Store.Admins().GetAdminByID(ctx, adminID)
	if err != nil {
		return domain.AdminUser{}, notFound(err)
	}
	return a, nil
}

// SetActive toggles another admin's access. Deactivation revokes their
// sessions.
func (s *AdminService) SetActive(ctx context.Context, actorID, adminID string, active bool) (domain.AdminUser, error) {
	if actorID == adminID {
		return domain.AdminUser{}, ErrSelfAction
	}
	a, err := s.Get(ctx, adminID)
	if err != nil {
		return domain.AdminUser{}, err
	}
	if err := s.Store.Admins().SetAdminActive(ctx, adminID, active, clock(s.Now)); err != nil {
		return domain.AdminUser{}, notFound(err)
	}
	if !active {
		if err := s.Identity.RevokeSessions(ctx, a.UserID); err != nil {
			slogx.FromContext(ctx).Error("failed to revoke admin sessions", slog.String("admin_id", a.ID), slogx.Err(err))
		}
	}
	slogx.FromContext(ctx).Info("admin active flag changed",
		slog.String("admin_id", a.ID),
		slog.String("actor_id", actorID),
		slog.Bool("active", active),
	)

	a.IsActive = active
	return a, nil
}

// Delete removes another admin's profile and then its identity.
func (s *AdminService) Delete(ctx context.Context, actorID, adminID string) error {
	if actorID == adminID {
		return ErrSelfAction
	}
	a, err := s.Get(ctx, adminID)
	if err != nil {
		return err
	}
	if err := s.Store.Admins().DeleteAdmin(ctx, adminID); err != nil {
		return notFound(err)
	}
	if err := s.Identity.DeleteUser(ctx, a.UserID); err != nil && !errors.Is(err, identity.ErrNotFound) {
		return upstream("delete identity", err)
	}
	slogx.FromContext(ctx).Info("admin deleted", slog.String("admin_id", a.ID), slog.String("actor_id", actorID))
	return nil
}

// ChangePassword rotates the admin's own password. It clears forced
// rotation and starts a new expiry window.
func (s *AdminService) ChangePassword(ctx context.Context, adminID, current, next string) error {
	if current == next {
		return invalid("invalid password", "new password must differ from the current one")
	}
	if err := checkPassword(s.Policy, next); err != nil {
		return err
	}

	a, err := s.Get(ctx, adminID)
	if err != nil {
		return err
	}
	if _, err := s.Identity.Authenticate(ctx, a.Email, current); err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return ErrInvalidCredentials
		}
		return upstream("authenticate", err)
	}
	if err := s.Identity.UpdatePassword(ctx, a.UserID, next); err != nil {
		return upstream("update password", err)
	}

	now := clock(s.Now)
	if err := s.Store.Admins().SetAdminPasswordChanged(ctx, a.ID, passwordExpiry(now, s.PasswordMaxAge), now); err != nil {
		return upstream("record password change", err)
	}
	slogx.FromContext(ctx).Info("admin password changed", slog.String("admin_id", a.ID))
	return nil
}

// GetInvitationStatus reports the admin's active setup token.
func (s *AdminService) GetInvitationStatus(ctx context.Context, adminID string) (InvitationStatus, error) {
	if _, err := s.Get(ctx, adminID); err != nil {
		return InvitationStatus{}, err
	}
	inv, err := s.Store.Invitations().GetActiveInvitationForAccount(ctx, domain.KindAdmin, adminID, clock(s.Now))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InvitationStatus{}, nil
		}
		return InvitationStatus{}, upstream("load invitation", err)
	}
	return InvitationStatus{Pending: true, CreatedAt: &inv.CreatedAt, ExpiresAt: &inv.ExpiresAt}, nil
}

func passwordExpiry(now time.Time, maxAge time.Duration) *time.Time {
	if maxAge <= 0 {
		return nil
	}
	t := now.Add(maxAge)
	return &t
}
