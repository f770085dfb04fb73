package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store/drivers/sqlite/gen"
)

type adminsRepo struct {
	q *gen.Queries
}

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.AdminUser) error {
	now := a.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	err := r.q.CreateAdmin(ctx, gen.CreateAdminParams{
		ID:                 a.ID,
		UserID:             a.UserID,
		Email:              a.Email,
		FullName:           a.FullName,
		IsActive:           a.IsActive,
		MustChangePassword: a.MustChangePassword,
		PasswordExpiresAt:  mapOptionalTime(a.PasswordExpiresAt),
		Now:                utc(now),
	})
	return mapWriteErr(err)
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id string) (domain.AdminUser, error) {
	row, err := r.q.GetAdminByID(ctx, id)
	if err != nil {
		return domain.AdminUser{}, mapNotFound(err)
	}
	return mapAdmin(row), nil
}

func (r *adminsRepo) GetAdminByUserID(ctx context.Context, userID string) (domain.AdminUser, error) {
	row, err := r.q.GetAdminByUserID(ctx, userID)
	if err != nil {
		return domain.AdminUser{}, mapNotFound(err)
	}
	return mapAdmin(row), nil
}

func (r *adminsRepo) ListAdmins(ctx context.Context) ([]domain.AdminUser, error) {
	rows, err := r.q.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AdminUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAdmin(row))
	}
	return out, nil
}

func (r *adminsRepo) CountAdmins(ctx context.Context) (int64, error) {
	return r.q.CountAdmins(ctx)
}

func (r *adminsRepo) SetAdminActive(ctx context.Context, id string, active bool, now time.Time) error {
	return affected(r.q.SetAdminActive(ctx, gen.SetAdminActiveParams{
		IsActive: active,
		Now:      utc(now),
		ID:       id,
	}))
}

func (r *adminsRepo) SetAdminPasswordChanged(ctx context.Context, id string, expiresAt *time.Time, now time.Time) error {
	return affected(r.q.SetAdminPasswordChanged(ctx, gen.SetAdminPasswordChangedParams{
		PasswordExpiresAt: mapOptionalTime(expiresAt),
		Now:               utc(now),
		ID:                id,
	}))
}

func (r *adminsRepo) FlagExpiredAdminPasswords(ctx context.Context, now time.Time) (int64, error) {
	return r.q.FlagExpiredAdminPasswords(ctx, utc(now))
}

func (r *adminsRepo) UpdateAdminMFASecret(ctx context.Context, id, secret string, now time.Time) error {
	return affected(r.q.UpdateAdminMFASecret(ctx, gen.UpdateAdminMFASecretParams{
		MfaSecret: mapStringNull(secret),
		Now:       utc(now),
		ID:        id,
	}))
}

func (r *adminsRepo) EnableAdminMFA(ctx context.Context, id string, now time.Time) error {
	return affected(r.q.EnableAdminMFA(ctx, gen.EnableAdminMFAParams{
		Now: utc(now),
		ID:  id,
	}))
}

func (r *adminsRepo) DisableAdminMFA(ctx context.Context, id string, now time.Time) error {
	return affected(r.q.DisableAdminMFA(ctx, gen.DisableAdminMFAParams{
		Now: utc(now),
		ID:  id,
	}))
}

func (r *adminsRepo) DeleteAdmin(ctx context.Context, id string) error {
	return affected(r.q.DeleteAdmin(ctx, id))
}
