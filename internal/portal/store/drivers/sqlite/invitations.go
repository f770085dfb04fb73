package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store/drivers/sqlite/gen"
)

type invitationsRepo struct {
	q *gen.Queries
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	err := r.q.CreateInvitation(ctx, gen.CreateInvitationParams{
		ID:          inv.ID,
		AccountKind: string(inv.Kind),
		AccountID:   inv.AccountID,
		TokenHash:   inv.TokenHash,
		ExpiresAt:   utc(inv.ExpiresAt),
		CreatedAt:   utc(inv.CreatedAt),
	})
	return mapWriteErr(err)
}

func (r *invitationsRepo) GetUnusedInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row, err := r.q.GetUnusedInvitationByTokenHash(ctx, hash)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) ClaimInvitation(ctx context.Context, id string, now time.Time) (bool, error) {
	n, err := r.q.ClaimInvitation(ctx, gen.ClaimInvitationParams{Now: utc(now), ID: id})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *invitationsRepo) ReleaseInvitation(ctx context.Context, id string) error {
	return affected(r.q.ReleaseInvitation(ctx, id))
}

func (r *invitationsRepo) InvalidateAccountInvitations(
	ctx context.Context,
	kind domain.AccountKind,
	accountID string,
	now time.Time,
) (int64, error) {
	return r.q.InvalidateAccountInvitations(ctx, gen.InvalidateAccountInvitationsParams{
		Now:         utc(now),
		AccountKind: string(kind),
		AccountID:   accountID,
	})
}

func (r *invitationsRepo) GetActiveInvitationForAccount(
	ctx context.Context,
	kind domain.AccountKind,
	accountID string,
	now time.Time,
) (domain.Invitation, error) {
	row, err := r.q.GetActiveInvitationForAccount(ctx, gen.GetActiveInvitationForAccountParams{
		AccountKind: string(kind),
		AccountID:   accountID,
		Now:         utc(now),
	})
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}
