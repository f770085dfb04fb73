package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store/drivers/sqlite/gen"
)

type identitiesRepo struct {
	q *gen.Queries
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, id domain.Identity) error {
	now := id.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	err := r.q.CreateIdentity(ctx, gen.CreateIdentityParams{
		ID:             id.ID,
		Email:          id.Email,
		PasswordHash:   id.PasswordHash,
		EmailConfirmed: id.EmailConfirmed,
		Now:            utc(now),
	})
	return mapWriteErr(err)
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	row, err := r.q.GetIdentityByID(ctx, id)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	row, err := r.q.GetIdentityByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return mapIdentity(row), nil
}

func (r *identitiesRepo) UpdateIdentityPassword(ctx context.Context, id, hash string, now time.Time) error {
	return affected(r.q.UpdateIdentityPassword(ctx, gen.UpdateIdentityPasswordParams{
		PasswordHash: hash,
		Now:          utc(now),
		ID:           id,
	}))
}

func (r *identitiesRepo) RevokeIdentitySessions(ctx context.Context, id string, now time.Time) error {
	return affected(r.q.RevokeIdentitySessions(ctx, gen.RevokeIdentitySessionsParams{
		Now: utc(now),
		ID:  id,
	}))
}

func (r *identitiesRepo) DeleteIdentity(ctx context.Context, id string) error {
	return affected(r.q.DeleteIdentity(ctx, id))
}

type accountsRepo struct {
	q *gen.Queries
}

func (r *accountsRepo) FindAccountByEmail(ctx context.Context, email string) (domain.AccountEmail, error) {
	row, err := r.q.FindAccountByEmail(ctx, email)
	if err != nil {
		return domain.AccountEmail{}, mapNotFound(err)
	}
	return domain.AccountEmail{
		Kind:      domain.AccountKind(row.AccountKind),
		AccountID: row.AccountID,
		Email:     row.Email,
	}, nil
}
