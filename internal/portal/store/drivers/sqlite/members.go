package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store/drivers/sqlite/gen"
)

type membersRepo struct {
	q *gen.Queries
}

func (r *membersRepo) CreateMember(ctx context.Context, m domain.Member) error {
	now := m.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	err := r.q.CreateMember(ctx, gen.CreateMemberParams{
		ID:          m.ID,
		UserID:      m.UserID,
		Email:       m.Email,
		FullName:    m.FullName,
		CompanyName: m.CompanyName,
		Phone:       m.Phone,
		IsActive:    m.IsActive,
		IsApproved:  m.IsApproved,
		ApprovedAt:  mapOptionalTime(m.ApprovedAt),
		ApprovedBy:  mapStringNull(m.ApprovedBy),
		Now:         utc(now),
	})
	return mapWriteErr(err)
}

func (r *membersRepo) GetMemberByID(ctx context.Context, id string) (domain.Member, error) {
	row, err := r.q.GetMemberByID(ctx, id)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return mapMember(row), nil
}

func (r *membersRepo) GetMemberByUserID(ctx context.Context, userID string) (domain.Member, error) {
	row, err := r.q.GetMemberByUserID(ctx, userID)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return mapMember(row), nil
}

func (r *membersRepo) ListMembers(ctx context.Context, pending *bool) ([]domain.Member, error) {
	var (
		rows []gen.Member
		err  error
	)
	switch {
	case pending == nil:
		rows, err = r.q.ListMembers(ctx)
	case *pending:
		rows, err = r.q.ListPendingMembers(ctx)
	default:
		rows, err = r.q.ListMembersByApproval(ctx, true)
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMember(row))
	}
	return out, nil
}

func (r *membersRepo) ApproveMember(ctx context.Context, id, approvedBy string, now time.Time) (bool, error) {
	n, err := r.q.ApproveMember(ctx, gen.ApproveMemberParams{
		Now:        utc(now),
		ApprovedBy: mapStringNull(approvedBy),
		ID:         id,
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *membersRepo) ApprovePendingMembers(ctx context.Context, approvedBy string, now time.Time) ([]domain.Member, error) {
	ids, err := r.q.ApprovePendingMembers(ctx, gen.ApprovePendingMembersParams{
		Now:        utc(now),
		ApprovedBy: mapStringNull(approvedBy),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Member, 0, len(ids))
	for _, id := range ids {
		row, err := r.q.GetMemberByID(ctx, id)
		if err != nil {
			return nil, mapNotFound(err)
		}
		out = append(out, mapMember(row))
	}
	return out, nil
}

func (r *membersRepo) SetMemberActive(ctx context.Context, id string, active bool, now time.Time) error {
	return affected(r.q.SetMemberActive(ctx, gen.SetMemberActiveParams{
		IsActive: active,
		Now:      utc(now),
		ID:       id,
	}))
}

func (r *membersRepo) DeleteMember(ctx context.Context, id string) error {
	return affected(r.q.DeleteMember(ctx, id))
}
