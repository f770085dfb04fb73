package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store/drivers/sqlite/gen"
)

type partnersRepo struct {
	q *gen.Queries
}

func (r *partnersRepo) CreatePartner(ctx context.Context, p domain.Partner) error {
	now := p.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	err := r.q.CreatePartner(ctx, gen.CreatePartnerParams{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Website:        p.Website,
		CommissionRate: int64(p.CommissionRate),
		MemberID:       mapStringNull(p.MemberID),
		IsActive:       p.IsActive,
		Now:            utc(now),
	})
	return mapWriteErr(err)
}

func (r *partnersRepo) GetPartnerByID(ctx context.Context, id string) (domain.Partner, error) {
	row, err := r.q.GetPartnerByID(ctx, id)
	if err != nil {
		return domain.Partner{}, mapNotFound(err)
	}
	return mapPartner(row), nil
}

func (r *partnersRepo) GetPartnerBySlug(ctx context.Context, slug string) (domain.Partner, error) {
	row, err := r.q.GetPartnerBySlug(ctx, slug)
	if err != nil {
		return domain.Partner{}, mapNotFound(err)
	}
	return mapPartner(row), nil
}

func (r *partnersRepo) ListPartners(ctx context.Context, memberID string) ([]domain.Partner, error) {
	var (
		rows []gen.Partner
		err  error
	)
	if memberID == "" {
		rows, err = r.q.ListPartners(ctx)
	} else {
		rows, err = r.q.ListPartnersByMember(ctx, mapStringNull(memberID))
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.Partner, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPartner(row))
	}
	return out, nil
}

func (r *partnersRepo) UpdatePartner(ctx context.Context, p domain.Partner) error {
	now := p.UpdatedAt
	if now.IsZero() {
		now = time.Now()
	}
	n, err := r.q.UpdatePartner(ctx, gen.UpdatePartnerParams{
		Name:           p.Name,
		Slug:           p.Slug,
		Website:        p.Website,
		CommissionRate: int64(p.CommissionRate),
		MemberID:       mapStringNull(p.MemberID),
		IsActive:       p.IsActive,
		Now:            utc(now),
		ID:             p.ID,
	})
	return affected(n, mapWriteErr(err))
}

func (r *partnersRepo) DeletePartner(ctx context.Context, id string) error {
	return affected(r.q.DeletePartner(ctx, id))
}

func (r *partnersRepo) PartnerStats(ctx context.Context, memberID string, from, to time.Time) ([]domain.PartnerStats, error) {
	rows, err := r.q.PartnerStats(ctx, gen.PartnerStatsParams{
		FromTime: utc(from),
		ToTime:   utc(to),
		MemberID: memberID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.PartnerStats, 0, len(rows))
	for _, row := range rows {
		s := domain.PartnerStats{
			PartnerID:      row.ID,
			PartnerName:    row.Name,
			Slug:           row.Slug,
			Clicks:         row.Clicks,
			UniqueVisitors: row.UniqueVisitors,
			Conversions:    row.Conversions,
			RevenueCents:   row.RevenueCents,
		}
		s.CommissionCents = domain.Partner{CommissionRate: int(row.CommissionRate)}.Commission(row.RevenueCents)
		if row.UniqueVisitors > 0 {
			s.ConversionRate = float64(row.Conversions) / float64(row.UniqueVisitors)
		}
		out = append(out, s)
	}
	return out, nil
}

type clicksRepo struct {
	q *gen.Queries
}

func (r *clicksRepo) CreateClick(ctx context.Context, c domain.Click) error {
	return mapWriteErr(r.q.CreateClick(ctx, gen.CreateClickParams{
		ID:          c.ID,
		PartnerID:   c.PartnerID,
		VisitorID:   c.VisitorID,
		LandingPath: c.LandingPath,
		Referrer:    c.Referrer,
		UserAgent:   c.UserAgent,
		IpHash:      c.IPHash,
		CreatedAt:   utc(c.CreatedAt),
	}))
}

func (r *clicksRepo) GetClickByID(ctx context.Context, id string) (domain.Click, error) {
	row, err := r.q.GetClickByID(ctx, id)
	if err != nil {
		return domain.Click{}, mapNotFound(err)
	}
	return mapClick(row), nil
}

func (r *clicksRepo) DeleteClicksBefore(ctx context.Context, before time.Time) (int64, error) {
	return r.q.DeleteClicksBefore(ctx, utc(before))
}

type conversionsRepo struct {
	q *gen.Queries
}

func (r *conversionsRepo) CreateConversion(ctx context.Context, c domain.Conversion) error {
	return mapWriteErr(r.q.CreateConversion(ctx, gen.CreateConversionParams{
		ID:          c.ID,
		PartnerID:   c.PartnerID,
		ClickID:     mapStringNull(c.ClickID),
		Reference:   c.Reference,
		AmountCents: c.AmountCents,
		CreatedAt:   utc(c.CreatedAt),
	}))
}
