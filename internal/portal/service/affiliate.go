package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/metrics"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/pkg/cryptox"
	"github.com/aussiebroadwan/partnerportal/pkg/idx"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
	"github.com/google/uuid"
)

const (
	DefaultAnalyticsWindow = 30 * 24 * time.Hour
	MaxAnalyticsRange      = 366 * 24 * time.Hour
	MaxCommissionRate      = 10_000
)

var (
	ErrSlugTaken            = errors.New("slug_taken")
	ErrDuplicateConversion  = errors.New("duplicate_conversion")
	ErrConversionKeyInvalid = errors.New("invalid_conversion_key")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,62}[a-z0-9])?$`)

// AffiliateService tracks referral traffic and reports on it.
type AffiliateService struct {
	Store   store.Store
	Metrics *metrics.Metrics

	IPKey         []byte // HMAC key for visitor IP fingerprints
	ConversionKey string // shared secret for server-to-server conversions
	Now           func() time.Time
}

type PartnerInput struct {
	Name           string
	Slug           string
	Website        string
	CommissionRate int
	MemberID       string
	IsActive       *bool // nil means active
}

// PartnerPatch changes only the non-nil fields.
type PartnerPatch struct {
	Name           *string
	Slug           *string
	Website        *string
	CommissionRate *int
	MemberID       *string
	IsActive       *bool
}

type ClickInput struct {
	VisitorID   string // from the visitor cookie, may be empty
	LandingPath string
	Referrer    string
	UserAgent   string
	IP          string
}

type ConversionInput struct {
	Slug        string
	ClickID     string
	Reference   string
	AmountCents int64
}

type AnalyticsFilter struct {
	From       time.Time
	To         time.Time
	MemberID   string   // restricts to partners the member owns
	PartnerIDs []string // empty means all
}

type AnalyticsReport struct {
	From     time.Time
	To       time.Time
	Partners []domain.PartnerStats
	Totals   domain.PartnerStats
}

func (s *AffiliateService) CreatePartner(ctx context.Context, in PartnerInput) (domain.Partner, error) {
	now := clock(s.Now)
	p := domain.Partner{
		ID:             idx.NewAt(now).String(),
		Name:           strings.TrimSpace(in.Name),
		Slug:           strings.ToLower(strings.TrimSpace(in.Slug)),
		Website:        strings.TrimSpace(in.Website),
		CommissionRate: in.CommissionRate,
		MemberID:       strings.TrimSpace(in.MemberID),
		IsActive:       in.IsActive == nil || *in.IsActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.checkPartner(ctx, p); err != nil {
		return domain.Partner{}, err
	}
	if err := s.Store.Partners().CreatePartner(ctx, p); err != nil {
		return domain.Partner{}, partnerWriteErr("create partner", err)
	}
	slogx.FromContext(ctx).Info("partner created", slog.String("partner_id", p.ID), slog.String("slug", p.Slug))
	return p, nil
}

func (s *AffiliateService) UpdatePartner(ctx context.Context, id string, patch PartnerPatch) (domain.Partner, error) {
	p, err := s.GetPartner(ctx, id)
	if err != nil {
		return domain.Partner{}, err
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Slug != nil {
		p.Slug = strings.ToLower(strings.TrimSpace(*patch.Slug))
	}
	if patch.Website != nil {
		p.Website = strings.TrimSpace(*patch.Website)
	}
	if patch.CommissionRate != nil {
		p.CommissionRate = *patch.CommissionRate
	}
	if patch.MemberID != nil {
		p.MemberID = strings.TrimSpace(*patch.MemberID)
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	p.UpdatedAt = clock(s.Now)

	if err := s.checkPartner(ctx, p); err != nil {
		return domain.Partner{}, err
	}
	if err := s.Store.Partners().UpdatePartner(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Partner{}, ErrNotFound
		}
		return domain.Partner{}, partnerWriteErr("update partner", err)
	}
	slogx.FromContext(ctx).Info("partner updated", slog.String("partner_id", p.ID))
	return p, nil
}

func (s *AffiliateService) DeletePartner(ctx context.Context, id string) error {
	if err := s.Store.Partners().DeletePartner(ctx, id); err != nil {
		return notFound(err)
	}
	slogx.FromContext(ctx).Info("partner deleted", slog.String("partner_id", id))
	return nil
}

func (s *AffiliateService) GetPartner(ctx context.Context, id string) (domain.Partner, error) {
	p, err := s.Store.Partners().GetPartnerByID(ctx, id)
	if err != nil {
		return domain.Partner{}, notFound(err)
	}
	return p, nil
}

func (s *AffiliateService) ListPartners(ctx context.Context, memberID string) ([]domain.Partner, error) {
	return s.Store.Partners().ListPartners(ctx, memberID)
}

func (s *AffiliateService) checkPartner(ctx context.Context, p domain.Partner) error {
	var details []string
	if p.Name == "" {
		details = append(details, "name is required")
	}
	if !slugPattern.MatchString(p.Slug) {
		details = append(details, "slug must be 1-64 lowercase letters, digits or inner hyphens")
	}
	if p.CommissionRate < 0 || p.CommissionRate > MaxCommissionRate {
		details = append(details, "commission_rate must be between 0 and 10000 basis points")
	}
	if p.Website != "" {
		u, err := url.Parse(p.Website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			details = append(details, "website must be an http or https URL")
		}
	}
	if len(details) > 0 {
		return invalid("invalid partner", details...)
	}

	if p.MemberID != "" {
		if _, err := s.Store.Members().GetMemberByID(ctx, p.MemberID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return invalid("invalid partner", "member_id does not exist")
			}
			return upstream("load member", err)
		}
	}
	return nil
}

func partnerWriteErr(op string, err error) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrSlugTaken
	}
	return upstream(op, err)
}

// RecordClick logs a visit through slug. Unknown and inactive partners look
// the same to the caller. The visitor keeps its id when it sends a valid one.
func (s *AffiliateService) RecordClick(ctx context.Context, slug string, in ClickInput) (domain.Click, error) {
	p, err := s.Store.Partners().GetPartnerBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return domain.Click{}, notFound(err)
	}
	if !p.IsActive {
		return domain.Click{}, ErrNotFound
	}

	visitor := uuid.NewString()
	if v, err := uuid.Parse(in.VisitorID); err == nil {
		visitor = v.String()
	}

	now := clock(s.Now)
	c := domain.Click{
		ID:          idx.NewAt(now).String(),
		PartnerID:   p.ID,
		VisitorID:   visitor,
		LandingPath: clip(in.LandingPath, 2048),
		Referrer:    clip(in.Referrer, 2048),
		UserAgent:   clip(in.UserAgent, 512),
		CreatedAt:   now,
	}
	if in.IP != "" {
		c.IPHash = cryptox.KeyedFingerprint(s.IPKey, in.IP)
	}

	if err := s.Store.Clicks().CreateClick(ctx, c); err != nil {
		return domain.Click{}, upstream("record click", err)
	}
	s.Metrics.ClickTracked()
	return c, nil
}

// CheckConversionKey guards RecordConversion. An unset key rejects everything.
func (s *AffiliateService) CheckConversionKey(key string) error {
	if s.ConversionKey == "" || !cryptox.EqualSecret(key, s.ConversionKey) {
		return ErrConversionKeyInvalid
	}
	return nil
}

// RecordConversion attributes a sale. The partner comes from the click when
// one is given, otherwise from the slug. A reference counts once per
// partner.
func (s *AffiliateService) RecordConversion(ctx context.Context, in ConversionInput) (domain.Conversion, error) {
	ref := strings.TrimSpace(in.Reference)
	slug := strings.ToLower(strings.TrimSpace(in.Slug))

	var details []string
	if ref == "" {
		details = append(details, "reference is required")
	}
	if in.AmountCents < 0 {
		details = append(details, "amount_cents must not be negative")
	}
	if in.ClickID == "" && slug == "" {
		details = append(details, "click_id or slug is required")
	}
	if len(details) > 0 {
		return domain.Conversion{}, invalid("invalid conversion", details...)
	}

	var partnerID string
	if in.ClickID != "" {
		c, err := s.Store.Clicks().GetClickByID(ctx, in.ClickID)
		if err != nil {
			return domain.Conversion{}, notFound(err)
		}
		partnerID = c.PartnerID
	}
	if slug != "" {
		p, err := s.Store.Partners().GetPartnerBySlug(ctx, slug)
		if err != nil {
			return domain.Conversion{}, notFound(err)
		}
		if partnerID != "" && partnerID != p.ID {
			return domain.Conversion{}, invalid("invalid conversion", "click_id belongs to a different partner")
		}
		partnerID = p.ID
	}

	now := clock(s.Now)
	conv := domain.Conversion{
		ID:          idx.NewAt(now).String(),
		PartnerID:   partnerID,
		ClickID:     in.ClickID,
		Reference:   ref,
		AmountCents: in.AmountCents,
		CreatedAt:   now,
	}
	if err := s.Store.Conversions().CreateConversion(ctx, conv); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Conversion{}, ErrDuplicateConversion
		}
		return domain.Conversion{}, upstream("record conversion", err)
	}

	s.Metrics.ConversionRecorded()
	slogx.FromContext(ctx).Info("conversion recorded",
		slog.String("partner_id", partnerID),
		slog.String("reference", ref),
		slog.Int64("amount_cents", in.AmountCents),
	)
	return conv, nil
}

// Analytics aggregates [From, To). A zero To means now and a zero From
// means DefaultAnalyticsWindow before To.
func (s *AffiliateService) Analytics(ctx context.Context, f AnalyticsFilter) (AnalyticsReport, error) {
	to := f.To.UTC()
	if to.IsZero() {
		to = clock(s.Now)
	}
	from := f.From.UTC()
	if from.IsZero() {
		from = to.Add(-DefaultAnalyticsWindow)
	}
	if !from.Before(to) {
		return AnalyticsReport{}, invalid("invalid range", "from must be before to")
	}
	if to.Sub(from) > MaxAnalyticsRange {
		return AnalyticsReport{}, invalid("invalid range", "range must not exceed 366 days")
	}

	rows, err := s.Store.Partners().PartnerStats(ctx, f.MemberID, from, to)
	if err != nil {
		return AnalyticsReport{}, upstream("partner stats", err)
	}
	if len(f.PartnerIDs) > 0 {
		rows = slices.DeleteFunc(rows, func(r domain.PartnerStats) bool {
			return !slices.Contains(f.PartnerIDs, r.PartnerID)
		})
	}

	report := AnalyticsReport{From: from, To: to, Partners: rows}
	for _, r := range rows {
		report.Totals.Clicks += r.Clicks
		report.Totals.UniqueVisitors += r.UniqueVisitors
		report.Totals.Conversions += r.Conversions
		report.Totals.RevenueCents += r.RevenueCents
		report.Totals.CommissionCents += r.CommissionCents
	}
	if report.Totals.UniqueVisitors > 0 {
		report.Totals.ConversionRate = float64(report.Totals.Conversions) / float64(report.Totals.UniqueVisitors)
	}
	return report, nil
}

// clip cuts s to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
