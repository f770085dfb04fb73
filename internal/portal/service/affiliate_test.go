package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func partner(t *testing.T, h *harness, slug string, rate int, memberID string) domain.Partner {
	t.Helper()
	p, err := h.affiliate.CreatePartner(context.Background(), PartnerInput{
		Name: "Partner " + slug, Slug: slug, CommissionRate: rate, MemberID: memberID,
	})
	require.NoError(t, err)
	return p
}

func TestPartnerValidation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	verr := requireValidation(t, func() error {
		_, err := h.affiliate.CreatePartner(ctx, PartnerInput{
			Slug: "Bad Slug!", CommissionRate: 20_000, Website: "ftp://example.com",
		})
		return err
	}())
	require.Len(t, verr.Details, 4)

	_, err := h.affiliate.CreatePartner(ctx, PartnerInput{Name: "X", Slug: "x-ok", MemberID: "missing"})
	requireValidation(t, err)

	p, err := h.affiliate.CreatePartner(ctx, PartnerInput{
		Name: " Acme ", Slug: " ACME-Deals ", Website: "https://acme.example.com", CommissionRate: 1250,
	})
	require.NoError(t, err)
	require.Equal(t, "Acme", p.Name)
	require.Equal(t, "acme-deals", p.Slug)
	require.True(t, p.IsActive)

	_, err = h.affiliate.CreatePartner(ctx, PartnerInput{Name: "Copy", Slug: "acme-deals"})
	require.ErrorIs(t, err, ErrSlugTaken)
}

func TestUpdateAndDeletePartner(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	m := h.approvedMember(t, "vendor@example.com")
	p := partner(t, h, "acme", 1000, "")
	partner(t, h, "taken", 1000, "")

	name := "Acme Renamed"
	inactive := false
	updated, err := h.affiliate.UpdatePartner(ctx, p.ID, PartnerPatch{Name: &name, MemberID: &m.ID, IsActive: &inactive})
	require.NoError(t, err)
	require.Equal(t, "Acme Renamed", updated.Name)
	require.Equal(t, m.ID, updated.MemberID)
	require.False(t, updated.IsActive)
	require.Equal(t, "acme", updated.Slug)

	owned, err := h.affiliate.ListPartners(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)

	slug := "taken"
	_, err = h.affiliate.UpdatePartner(ctx, p.ID, PartnerPatch{Slug: &slug})
	require.ErrorIs(t, err, ErrSlugTaken)

	rate := -1
	_, err = h.affiliate.UpdatePartner(ctx, p.ID, PartnerPatch{CommissionRate: &rate})
	requireValidation(t, err)

	_, err = h.affiliate.UpdatePartner(ctx, "missing", PartnerPatch{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, h.affiliate.DeletePartner(ctx, p.ID))
	require.ErrorIs(t, h.affiliate.DeletePartner(ctx, p.ID), ErrNotFound)
	_, err = h.affiliate.GetPartner(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecordClick(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	p := partner(t, h, "acme", 1000, "")

	first, err := h.affiliate.RecordClick(ctx, "ACME", ClickInput{LandingPath: "/pricing", IP: "203.0.113.7", UserAgent: "test"})
	require.NoError(t, err)
	require.Equal(t, p.ID, first.PartnerID)
	_, err = uuid.Parse(first.VisitorID)
	require.NoError(t, err)
	require.NotEmpty(t, first.IPHash)
	require.NotContains(t, first.IPHash, "203.0.113.7")

	again, err := h.affiliate.RecordClick(ctx, "acme", ClickInput{VisitorID: first.VisitorID, IP: "203.0.113.7"})
	require.NoError(t, err)
	require.Equal(t, first.VisitorID, again.VisitorID)
	require.Equal(t, first.IPHash, again.IPHash)

	junk, err := h.affiliate.RecordClick(ctx, "acme", ClickInput{VisitorID: "not-a-uuid"})
	require.NoError(t, err)
	require.NotEqual(t, "not-a-uuid", junk.VisitorID)
	require.Empty(t, junk.IPHash)

	_, err = h.affiliate.RecordClick(ctx, "nope", ClickInput{})
	require.ErrorIs(t, err, ErrNotFound)

	off := false
	_, err = h.affiliate.UpdatePartner(ctx, p.ID, PartnerPatch{IsActive: &off})
	require.NoError(t, err)
	_, err = h.affiliate.RecordClick(ctx, "acme", ClickInput{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecordClickClipsOnRuneBoundary(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	partner(t, h, "acme", 1000, "")

	// "é" occupies bytes 511 and 512, straddling the user agent limit.
	ua := strings.Repeat("a", 511) + "é" + "tail"
	c, err := h.affiliate.RecordClick(ctx, "acme", ClickInput{UserAgent: ua, Referrer: strings.Repeat("日", 1000)})
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("a", 511), c.UserAgent)
	require.True(t, utf8.ValidString(c.Referrer))
	require.Equal(t, strings.Repeat("日", 682), c.Referrer)
}

func TestClip(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exact", 5, "exact"},
		{"abcdef", 3, "abc"},
		{"aé", 2, "a"},
		{"aé", 3, "aé"},
		{"日本", 4, "日"},
		{"日本", 2, ""},
	}
	for _, tt := range tests {
		got := clip(tt.in, tt.n)
		require.Equal(t, tt.want, got, "clip(%q, %d)", tt.in, tt.n)
		require.True(t, utf8.ValidString(got))
	}
}

func TestRecordConversion(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	acme := partner(t, h, "acme", 1000, "")
	partner(t, h, "other", 1000, "")

	require.ErrorIs(t, h.affiliate.CheckConversionKey("guess"), ErrConversionKeyInvalid)
	require.NoError(t, h.affiliate.CheckConversionKey("conversion-secret"))

	click, err := h.affiliate.RecordClick(ctx, "acme", ClickInput{})
	require.NoError(t, err)

	conv, err := h.affiliate.RecordConversion(ctx, ConversionInput{ClickID: click.ID, Reference: "order-1", AmountCents: 5000})
	require.NoError(t, err)
	require.Equal(t, acme.ID, conv.PartnerID)

	_, err = h.affiliate.RecordConversion(ctx, ConversionInput{Slug: "acme", Reference: "order-1", AmountCents: 5000})
	require.ErrorIs(t, err, ErrDuplicateConversion)

	_, err = h.affiliate.RecordConversion(ctx, ConversionInput{Slug: "other", Reference: "order-1", AmountCents: 5000})
	require.NoError(t, err, "references are unique per partner")

	_, err = h.affiliate.RecordConversion(ctx, ConversionInput{ClickID: click.ID, Slug: "other", Reference: "order-2"})
	requireValidation(t, err)

	verr := requireValidation(t, func() error {
		_, err := h.affiliate.RecordConversion(ctx, ConversionInput{AmountCents: -1})
		return err
	}())
	require.Len(t, verr.Details, 3)

	_, err = h.affiliate.RecordConversion(ctx, ConversionInput{ClickID: "missing", Reference: "order-3"})
	require.ErrorIs(t, err, ErrNotFound)

	h.affiliate.ConversionKey = ""
	require.ErrorIs(t, h.affiliate.CheckConversionKey(""), ErrConversionKeyInvalid)
}

func TestAnalytics(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	m := h.approvedMember(t, "vendor@example.com")
	acme := partner(t, h, "acme", 1000, m.ID)
	house := partner(t, h, "house", 500, "")

	c1, err := h.affiliate.RecordClick(ctx, "acme", ClickInput{})
	require.NoError(t, err)
	_, err = h.affiliate.RecordClick(ctx, "acme", ClickInput{VisitorID: c1.VisitorID})
	require.NoError(t, err)
	c3, err := h.affiliate.RecordClick(ctx, "acme", ClickInput{})
	require.NoError(t, err)
	_, err = h.affiliate.RecordClick(ctx, "house", ClickInput{})
	require.NoError(t, err)

	_, err = h.affiliate.RecordConversion(ctx, ConversionInput{ClickID: c1.ID, Reference: "o-1", AmountCents: 5000})
	require.NoError(t, err)
	_, err = h.affiliate.RecordConversion(ctx, ConversionInput{ClickID: c3.ID, Reference: "o-2", AmountCents: 2500})
	require.NoError(t, err)

	h.clock.Advance(time.Second)

	report, err := h.affiliate.Analytics(ctx, AnalyticsFilter{})
	require.NoError(t, err)
	require.True(t, report.To.Equal(h.clock.Now()))
	require.True(t, report.From.Equal(h.clock.Now().Add(-DefaultAnalyticsWindow)))
	require.Len(t, report.Partners, 2)
	require.EqualValues(t, 4, report.Totals.Clicks)
	require.EqualValues(t, 2, report.Totals.Conversions)
	require.EqualValues(t, 7500, report.Totals.RevenueCents)
	require.EqualValues(t, 750, report.Totals.CommissionCents)

	mine, err := h.affiliate.Analytics(ctx, AnalyticsFilter{MemberID: m.ID})
	require.NoError(t, err)
	require.Len(t, mine.Partners, 1)
	row := mine.Partners[0]
	require.Equal(t, acme.ID, row.PartnerID)
	require.EqualValues(t, 3, row.Clicks)
	require.EqualValues(t, 2, row.UniqueVisitors)
	require.EqualValues(t, 2, row.Conversions)
	require.InDelta(t, 1.0, row.ConversionRate, 1e-9)
	require.InDelta(t, 1.0, mine.Totals.ConversionRate, 1e-9)

	only, err := h.affiliate.Analytics(ctx, AnalyticsFilter{PartnerIDs: []string{house.ID}})
	require.NoError(t, err)
	require.Len(t, only.Partners, 1)
	require.EqualValues(t, 1, only.Totals.Clicks)
	require.Zero(t, only.Totals.ConversionRate)

	empty, err := h.affiliate.Analytics(ctx, AnalyticsFilter{From: h.clock.Now(), To: h.clock.Now().Add(time.Hour)})
	require.NoError(t, err)
	require.Zero(t, empty.Totals.Clicks)

	_, err = h.affiliate.Analytics(ctx, AnalyticsFilter{From: h.clock.Now(), To: h.clock.Now()})
	requireValidation(t, err)
	_, err = h.affiliate.Analytics(ctx, AnalyticsFilter{From: h.clock.Now().Add(-400 * 24 * time.Hour)})
	requireValidation(t, err)
}
