package portal_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

func TestAffiliateTrackingEndToEnd(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewSDKClient(baseURL)
	admin := bootstrapAdmin(t, client)
	member, vendor := inviteMember(t, client, admin, "vendor@example.com")

	partner, err := admin.CreatePartner(t.Context(), portalsdk.PartnerRequest{
		Name:           "Vendor Shop",
		Slug:           "Vendor Shop",
		CommissionRate: 1000,
		MemberID:       vendor.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "vendor-shop", partner.Slug)

	first, err := client.TrackClick(t.Context(), partner.Slug, portalsdk.ClickRequest{LandingPath: "/pricing"})
	require.NoError(t, err)
	require.NotEmpty(t, first.VisitorID)
	_, err = client.TrackClick(t.Context(), partner.Slug, portalsdk.ClickRequest{VisitorID: first.VisitorID})
	require.NoError(t, err)

	_, err = client.RecordConversion(t.Context(), "wrong-key", portalsdk.ConversionRequest{ClickID: first.ClickID, Reference: "order-1", AmountCents: 10000})
	requireCode(t, err, "invalid_conversion_key")

	conv, err := client.RecordConversion(t.Context(), conversionKey, portalsdk.ConversionRequest{ClickID: first.ClickID, Reference: "order-1", AmountCents: 10000})
	require.NoError(t, err)
	require.Equal(t, partner.ID, conv.PartnerID)

	q := portalsdk.AnalyticsQuery{
		From: time.Now().Add(-time.Hour),
		To:   time.Now().Add(time.Minute),
	}
	report, err := admin.Analytics(t.Context(), q)
	require.NoError(t, err)
	require.EqualValues(t, 2, report.Totals.Clicks)
	require.EqualValues(t, 1, report.Totals.UniqueVisitors)
	require.EqualValues(t, 1, report.Totals.Conversions)
	require.EqualValues(t, 10000, report.Totals.RevenueCents)
	require.EqualValues(t, 1000, report.Totals.CommissionCents)

	own, err := member.PortalAnalytics(t.Context(), q)
	require.NoError(t, err)
	require.Len(t, own.Partners, 1)
	require.Equal(t, partner.ID, own.Partners[0].PartnerID)

	mine, err := member.ListOwnPartners(t.Context())
	require.NoError(t, err)
	require.Len(t, mine, 1)
}
