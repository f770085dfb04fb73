package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingRunOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.admins.PasswordMaxAge = time.Hour

	boss := h.activeAdmin(t, "boss@example.com")
	require.Nil(t, boss.PasswordExpiresAt)
	require.NoError(t, h.admins.ChangePassword(ctx, boss.ID, strongPassword, "Another-Horse-7!"))
	partner(t, h, "acme", 1000, "")
	old, err := h.affiliate.RecordClick(ctx, "acme", ClickInput{})
	require.NoError(t, err)

	h.clock.Advance(48 * time.Hour)
	recent, err := h.affiliate.RecordClick(ctx, "acme", ClickInput{})
	require.NoError(t, err)

	hk := NewHousekeepingService(h.st, slog.New(slog.DiscardHandler), time.Minute, 24*time.Hour)
	hk.Now = h.clock.Now
	hk.RunOnce(ctx)

	a, err := h.admins.Get(ctx, boss.ID)
	require.NoError(t, err)
	require.True(t, a.MustChangePassword)

	_, err = h.st.Clicks().GetClickByID(ctx, old.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = h.st.Clicks().GetClickByID(ctx, recent.ID)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	h := newHarness(t)
	hk := NewHousekeepingService(h.st, slog.New(slog.DiscardHandler), 0, 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}
