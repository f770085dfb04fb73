package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/stretchr/testify/require"
)

func TestAdminCannotActOnThemselves(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	boss := h.activeAdmin(t, "boss@example.com")

	_, err := h.admins.SetActive(ctx, boss.ID, boss.ID, false)
	require.ErrorIs(t, err, ErrSelfAction)
	require.ErrorIs(t, h.admins.Delete(ctx, boss.ID, boss.ID), ErrSelfAction)
}

func TestAdminDeactivationAndDelete(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	boss := h.activeAdmin(t, "boss@example.com")
	other := h.activeAdmin(t, "other@example.com")

	claims := h.login(t, domain.KindAdmin, "other@example.com")

	off, err := h.admins.SetActive(ctx, boss.ID, other.ID, false)
	require.NoError(t, err)
	require.False(t, off.IsActive)

	_, err = h.sessions.Authorize(ctx, claims)
	require.ErrorIs(t, err, ErrAccountDeactivated)
	_, err = h.sessions.Login(ctx, LoginRequest{Kind: domain.KindAdmin, Email: "other@example.com", Password: strongPassword})
	require.ErrorIs(t, err, ErrAccountDeactivated)

	list, err := h.admins.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, h.admins.Delete(ctx, boss.ID, other.ID))
	_, err = h.admins.Get(ctx, other.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = h.admins.SetActive(ctx, boss.ID, other.ID, true)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	boss := h.activeAdmin(t, "boss@example.com")
	const next = "Battery-Staple-42?"

	require.ErrorIs(t, h.admins.ChangePassword(ctx, boss.ID, "Wrong-Horse-9!", next), ErrInvalidCredentials)
	requireValidation(t, h.admins.ChangePassword(ctx, boss.ID, strongPassword, strongPassword))
	requireValidation(t, h.admins.ChangePassword(ctx, boss.ID, strongPassword, "weak"))

	h.clock.Advance(time.Hour)
	require.NoError(t, h.admins.ChangePassword(ctx, boss.ID, strongPassword, next))

	a, err := h.admins.Get(ctx, boss.ID)
	require.NoError(t, err)
	require.False(t, a.MustChangePassword)
	require.NotNil(t, a.PasswordExpiresAt)
	require.True(t, h.clock.Now().Add(90*24*time.Hour).Equal(*a.PasswordExpiresAt))

	_, err = h.sessions.Login(ctx, LoginRequest{Kind: domain.KindAdmin, Email: "boss@example.com", Password: strongPassword})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = h.sessions.Login(ctx, LoginRequest{Kind: domain.KindAdmin, Email: "boss@example.com", Password: next})
	require.NoError(t, err)
}

func TestAdminInvitationStatus(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.invites.InviteAdmin(ctx, InviteAdminRequest{Email: "boss@example.com", FullName: "Boss"})
	require.NoError(t, err)

	st, err := h.admins.GetInvitationStatus(ctx, res.Admin.ID)
	require.NoError(t, err)
	require.True(t, st.Pending)
	require.NotNil(t, st.ExpiresAt)
	require.True(t, res.ExpiresAt.Equal(*st.ExpiresAt))

	_, err = h.invites.CompleteSetup(ctx, res.Token, strongPassword)
	require.NoError(t, err)

	st, err = h.admins.GetInvitationStatus(ctx, res.Admin.ID)
	require.NoError(t, err)
	require.False(t, st.Pending)
	require.Nil(t, st.ExpiresAt)

	_, err = h.admins.GetInvitationStatus(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
