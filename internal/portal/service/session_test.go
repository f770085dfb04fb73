package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/stretchr/testify/require"
)

func TestLoginAdminSession(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	boss := h.activeAdmin(t, "boss@example.com")
	claims := h.login(t, domain.KindAdmin, "Boss@Example.com")
	require.Equal(t, "admin", claims.Kind)
	require.Equal(t, boss.ID, claims.AccountID)
	require.Equal(t, boss.UserID, claims.Subject)
	require.Equal(t, []string{ScopeAdminRead, ScopeAdminWrite}, claims.Scopes)
	require.Equal(t, []string{"pwd"}, claims.AMR)
	require.False(t, claims.MustChangePassword)

	p, err := h.sessions.Authorize(ctx, claims)
	require.NoError(t, err)
	require.Equal(t, Principal{
		Kind:      domain.KindAdmin,
		AccountID: boss.ID,
		UserID:    boss.UserID,
		Email:     "boss@example.com",
		FullName:  boss.FullName,
	}, p)
}

func TestLoginRejections(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.activeAdmin(t, "boss@example.com")
	h.approvedMember(t, "vendor@example.com")

	cases := []struct {
		name string
		req  LoginRequest
		err  error
	}{
		{"wrong password", LoginRequest{Kind: domain.KindAdmin, Email: "boss@example.com", Password: "Wrong-Horse-9!"}, ErrInvalidCredentials},
		{"unknown email", LoginRequest{Kind: domain.KindMember, Email: "nobody@example.com", Password: strongPassword}, ErrInvalidCredentials},
		{"member as admin", LoginRequest{Kind: domain.KindAdmin, Email: "vendor@example.com", Password: strongPassword}, ErrInvalidCredentials},
		{"admin as member", LoginRequest{Kind: domain.KindMember, Email: "boss@example.com", Password: strongPassword}, ErrInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.sessions.Login(ctx, tc.req)
			require.ErrorIs(t, err, tc.err)
		})
	}

	_, err := h.sessions.Login(ctx, LoginRequest{Kind: "owner", Email: "boss@example.com", Password: strongPassword})
	requireValidation(t, err)
	_, err = h.sessions.Login(ctx, LoginRequest{Kind: domain.KindAdmin, Email: "boss@example.com"})
	requireValidation(t, err)
}

func TestLoginFlagsExpiredAdminPassword(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.admins.PasswordMaxAge = time.Minute

	boss := h.activeAdmin(t, "boss@example.com")
	s, err := h.sessions.Login(ctx, LoginRequest{Kind: domain.KindAdmin, Email: "boss@example.com", Password: strongPassword})
	require.NoError(t, err)
	require.False(t, s.MustChangePassword, "setup leaves no expiry")

	require.NoError(t, h.admins.ChangePassword(ctx, boss.ID, strongPassword, "Another-Horse-7!"))
	h.clock.Advance(2 * time.Minute)

	s, err = h.sessions.Login(ctx, LoginRequest{Kind: domain.KindAdmin, Email: "boss@example.com", Password: "Another-Horse-7!"})
	require.NoError(t, err)
	require.True(t, s.MustChangePassword)
	require.True(t, h.clock.Now().Add(24*time.Hour).Equal(s.ExpiresAt))
}

func TestAuthorizeChecksRevocationWatermark(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.approvedMember(t, "vendor@example.com")
	claims := h.login(t, domain.KindMember, "vendor@example.com")
	require.Equal(t, []string{ScopePortalRead, ScopePortalWrite}, claims.Scopes)

	p, err := h.sessions.Authorize(ctx, claims)
	require.NoError(t, err)

	h.clock.Advance(time.Minute)
	require.NoError(t, h.sessions.Logout(ctx, p))
	_, err = h.sessions.Authorize(ctx, claims)
	require.ErrorIs(t, err, ErrSessionRevoked)

	fresh := h.login(t, domain.KindMember, "vendor@example.com")
	_, err = h.sessions.Authorize(ctx, fresh)
	require.NoError(t, err)

	t.Run("subject must own the account", func(t *testing.T) {
		forged := fresh
		forged.Subject = "someone-else"
		_, err := h.sessions.Authorize(ctx, forged)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown kind", func(t *testing.T) {
		forged := fresh
		forged.Kind = "owner"
		_, err := h.sessions.Authorize(ctx, forged)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
