package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestMFALifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	boss := h.activeAdmin(t, "boss@example.com")

	require.ErrorIs(t, h.mfa.Verify(ctx, boss.ID, "123456"), ErrMFANotEnrolled)
	require.ErrorIs(t, h.mfa.Disable(ctx, boss.ID, "123456"), ErrMFANotEnabled)

	first, err := h.mfa.Enroll(ctx, boss.ID)
	require.NoError(t, err)
	enrollment, err := h.mfa.Enroll(ctx, boss.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.Secret, enrollment.Secret, "re-enrolling replaces the pending secret")
	require.Equal(t, "boss@example.com", enrollment.Account)
	require.Contains(t, enrollment.URL, "otpauth://totp/")

	code := func() string {
		c, err := totp.GenerateCode(enrollment.Secret, h.clock.Now())
		require.NoError(t, err)
		return c
	}

	require.ErrorIs(t, h.mfa.Verify(ctx, boss.ID, "not-a-code"), ErrInvalidTOTPCode)
	require.NoError(t, h.mfa.Verify(ctx, boss.ID, code()))
	require.ErrorIs(t, h.mfa.Verify(ctx, boss.ID, code()), ErrMFAAlreadyEnabled)
	_, err = h.mfa.Enroll(ctx, boss.ID)
	require.ErrorIs(t, err, ErrMFAAlreadyEnabled)

	t.Run("login needs a code", func(t *testing.T) {
		req := LoginRequest{Kind: domain.KindAdmin, Email: "boss@example.com", Password: strongPassword}
		_, err := h.sessions.Login(ctx, req)
		require.ErrorIs(t, err, ErrMFARequired)

		req.OTP = "not-a-code"
		_, err = h.sessions.Login(ctx, req)
		require.ErrorIs(t, err, ErrInvalidCredentials)

		req.OTP = code()
		s, err := h.sessions.Login(ctx, req)
		require.NoError(t, err)
		claims, err := h.verifier.Verify(s.AccessToken)
		require.NoError(t, err)
		require.Equal(t, []string{"pwd", "otp"}, claims.AMR)

		p, err := h.sessions.Authorize(ctx, claims)
		require.NoError(t, err)
		require.True(t, p.MFAEnabled)
	})

	require.ErrorIs(t, h.mfa.Disable(ctx, boss.ID, "not-a-code"), ErrInvalidTOTPCode)
	require.NoError(t, h.mfa.Disable(ctx, boss.ID, code()))

	a, err := h.st.Admins().GetAdminByID(ctx, boss.ID)
	require.NoError(t, err)
	require.False(t, a.HasMFA())
	require.Nil(t, a.MFASecret)

	h.login(t, domain.KindAdmin, "boss@example.com")
	_, err = h.mfa.Enroll(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
