package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestTOTPEnrollmentGatesLogin(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	boss := e.adminSession(t, "boss@example.com")

	err := boss.VerifyTOTP(ctx, "123456")
	requireAPIError(t, err, http.StatusConflict, "mfa_not_enrolled")

	enrollment, err := boss.EnrollTOTP(ctx)
	require.NoError(t, err)
	require.Equal(t, "Partner Portal", enrollment.Issuer)
	require.Equal(t, "boss@example.com", enrollment.Account)
	require.Contains(t, enrollment.OTPAuthURL, "otpauth://totp/")

	code := func() string {
		c, err := totp.GenerateCode(enrollment.Secret, e.clock.Now())
		require.NoError(t, err)
		return c
	}

	err = boss.VerifyTOTP(ctx, "abcdef")
	requireAPIError(t, err, http.StatusBadRequest, portalsdk.ErrorCodeInvalidTOTPCode)
	require.NoError(t, boss.VerifyTOTP(ctx, code()))

	_, err = boss.EnrollTOTP(ctx)
	requireAPIError(t, err, http.StatusConflict, "mfa_already_enabled")

	me, err := boss.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.MFAEnabled)

	_, err = e.client.Login(ctx, portalsdk.LoginRequest{Kind: "admin", Email: "boss@example.com", Password: strongPassword})
	requireAPIError(t, err, http.StatusConflict, portalsdk.ErrorCodeMFARequired)

	withOTP, err := e.client.Login(ctx, portalsdk.LoginRequest{
		Kind: "admin", Email: "boss@example.com", Password: strongPassword, OTP: code(),
	})
	require.NoError(t, err)

	require.NoError(t, withOTP.DisableTOTP(ctx, code()))
	err = withOTP.DisableTOTP(ctx, code())
	requireAPIError(t, err, http.StatusConflict, "mfa_not_enabled")

	e.login(t, "admin", "boss@example.com")
}

func TestBootstrapFirstAdmin(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	req := portalsdk.BootstrapRequest{Email: "root@example.com", FullName: "Root", Password: strongPassword}

	_, err := e.client.Bootstrap(ctx, "guess", req)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized_bootstrap")

	admin, err := e.client.Bootstrap(ctx, "bootstrap-secret", req)
	require.NoError(t, err)
	require.Equal(t, "root@example.com", admin.Email)
	require.True(t, admin.IsActive)

	_, err = e.client.Bootstrap(ctx, "bootstrap-secret", portalsdk.BootstrapRequest{
		Email: "again@example.com", FullName: "Again", Password: strongPassword,
	})
	requireAPIError(t, err, http.StatusConflict, portalsdk.ErrorCodeAlreadyBootstrapped)

	s := e.login(t, "admin", "root@example.com")
	require.True(t, s.HasScope("admin:write"))
}
