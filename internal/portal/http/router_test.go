package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthJWKSAndMetrics(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	live, err := e.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := e.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, &portalsdk.HealthChecks{Database: "ok", Signer: "ok"}, ready.Checks)

	jwks, err := e.client.GetJWKS(ctx)
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "test-key", jwks.Keys[0].Kid)

	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+"/metrics", nil)
	resp := e.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.Contains(t, string(body), `path="GET /livez"`)

	req, _ = http.NewRequest(http.MethodGet, e.srv.URL+"/swagger/doc.json", nil)
	resp = e.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	require.Contains(t, string(body), "/v1/invitations/complete")
}

func TestProtectedRoutesRequireSessionAndScope(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+"/v1/me", nil)
	resp := e.do(t, req)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "invalid_token")

	req, _ = http.NewRequest(http.MethodGet, e.srv.URL+"/v1/admin/admins", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp = e.do(t, req)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	member, _ := e.memberSession(t, "vendor@example.com")
	admin := e.adminSession(t, "boss@example.com")

	// Server side checks only.
	e.client.CheckScopes = false

	_, err := member.ListAdmins(ctx)
	requireAPIError(t, err, http.StatusForbidden, portalsdk.ErrorCodeInsufficientScope)

	_, err = admin.PortalAnalytics(ctx, portalsdk.AnalyticsQuery{})
	requireAPIError(t, err, http.StatusForbidden, portalsdk.ErrorCodeInsufficientScope)

	_, err = member.EnrollTOTP(ctx)
	requireAPIError(t, err, http.StatusForbidden, portalsdk.ErrorCodeInsufficientScope)

	e.client.CheckScopes = true
	_, err = member.ListAdmins(ctx)
	require.ErrorContains(t, err, "missing required scope(s): admin:read")

	me, err := admin.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "admin", me.Kind)
	require.Equal(t, "boss@example.com", me.Email)
	require.False(t, me.MustChangePassword)
}

func TestLogoutRevokesEverySession(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	first, _ := e.memberSession(t, "vendor@example.com")
	second := e.login(t, "member", "vendor@example.com")

	e.clock.Advance(time.Minute)
	require.NoError(t, first.Logout(ctx))

	_, err := first.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, portalsdk.ErrorCodeSessionRevoked)
	_, err = second.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, portalsdk.ErrorCodeSessionRevoked)

	fresh := e.login(t, "member", "vendor@example.com")
	me, err := fresh.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "member", me.Kind)
}

func TestLoginErrorsAndRateLimit(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.adminSession(t, "boss@example.com")

	_, err := e.client.Login(ctx, portalsdk.LoginRequest{Kind: "member", Email: "boss@example.com", Password: strongPassword})
	requireAPIError(t, err, http.StatusUnauthorized, portalsdk.ErrorCodeInvalidCredentials)

	_, err = e.client.Login(ctx, portalsdk.LoginRequest{Kind: "owner", Email: "boss@example.com", Password: strongPassword})
	requireAPIError(t, err, http.StatusBadRequest, portalsdk.ErrorCodeValidation)

	// adminSession used one attempt for this email, the two above make three.
	for range 2 {
		_, err = e.client.Login(ctx, portalsdk.LoginRequest{Kind: "admin", Email: "boss@example.com", Password: "Wrong-Horse-9!"})
		requireAPIError(t, err, http.StatusUnauthorized, portalsdk.ErrorCodeInvalidCredentials)
	}
	_, err = e.client.Login(ctx, portalsdk.LoginRequest{Kind: "admin", Email: "boss@example.com", Password: strongPassword})
	requireAPIError(t, err, http.StatusTooManyRequests, portalsdk.ErrorCodeRateLimited)

	// Another email has its own budget.
	_, err = e.client.Login(ctx, portalsdk.LoginRequest{Kind: "admin", Email: "other@example.com", Password: strongPassword})
	requireAPIError(t, err, http.StatusUnauthorized, portalsdk.ErrorCodeInvalidCredentials)
}

func TestRequestBodyValidation(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	admin := e.adminSession(t, "boss@example.com")

	_, err := admin.InviteAdmin(ctx, portalsdk.InviteAdminRequest{Email: "not-an-email", FullName: "X"})
	requireAPIError(t, err, http.StatusBadRequest, portalsdk.ErrorCodeValidation)

	_, err = admin.InviteAdmin(ctx, portalsdk.InviteAdminRequest{Email: "boss@example.com", FullName: "Again"})
	requireAPIError(t, err, http.StatusConflict, portalsdk.ErrorCodeEmailTaken)

	req, _ := http.NewRequest(http.MethodPost, e.srv.URL+"/v1/admin/admins",
		strings.NewReader(`{"email":"x@example.com","full_name":"X","role":"owner"}`))
	req.Header.Set("Authorization", "Bearer "+admin.AccessToken())
	resp := e.do(t, req)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body portalsdk.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, portalsdk.ErrorCodeInvalidRequest, body.Error)
	require.Contains(t, body.Details, "role")
}
