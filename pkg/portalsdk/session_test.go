package portalsdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionChecksScopesAndExpiry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"member","account_id":"m1","email":"a@example.com","full_name":"A"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL)
	s := client.NewSessionFromToken("tok", "portal:read portal:write", time.Now().Add(time.Hour))
	require.True(t, s.HasScope("portal:read"))
	require.False(t, s.HasScope("admin:read"))

	me, err := s.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "m1", me.AccountID)

	_, err = s.ListAdmins(context.Background())
	require.ErrorContains(t, err, "admin:read")
	require.Equal(t, int32(1), calls.Load())

	expired := client.NewSessionFromToken("tok", "portal:read", time.Now().Add(-time.Second))
	_, err = expired.Me(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)
	require.Equal(t, int32(1), calls.Load())
}

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{"envelope", http.StatusConflict, `{"error":"email_taken","details":"x"}`, ErrorCodeEmailTaken},
		{"invitation shape", http.StatusGone, `{"valid":false,"error":"invitation_expired"}`, ErrorCodeInvitationExpired},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, ErrorCodeServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := parseErrorResponse(&http.Response{StatusCode: tc.status}, []byte(tc.body))
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tc.status, apiErr.StatusCode)
			require.Equal(t, tc.code, apiErr.Code)
			require.True(t, IsCode(err, tc.code))
		})
	}
}

func TestAnalyticsQueryEncode(t *testing.T) {
	t.Parallel()

	require.Empty(t, AnalyticsQuery{}.encode())

	from := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	q := AnalyticsQuery{From: from, PartnerIDs: []string{"p1", "p2"}, MemberID: "m1"}
	v, err := url.ParseQuery(q.encode()[1:])
	require.NoError(t, err)
	require.Equal(t, "2026-01-02T03:04:05Z", v.Get("from"))
	require.Equal(t, []string{"p1", "p2"}, v["partner_id"])
	require.Equal(t, "m1", v.Get("member_id"))
	require.Empty(t, v.Get("to"))
}
