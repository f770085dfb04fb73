package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCountersAndNilSafety(t *testing.T) {
	var nilMetrics *Metrics
	nilMetrics.InvitationIssued("admin")
	nilMetrics.EmailResult("x", nil)
	nilMetrics.MembersApproved(3)

	m := New("test", nil)
	m.InvitationIssued("admin")
	m.InvitationIssued("member")
	m.InvitationIssued("member")
	m.EmailResult("member_approved", nil)
	m.EmailResult("member_approved", errors.New("down"))
	m.MembersApproved(2)
	m.MembersApproved(0)
	m.Login("member", "approval_pending")

	require.InDelta(t, 2, testutil.ToFloat64(m.invitations.WithLabelValues("member")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.emails.WithLabelValues("member_approved", "failed")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(m.approvals), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.logins.WithLabelValues("member", "approval_pending")), 0)
}

func TestMiddlewareLabelsByPattern(t *testing.T) {
	m := New("test", nil)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := m.Middleware(mux)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/things/42", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)

	require.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))

	rr = httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rr.Body)
	require.Contains(t, string(body), `path="GET /v1/things/{id}"`)
	require.Contains(t, string(body), `build_info{version="test"} 1`)
}
