package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
	"github.com/aussiebroadwan/partnerportal/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("first"), mw("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

type stubVerifier struct {
	claims jwtx.Claims
	err    error
}

func (s stubVerifier) Verify(string) (jwtx.Claims, error) { return s.claims, s.err }

func TestAuthnMiddleware(t *testing.T) {
	claims := jwtx.NewSessionClaims(jwtx.SessionParams{
		Subject:   "identity-1",
		Kind:      "admin",
		AccountID: "admin-1",
		Scopes:    []string{"admin:read"},
		Now:       time.Now(),
	})

	var seen jwtx.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.ClaimsFromContext(r.Context())
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(stubVerifier{claims: claims})(next).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("rejected token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(stubVerifier{err: errors.New("bad")})(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(stubVerifier{claims: claims})(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "admin-1", seen.AccountID)
	})
}

func TestRequireAnyScope(t *testing.T) {
	verifierWith := func(scopes ...string) jwtx.Verifier {
		return stubVerifier{claims: jwtx.Claims{Scopes: scopes}}
	}
	run := func(v jwtx.Verifier) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rec := httptest.NewRecorder()
		httpx.Chain(ok, httpx.AuthnMiddleware(v), httpx.RequireAnyScope("admin:write")).ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, run(verifierWith("admin:read", "admin:write")))
	require.Equal(t, http.StatusForbidden, run(verifierWith("portal:read")))
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}

	decode := func(raw string) (body, error) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &b)
		return b, err
	}

	b, err := decode(`{"email":"a@x.com"}`)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", b.Email)

	_, err = decode(``)
	require.Error(t, err)
	_, err = decode(`{"email":"a@x.com","admin":true}`)
	require.Error(t, err)
	_, err = decode(`{"email":"a"}{"email":"b"}`)
	require.Error(t, err)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusGone, "invitation_expired", "")

	require.Equal(t, http.StatusGone, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, map[string]string{"error": "invitation_expired"}, body)
}

func TestCORS(t *testing.T) {
	h := httpx.CORS([]string{"https://partners.example.com"})(ok)

	req := httptest.NewRequest(http.MethodOptions, "/v1/sessions", nil)
	req.Header.Set("Origin", "https://partners.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "https://partners.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
