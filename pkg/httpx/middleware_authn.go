package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/partnerportal/pkg/jwtx"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer session token and puts its claims
// into the request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")))
			if err != nil {
				slogx.FromContext(r.Context()).Warn("session token rejected", slogx.Err(err))
				writeBearerError(w, "token verification failed")
				return
			}

			ctx := contextWithAuth(r.Context(), claims)
			ctx = slogx.With(ctx, "account_id", claims.AccountID, "kind", claims.Kind)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750 style challenge with a JSON body the dashboards can show.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
