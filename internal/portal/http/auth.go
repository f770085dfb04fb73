package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
)

type principalKey struct{}

// RequireActiveAccount runs after httpx.AuthnMiddleware. It reloads the
// account behind the token on every request, so deactivation and logout
// take effect immediately, and puts the service.Principal in the context.
func RequireActiveAccount(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := httpx.ClaimsFromContext(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing session")
				return
			}

			p, err := sessions.Authorize(r.Context(), claims)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalFrom returns the account placed by RequireActiveAccount.
func principalFrom(ctx context.Context) (service.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(service.Principal)
	return p, ok
}

// mustPrincipal writes a 401 and reports false when the route was wired
// without RequireActiveAccount.
func mustPrincipal(w http.ResponseWriter, r *http.Request) (service.Principal, bool) {
	p, ok := principalFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing session")
	}
	return p, ok
}
