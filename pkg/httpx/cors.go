package httpx

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// CORS lets the marketing frontend and the dashboards call the API from the
// browser. A "*" entry allows any origin without credentials.
func CORS(allowedOrigins []string) Middleware {
	opts := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		opts.AllowedOrigins = []string{"*"}
		opts.AllowCredentials = false
	}

	return cors.Handler(opts)
}
