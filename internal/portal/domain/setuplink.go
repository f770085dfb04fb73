package domain

import (
	"net/url"
	"strings"
)

// DefaultSetupURLTemplate is used when no template is configured.
const DefaultSetupURLTemplate = "http://localhost:3000/{kind}-setup?token={token}"

// SetupLink expands tmpl. {kind} becomes "admin" or "member" and {token} is
// query escaped, so the same template works in a path segment or a query.
func SetupLink(tmpl string, kind AccountKind, token string) string {
	if tmpl == "" {
		tmpl = DefaultSetupURLTemplate
	}
	return strings.NewReplacer(
		"{kind}", string(kind),
		"{token}", url.QueryEscape(token),
	).Replace(tmpl)
}
