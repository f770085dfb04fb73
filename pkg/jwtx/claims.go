package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a portal or back office session token lives.
const DefaultSessionTTL = 8 * time.Hour

// Claims are the session claims the portal signs for both account classes.
type Claims struct {
	jwt.RegisteredClaims

	// Kind is the account class, "admin" or "member".
	Kind string `json:"kind"`

	// AccountID is the profile row id, Subject carries the identity id.
	AccountID string `json:"account_id"`

	// Scopes granted to the session, e.g. "admin:read admin:write".
	Scopes []string `json:"scopes,omitempty"`

	// Authentication methods used: "pwd", "otp".
	AMR []string `json:"amr,omitempty"`

	// MustChangePassword tells the back office to force the rotation screen.
	MustChangePassword bool `json:"must_change_password,omitempty"`
}

// SessionParams is everything needed to mint a session token.
type SessionParams struct {
	Subject            string
	Kind               string
	AccountID          string
	Scopes             []string
	AMR                []string
	MustChangePassword bool

	Issuer   string
	Audience []string
	TTL      time.Duration
	Now      time.Time
}

// NewSessionClaims builds claims with iat/nbf/exp derived from p.Now.
func NewSessionClaims(p SessionParams) Claims {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.Subject,
			Audience:  jwt.ClaimStrings(p.Audience),
			IssuedAt:  jwt.NewNumericDate(p.Now),
			NotBefore: jwt.NewNumericDate(p.Now),
			ExpiresAt: jwt.NewNumericDate(p.Now.Add(ttl)),
			ID:        NewJTI(),
		},
		Kind:               p.Kind,
		AccountID:          p.AccountID,
		Scopes:             p.Scopes,
		AMR:                p.AMR,
		MustChangePassword: p.MustChangePassword,
	}
}

// NewJTI returns a random URL-safe token id.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasScope reports whether scope was granted.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// IssuedAtTime returns iat or the zero time.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience passes when any expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry checks exp and nbf against now with the given leeway.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
