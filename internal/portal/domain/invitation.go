package domain

import "time"

// DefaultInviteTTL applies to both account classes unless configured.
const DefaultInviteTTL = 7 * 24 * time.Hour

// Invitation is a single-use setup token record. Only the fingerprint of the
// raw token is stored.
type Invitation struct {
	ID        string
	Kind      AccountKind
	AccountID string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Expired reports whether now is strictly after the expiry instant.
func (i Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Usable reports whether the token would pass validation at now.
func (i Invitation) Usable(now time.Time) bool {
	return !i.Used && !i.Expired(now)
}
