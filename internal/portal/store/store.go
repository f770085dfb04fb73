package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories are reached via
// methods so a Tx exposes the exact same surface and nobody opens a
// transaction inside a transaction by accident.
type Store interface {
	Identities() Identities
	Accounts() Accounts
	Admins() Admins
	Members() Members
	Invitations() Invitations
	Partners() Partners
	Clicks() Clicks
	Conversions() Conversions

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	// Inside fn only the tx repos may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Identities backs the built-in identity provider.
type Identities interface {
	CreateIdentity(ctx context.Context, id domain.Identity) error
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)
	UpdateIdentityPassword(ctx context.Context, id, hash string, now time.Time) error

	// RevokeIdentitySessions sets sessions_valid_after so every session
	// issued before now is rejected.
	RevokeIdentitySessions(ctx context.Context, id string, now time.Time) error
	DeleteIdentity(ctx context.Context, id string) error
}

// Accounts is the shared email lookup across both account classes.
type Accounts interface {
	// FindAccountByEmail returns ErrNotFound when neither class has email.
	FindAccountByEmail(ctx context.Context, email string) (domain.AccountEmail, error)
}

type Admins interface {
	CreateAdmin(ctx context.Context, a domain.AdminUser) error
	GetAdminByID(ctx context.Context, id string) (domain.AdminUser, error)
	GetAdminByUserID(ctx context.Context, userID string) (domain.AdminUser, error)
	ListAdmins(ctx context.Context) ([]domain.AdminUser, error)
	CountAdmins(ctx context.Context) (int64, error)
	SetAdminActive(ctx context.Context, id string, active bool, now time.Time) error

	// SetAdminPasswordChanged clears the forced rotation flag and sets the
	// next expiry (nil for none).
	SetAdminPasswordChanged(ctx context.Context, id string, expiresAt *time.Time, now time.Time) error

	// FlagExpiredAdminPasswords sets must_change_password on every admin
	// whose password expired before now and returns how many changed.
	FlagExpiredAdminPasswords(ctx context.Context, now time.Time) (int64, error)

	UpdateAdminMFASecret(ctx context.Context, id, secret string, now time.Time) error
	EnableAdminMFA(ctx context.Context, id string, now time.Time) error
	DisableAdminMFA(ctx context.Context, id string, now time.Time) error
	DeleteAdmin(ctx context.Context, id string) error
}

type Members interface {
	CreateMember(ctx context.Context, m domain.Member) error
	GetMemberByID(ctx context.Context, id string) (domain.Member, error)
	GetMemberByUserID(ctx context.Context, userID string) (domain.Member, error)

	// ListMembers filters when pending is non-nil. Pending rows are
	// unapproved and active; the false filter returns approved rows.
	ListMembers(ctx context.Context, pending *bool) ([]domain.Member, error)

	// ApproveMember flips is_approved only when it is still false and
	// reports whether this call changed it.
	ApproveMember(ctx context.Context, id, approvedBy string, now time.Time) (bool, error)

	// ApprovePendingMembers approves every active unapproved member and
	// returns the rows this call changed.
	ApprovePendingMembers(ctx context.Context, approvedBy string, now time.Time) ([]domain.Member, error)

	SetMemberActive(ctx context.Context, id string, active bool, now time.Time) error
	DeleteMember(ctx context.Context, id string) error
}

// Invitations stores setup tokens. Rows are never deleted.
type Invitations interface {
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetUnusedInvitationByTokenHash does not filter on expiry so callers
	// can tell an expired token from an unknown one.
	GetUnusedInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// ClaimInvitation marks the token used if, and only if, it is still
	// unused. Exactly one concurrent caller gets true.
	ClaimInvitation(ctx context.Context, id string, now time.Time) (bool, error)

	// ReleaseInvitation undoes a claim. It returns ErrNotFound when the token
	// is not claimed or a newer token for the same account exists.
	ReleaseInvitation(ctx context.Context, id string) error

	// InvalidateAccountInvitations marks every unused token of the owner as
	// used and returns how many were superseded.
	InvalidateAccountInvitations(ctx context.Context, kind domain.AccountKind, accountID string, now time.Time) (int64, error)

	// GetActiveInvitationForAccount returns the newest unused, unexpired
	// token of the owner.
	GetActiveInvitationForAccount(ctx context.Context, kind domain.AccountKind, accountID string, now time.Time) (domain.Invitation, error)
}

type Partners interface {
	CreatePartner(ctx context.Context, p domain.Partner) error
	GetPartnerByID(ctx context.Context, id string) (domain.Partner, error)
	GetPartnerBySlug(ctx context.Context, slug string) (domain.Partner, error)

	// ListPartners returns every partner, or only those owned by memberID
	// when it is non-empty.
	ListPartners(ctx context.Context, memberID string) ([]domain.Partner, error)
	UpdatePartner(ctx context.Context, p domain.Partner) error
	DeletePartner(ctx context.Context, id string) error

	// PartnerStats aggregates clicks and conversions in [from, to).
	PartnerStats(ctx context.Context, memberID string, from, to time.Time) ([]domain.PartnerStats, error)
}

type Clicks interface {
	CreateClick(ctx context.Context, c domain.Click) error
	GetClickByID(ctx context.Context, id string) (domain.Click, error)
	DeleteClicksBefore(ctx context.Context, before time.Time) (int64, error)
}

type Conversions interface {
	// CreateConversion returns ErrAlreadyExists for a repeated reference.
	CreateConversion(ctx context.Context, c domain.Conversion) error
}
