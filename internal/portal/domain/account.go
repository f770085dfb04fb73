package domain

import (
	"strings"
	"time"
)

// AccountKind is the class of a portal account.
type AccountKind string

const (
	KindAdmin  AccountKind = "admin"
	KindMember AccountKind = "member"
)

func (k AccountKind) Valid() bool { return k == KindAdmin || k == KindMember }

func (k AccountKind) String() string { return string(k) }

// ParseAccountKind accepts "admin"/"admins" and "member"/"members", the
// second form being what appears in URLs.
func ParseAccountKind(s string) (AccountKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "admins":
		return KindAdmin, true
	case "member", "members":
		return KindMember, true
	}
	return "", false
}

// NormalizeEmail is applied to every email before it is stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AdminUser is a back office account.
type AdminUser struct {
	ID                 string
	UserID             string // identity id
	Email              string
	FullName           string
	IsActive           bool
	MustChangePassword bool
	PasswordExpiresAt  *time.Time
	MFAEnabled         *time.Time // when TOTP was enabled
	MFASecret          *string    // base32
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasMFA reports whether TOTP is switched on.
func (a AdminUser) HasMFA() bool { return a.MFAEnabled != nil && a.MFASecret != nil }

// PasswordExpired reports whether the password is past its max age.
func (a AdminUser) PasswordExpired(now time.Time) bool {
	return a.PasswordExpiresAt != nil && now.After(*a.PasswordExpiresAt)
}

// Member is a vendor/affiliate portal account.
type Member struct {
	ID          string
	UserID      string // identity id
	Email       string
	FullName    string
	CompanyName string
	Phone       string
	IsActive    bool
	IsApproved  bool
	ApprovedAt  *time.Time
	ApprovedBy  string // admin account id, empty until approved
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MemberState is the approval gate state derived from the two flags.
type MemberState string

const (
	MemberPending     MemberState = "pending"
	MemberActive      MemberState = "active"
	MemberDeactivated MemberState = "deactivated"
)

func (m Member) State() MemberState {
	switch {
	case !m.IsActive:
		return MemberDeactivated
	case !m.IsApproved:
		return MemberPending
	default:
		return MemberActive
	}
}

// AccountEmail is one row of the cross-class email lookup.
type AccountEmail struct {
	Kind      AccountKind
	AccountID string
	Email     string
}

// Identity is a credential record held by the built-in identity provider.
type Identity struct {
	ID                 string
	Email              string
	PasswordHash       string
	EmailConfirmed     bool
	SessionsValidAfter *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
