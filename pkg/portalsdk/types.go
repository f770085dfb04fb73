package portalsdk

import (
	"time"

	"github.com/aussiebroadwan/partnerportal/pkg/jwtx"
)

// ErrorResponse is the envelope of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// EmailStatus reports the best-effort email an operation triggered.
type EmailStatus struct {
	EmailSent  bool   `json:"email_sent"`
	EmailError string `json:"email_error,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

type JWKSResponse jwtx.JWKS

// ============================================================================
// Sessions
// ============================================================================

type LoginRequest struct {
	Kind     string `json:"kind"` // "admin" or "member"
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

type SessionResponse struct {
	AccessToken        string    `json:"access_token"`
	TokenType          string    `json:"token_type"`
	ExpiresIn          int       `json:"expires_in"`
	ExpiresAt          time.Time `json:"expires_at"`
	Kind               string    `json:"kind"`
	AccountID          string    `json:"account_id"`
	Scope              string    `json:"scope"`
	MustChangePassword bool      `json:"must_change_password"`
}

type MeResponse struct {
	Kind               string `json:"kind"`
	AccountID          string `json:"account_id"`
	Email              string `json:"email"`
	FullName           string `json:"full_name"`
	MustChangePassword bool   `json:"must_change_password"`
	MFAEnabled         bool   `json:"mfa_enabled"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type BootstrapRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// ============================================================================
// Accounts
// ============================================================================

type AdminResponse struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	FullName           string     `json:"full_name"`
	IsActive           bool       `json:"is_active"`
	MustChangePassword bool       `json:"must_change_password"`
	MFAEnabled         bool       `json:"mfa_enabled"`
	PasswordExpiresAt  *time.Time `json:"password_expires_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type MemberResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	CompanyName string     `json:"company_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsApproved  bool       `json:"is_approved"`
	State       string     `json:"state"` // pending, active or deactivated
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ApprovedBy  string     `json:"approved_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type RegisterResponse struct {
	Member         MemberResponse `json:"member"`
	AdminsNotified bool           `json:"admins_notified"`
}

type ApprovalResponse struct {
	Member  MemberResponse `json:"member"`
	Changed bool           `json:"changed"`
	EmailStatus
}

type BulkApprovalItem struct {
	MemberID string `json:"member_id"`
	Email    string `json:"email"`
	EmailStatus
}

type BulkApprovalResponse struct {
	Approved     int                `json:"approved"`
	EmailsSent   int                `json:"emails_sent"`
	EmailsFailed int                `json:"emails_failed"`
	Results      []BulkApprovalItem `json:"results"`
}

// ============================================================================
// Invitations
// ============================================================================

type InviteAdminRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type InviteMemberRequest struct {
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	AutoApprove bool   `json:"auto_approve"`
}

// InvitationResponse carries the setup link. The link embeds the raw token
// and is only ever returned once.
type InvitationResponse struct {
	Kind      string    `json:"kind"`
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	SetupLink string    `json:"setup_link"`
	ExpiresAt time.Time `json:"expires_at"`
	EmailStatus
}

// IssuedInvitation is the flat issuance summary returned next to the new
// account. The raw token appears here once and is never stored.
type IssuedInvitation struct {
	Success         bool      `json:"success"`
	InvitationToken string    `json:"invitation_token"`
	TokenExpiresAt  time.Time `json:"token_expires_at"`
	SetupLink       string    `json:"setup_link"`
	EmailStatus
}

type AdminInvitationResponse struct {
	IssuedInvitation
	Admin      AdminResponse      `json:"admin"`
	Invitation InvitationResponse `json:"invitation"`
}

type MemberInvitationResponse struct {
	IssuedInvitation
	Member     MemberResponse     `json:"member"`
	Invitation InvitationResponse `json:"invitation"`
}

type ValidateInvitationResponse struct {
	Valid     bool       `json:"valid"`
	Kind      string     `json:"kind,omitempty"`
	Email     string     `json:"email,omitempty"`
	FullName  string     `json:"full_name,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type CompleteSetupRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type CompleteSetupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Email   string `json:"email"`
}

type InvitationStatusResponse struct {
	Pending   bool       `json:"pending"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ============================================================================
// MFA
// ============================================================================

type TOTPEnrollResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
	Issuer     string `json:"issuer"`
	Account    string `json:"account"`
}

type TOTPCodeRequest struct {
	Code string `json:"code"`
}

// ============================================================================
// Affiliates
// ============================================================================

type PartnerRequest struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Website        string `json:"website,omitempty"`
	CommissionRate int    `json:"commission_rate"` // basis points
	MemberID       string `json:"member_id,omitempty"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

// PartnerPatchRequest changes only the fields present.
type PartnerPatchRequest struct {
	Name           *string `json:"name,omitempty"`
	Slug           *string `json:"slug,omitempty"`
	Website        *string `json:"website,omitempty"`
	CommissionRate *int    `json:"commission_rate,omitempty"`
	MemberID       *string `json:"member_id,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type PartnerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Website        string    `json:"website,omitempty"`
	CommissionRate int       `json:"commission_rate"`
	MemberID       string    `json:"member_id,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ClickRequest struct {
	VisitorID   string `json:"visitor_id,omitempty"`
	LandingPath string `json:"landing_path,omitempty"`
	Referrer    string `json:"referrer,omitempty"`
}

type ClickResponse struct {
	ClickID   string `json:"click_id"`
	VisitorID string `json:"visitor_id"`
}

type ConversionRequest struct {
	Slug        string `json:"slug,omitempty"`
	ClickID     string `json:"click_id,omitempty"`
	Reference   string `json:"reference"`
	AmountCents int64  `json:"amount_cents"`
}

type ConversionResponse struct {
	ID        string `json:"id"`
	PartnerID string `json:"partner_id"`
}

type PartnerStatsResponse struct {
	PartnerID       string  `json:"partner_id,omitempty"`
	PartnerName     string  `json:"partner_name,omitempty"`
	Slug            string  `json:"slug,omitempty"`
	Clicks          int64   `json:"clicks"`
	UniqueVisitors  int64   `json:"unique_visitors"`
	Conversions     int64   `json:"conversions"`
	ConversionRate  float64 `json:"conversion_rate"`
	RevenueCents    int64   `json:"revenue_cents"`
	CommissionCents int64   `json:"commission_cents"`
}

type AnalyticsResponse struct {
	From     time.Time              `json:"from"`
	To       time.Time              `json:"to"`
	Partners []PartnerStatsResponse `json:"partners"`
	Totals   PartnerStatsResponse   `json:"totals"`
}
