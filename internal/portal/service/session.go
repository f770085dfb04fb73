package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/identity"
	"github.com/aussiebroadwan/partnerportal/internal/portal/metrics"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/pkg/jwtx"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
)

const (
	ScopeAdminRead   = "admin:read"
	ScopeAdminWrite  = "admin:write"
	ScopePortalRead  = "portal:read"
	ScopePortalWrite = "portal:write"
)

// ScopesFor returns the scopes a session of kind carries.
func ScopesFor(kind domain.AccountKind) []string {
	if kind == domain.KindAdmin {
		return []string{ScopeAdminRead, ScopeAdminWrite}
	}
	return []string{ScopePortalRead, ScopePortalWrite}
}

// SessionService signs in both account classes and re-checks sessions on
// every request. There is no server side session table: a token is valid
// while its signature, its account and the identity's revocation watermark
// all agree.
type SessionService struct {
	Store    store.Store
	Identity identity.Provider
	Signer   jwtx.Signer
	Metrics  *metrics.Metrics

	Issuer   string
	Audience []string
	TTL      time.Duration
	Now      func() time.Time
}

type LoginRequest struct {
	Kind     domain.AccountKind
	Email    string
	Password string
	OTP      string
}

type Session struct {
	AccessToken        string
	ExpiresAt          time.Time
	Kind               domain.AccountKind
	AccountID          string
	MustChangePassword bool
}

// Principal is the account behind a verified session.
type Principal struct {
	Kind               domain.AccountKind
	AccountID          string
	UserID             string
	Email              string
	FullName           string
	MustChangePassword bool
	MFAEnabled         bool
}

// Login authenticates against the identity provider and then applies the
// account gates: deactivated accounts lose their sessions, pending members
// are refused, admins with TOTP must present a code.
func (s *SessionService) Login(ctx context.Context, req LoginRequest) (Session, error) {
	l := slogx.FromContext(ctx)

	if !req.Kind.Valid() {
		return Session{}, invalid("invalid input", "kind must be admin or member")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return Session{}, invalid("invalid input", "email and password are required")
	}

	session, outcome, err := s.login(ctx, req)
	s.Metrics.Login(string(req.Kind), outcome)
	if err != nil {
		l.Info("login refused", slog.String("kind", string(req.Kind)), slog.String("outcome", outcome))
		return Session{}, err
	}
	l.Info("login succeeded", slog.String("kind", string(req.Kind)), slog.String("account_id", session.AccountID))
	return session, nil
}

func (s *SessionService) login(ctx context.Context, req LoginRequest) (Session, string, error) {
	user, err := s.Identity.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return Session{}, "invalid_credentials", ErrInvalidCredentials
		}
		return Session{}, "error", upstream("authenticate", err)
	}

	now := clock(s.Now)
	params := jwtx.SessionParams{
		Subject:  user.ID,
		Kind:     string(req.Kind),
		Scopes:   ScopesFor(req.Kind),
		AMR:      []string{"pwd"},
		Issuer:   s.Issuer,
		Audience: s.Audience,
		TTL:      s.TTL,
		Now:      now,
	}

	switch req.Kind {
	case domain.KindAdmin:
		a, err := s.Store.Admins().GetAdminByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return Session{}, "invalid_credentials", ErrInvalidCredentials
			}
			return Session{}, "error", upstream("load admin", err)
		}
		if !a.IsActive {
			s.revoke(ctx, user.ID)
			return Session{}, "deactivated", ErrAccountDeactivated
		}
		if a.HasMFA() {
			if strings.TrimSpace(req.OTP) == "" {
				return Session{}, "mfa_required", ErrMFARequired
			}
			if !validTOTP(req.OTP, *a.MFASecret, now) {
				return Session{}, "invalid_otp", ErrInvalidCredentials
			}
			params.AMR = append(params.AMR, "otp")
		}
		params.AccountID = a.ID
		params.MustChangePassword = a.MustChangePassword || a.PasswordExpired(now)

	case domain.KindMember:
		m, err := s.Store.Members().GetMemberByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return Session{}, "invalid_credentials", ErrInvalidCredentials
			}
			return Session{}, "error", upstream("load member", err)
		}
		if !m.IsActive {
			s.revoke(ctx, user.ID)
			return Session{}, "deactivated", ErrAccountDeactivated
		}
		if !m.IsApproved {
			return Session{}, "approval_pending", ErrApprovalPending
		}
		params.AccountID = m.ID
	}

	claims := jwtx.NewSessionClaims(params)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, "error", upstream("sign session", err)
	}

	return Session{
		AccessToken:        token,
		ExpiresAt:          claims.ExpiresAt.Time,
		Kind:               req.Kind,
		AccountID:          params.AccountID,
		MustChangePassword: params.MustChangePassword,
	}, "success", nil
}

func (s *SessionService) revoke(ctx context.Context, userID string) {
	if err := s.Identity.RevokeSessions(ctx, userID); err != nil {
		slogx.FromContext(ctx).Error("failed to revoke sessions", slog.String("user_id", userID), slogx.Err(err))
	}
}

// Authorize reloads the account behind verified claims. It rejects sessions
// whose account was deactivated, is no longer approved, or whose identity
// revoked sessions after the token was issued.
func (s *SessionService) Authorize(ctx context.Context, c jwtx.Claims) (Principal, error) {
	kind, ok := domain.ParseAccountKind(c.Kind)
	if !ok || c.AccountID == "" {
		return Principal{}, ErrInvalidCredentials
	}

	acct, err := loadAccount(ctx, s.Store, kind, c.AccountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Principal{}, ErrInvalidCredentials
		}
		return Principal{}, upstream("load account", err)
	}
	if acct.UserID != c.Subject {
		return Principal{}, ErrInvalidCredentials
	}
	if !acct.IsActive {
		return Principal{}, ErrAccountDeactivated
	}
	if !acct.IsApproved {
		return Principal{}, ErrApprovalPending
	}

	user, err := s.Identity.GetUser(ctx, acct.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return Principal{}, ErrInvalidCredentials
		}
		return Principal{}, upstream("load identity", err)
	}
	if !user.SessionValid(c.IssuedAtTime()) {
		return Principal{}, ErrSessionRevoked
	}

	p := Principal{
		Kind:      kind,
		AccountID: acct.ID,
		UserID:    acct.UserID,
		Email:     acct.Email,
		FullName:  acct.FullName,
	}
	if kind == domain.KindAdmin {
		a, err := s.Store.Admins().GetAdminByID(ctx, acct.ID)
		if err != nil {
			return Principal{}, upstream("load admin", err)
		}
		p.MustChangePassword = a.MustChangePassword || a.PasswordExpired(clock(s.Now))
		p.MFAEnabled = a.HasMFA()
	}
	return p, nil
}

// Logout revokes every session of the principal's identity.
func (s *SessionService) Logout(ctx context.Context, p Principal) error {
	if err := s.Identity.RevokeSessions(ctx, p.UserID); err != nil {
		return upstream("revoke sessions", err)
	}
	slogx.FromContext(ctx).Info("sessions revoked by logout", slog.String("account_id", p.AccountID))
	return nil
}
