package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidTOTPCode   = errors.New("invalid_totp_code")
	ErrMFANotEnrolled    = errors.New("mfa_not_enrolled")
	ErrMFANotEnabled     = errors.New("mfa_not_enabled")
	ErrMFAAlreadyEnabled = errors.New("mfa_already_enabled")
)

// MFAService manages TOTP for admins.
type MFAService struct {
	Store  store.Store
	Issuer string // shown in authenticator apps
	Now    func() time.Time
}

// Enroll stores a fresh TOTP secret. MFA stays off until Verify succeeds,
// so enrolling twice simply replaces the pending secret.
func (s *MFAService) Enroll(ctx context.Context, adminID string) (domain.MFAEnrollment, error) {
	a, err := s.Store.Admins().GetAdminByID(ctx, adminID)
	if err != nil {
		return domain.MFAEnrollment{}, notFound(err)
	}
	if a.HasMFA() {
		return domain.MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: a.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollment{}, upstream("generate totp key", err)
	}
	if err := s.Store.Admins().UpdateAdminMFASecret(ctx, a.ID, key.Secret(), clock(s.Now)); err != nil {
		return domain.MFAEnrollment{}, upstream("store totp secret", err)
	}

	return domain.MFAEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: a.Email,
	}, nil
}

// Verify checks a code against the pending secret and switches MFA on.
func (s *MFAService) Verify(ctx context.Context, adminID, code string) error {
	a, err := s.Store.Admins().GetAdminByID(ctx, adminID)
	if err != nil {
		return notFound(err)
	}
	if a.HasMFA() {
		return ErrMFAAlreadyEnabled
	}
	if a.MFASecret == nil || *a.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if !validTOTP(code, *a.MFASecret, clock(s.Now)) {
		return ErrInvalidTOTPCode
	}
	if err := s.Store.Admins().EnableAdminMFA(ctx, a.ID, clock(s.Now)); err != nil {
		return upstream("enable mfa", err)
	}
	slogx.FromContext(ctx).Info("admin mfa enabled", slog.String("admin_id", a.ID))
	return nil
}

// Disable turns MFA off after checking a current code.
func (s *MFAService) Disable(ctx context.Context, adminID, code string) error {
	a, err := s.Store.Admins().GetAdminByID(ctx, adminID)
	if err != nil {
		return notFound(err)
	}
	if !a.HasMFA() {
		return ErrMFANotEnabled
	}
	if !validTOTP(code, *a.MFASecret, clock(s.Now)) {
		return ErrInvalidTOTPCode
	}
	if err := s.Store.Admins().DisableAdminMFA(ctx, a.ID, clock(s.Now)); err != nil {
		return upstream("disable mfa", err)
	}
	slogx.FromContext(ctx).Info("admin mfa disabled", slog.String("admin_id", a.ID))
	return nil
}

// validTOTP accepts the current code and its neighbours either side.
func validTOTP(code, secret string, now time.Time) bool {
	ok, err := totp.ValidateCustom(strings.TrimSpace(code), secret, now, totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
