package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	ErrNotFound           = errors.New("not_found")
	ErrInvitationInvalid  = errors.New("invalid_invitation")
	ErrInvitationExpired  = errors.New("invitation_expired")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrAccountDeactivated = errors.New("account_deactivated")
	ErrApprovalPending    = errors.New("approval_pending")
	ErrMFARequired        = errors.New("mfa_required")
	ErrSessionRevoked     = errors.New("session_revoked")
	ErrSelfAction         = errors.New("self_action_forbidden")
)

// ValidationError reports bad caller input. Details lists each problem.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

func invalid(msg string, details ...string) error {
	return &ValidationError{Message: msg, Details: details}
}

// ConflictError is returned when an email already belongs to an account or
// an identity.
type ConflictError struct {
	Email string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("an account with email %s already exists", e.Email)
}

// UpstreamError wraps a failure of a collaborator: the identity provider or
// the database. Op names the step that failed.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

// checkEmail normalises and validates an email address.
func checkEmail(email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", invalid("invalid input", "email is required")
	}
	if validate.Var(email, "email") != nil {
		return "", invalid("invalid input", "email is not a valid address")
	}
	return email, nil
}

// checkPassword applies the central policy.
func checkPassword(p domain.PasswordPolicy, password string) error {
	if password == "" {
		return invalid("invalid password", "password is required")
	}
	if unmet := p.Unmet(password); len(unmet) > 0 {
		details := make([]string, len(unmet))
		for i, u := range unmet {
			details[i] = "password needs " + u
		}
		return invalid("password does not meet the policy", details...)
	}
	return nil
}
