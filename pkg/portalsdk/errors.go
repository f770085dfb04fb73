package portalsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrorCodeValidation          = "validation_error"
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeInvalidInvitation   = "invalid_invitation"
	ErrorCodeInvitationExpired   = "invitation_expired"
	ErrorCodeInvalidCredentials  = "invalid_credentials"
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeInsufficientScope   = "insufficient_scope"
	ErrorCodeMFARequired         = "mfa_required"
	ErrorCodeAccountDeactivated  = "account_deactivated"
	ErrorCodeApprovalPending     = "approval_pending"
	ErrorCodeSessionRevoked      = "session_revoked"
	ErrorCodeSelfAction          = "self_action_forbidden"
	ErrorCodeEmailTaken          = "email_taken"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeUpstream            = "upstream_error"
	ErrorCodeRateLimited         = "rate_limit_exceeded"
	ErrorCodeServerError         = "server_error"
	ErrorCodeAlreadyBootstrapped = "already_bootstrapped"
	ErrorCodeSlugTaken           = "slug_taken"
	ErrorCodeDuplicateConversion = "duplicate_conversion"
	ErrorCodeInvalidTOTPCode     = "invalid_totp_code"
)

// APIError is a non-2xx response from the portal.
type APIError struct {
	StatusCode int
	Code       string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Details)
}

// IsCode reports whether err is an APIError carrying code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns an error body into an *APIError. Bodies that are
// not the portal's envelope fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Error,
			Details:    errResp.Details,
		}
	}

	// The invitation validator answers with its own shape.
	var inv ValidateInvitationResponse
	if err := json.Unmarshal(body, &inv); err == nil && inv.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Code: inv.Error}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Details:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
