package portalsdk

import (
	"context"
	"net/http"
)

// ChangePassword rotates the admin's own password.
// Requires: admin:write scope
func (s *Session) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/me/password", req, "admin:write")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// EnrollTOTP starts MFA enrollment. The secret only takes effect after
// VerifyTOTP.
// Requires: admin:write scope
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/me/mfa/totp/enroll", nil, "admin:write")
	if err != nil {
		return nil, err
	}

	var enroll TOTPEnrollResponse
	if err := decodeJSON(resp, &enroll, http.StatusOK); err != nil {
		return nil, err
	}
	return &enroll, nil
}

// VerifyTOTP enables MFA with a code from the enrolled secret.
// Requires: admin:write scope
func (s *Session) VerifyTOTP(ctx context.Context, code string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/me/mfa/totp/verify", TOTPCodeRequest{Code: code}, "admin:write")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// DisableTOTP turns MFA off. A current code is required.
// Requires: admin:write scope
func (s *Session) DisableTOTP(ctx context.Context, code string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/me/mfa/totp", TOTPCodeRequest{Code: code}, "admin:write")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
