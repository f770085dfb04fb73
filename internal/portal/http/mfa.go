package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
)

// MFAHandler manages the calling admin's TOTP factor.
type MFAHandler struct {
	MFA *service.MFAService
}

// HandleEnroll handles POST /v1/me/mfa/totp/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret. It is not enforced until verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.TOTPEnrollResponse	"Secret and otpauth URL"
//	@Failure		401	{object}	portalsdk.ErrorResponse			"Invalid or missing session"
//	@Failure		409	{object}	portalsdk.ErrorResponse			"MFA already enabled"
//	@Router			/v1/me/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	enroll, err := h.MFA.Enroll(r.Context(), p.AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.TOTPEnrollResponse{
		Secret:     enroll.Secret,
		OTPAuthURL: enroll.URL,
		Issuer:     enroll.Issuer,
		Account:    enroll.Account,
	})
}

// HandleVerify handles POST /v1/me/mfa/totp/verify
//
//	@Summary		Verify TOTP code and enable MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			body	body	portalsdk.TOTPCodeRequest	true	"Current code"
//	@Success		204
//	@Failure		400	{object}	portalsdk.ErrorResponse	"Invalid code"
//	@Failure		409	{object}	portalsdk.ErrorResponse	"Not enrolled or already enabled"
//	@Router			/v1/me/mfa/totp/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	h.withCode(w, r, h.MFA.Verify)
}

// HandleDisable handles DELETE /v1/me/mfa/totp
//
//	@Summary		Disable TOTP MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			body	body	portalsdk.TOTPCodeRequest	true	"Current code"
//	@Success		204
//	@Failure		400	{object}	portalsdk.ErrorResponse	"Invalid code"
//	@Failure		409	{object}	portalsdk.ErrorResponse	"MFA not enabled"
//	@Router			/v1/me/mfa/totp [delete].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	h.withCode(w, r, h.MFA.Disable)
}

func (h *MFAHandler) withCode(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, adminID, code string) error,
) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	var req portalsdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := op(r.Context(), p.AccountID, req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
