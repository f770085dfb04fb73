package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
)

// SessionHandler signs accounts in and out.
type SessionHandler struct {
	Sessions *service.SessionService
}

// HandleLogin handles POST /v1/sessions
//
//	@Summary		Log in
//	@Description	Authenticates an admin or member. Admins with TOTP enabled must send the current code in otp.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			body	body		portalsdk.LoginRequest		true	"Credentials"
//	@Success		201		{object}	portalsdk.SessionResponse	"Session token"
//	@Failure		400		{object}	portalsdk.ErrorResponse		"Invalid input"
//	@Failure		401		{object}	portalsdk.ErrorResponse		"Invalid credentials"
//	@Failure		403		{object}	portalsdk.ErrorResponse		"Account deactivated or awaiting approval"
//	@Failure		409		{object}	portalsdk.ErrorResponse		"MFA code required"
//	@Failure		429		{object}	portalsdk.ErrorResponse		"Rate limit exceeded"
//	@Router			/v1/sessions [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	kind, _ := domain.ParseAccountKind(req.Kind)
	sess, err := h.Sessions.Login(r.Context(), service.LoginRequest{
		Kind:     kind,
		Email:    req.Email,
		Password: req.Password,
		OTP:      req.OTP,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, portalsdk.SessionResponse{
		AccessToken:        sess.AccessToken,
		TokenType:          "Bearer",
		ExpiresIn:          int(h.Sessions.TTL.Seconds()),
		ExpiresAt:          sess.ExpiresAt,
		Kind:               string(sess.Kind),
		AccountID:          sess.AccountID,
		Scope:              strings.Join(service.ScopesFor(sess.Kind), " "),
		MustChangePassword: sess.MustChangePassword,
	})
}

// HandleLogout handles DELETE /v1/sessions
//
//	@Summary		Log out
//	@Description	Revokes every session of the account, including the one making the call.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Success		204
//	@Failure		401	{object}	portalsdk.ErrorResponse	"Invalid or revoked session"
//	@Router			/v1/sessions [delete].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}
	if err := h.Sessions.Logout(r.Context(), p); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe handles GET /v1/me
//
//	@Summary		Current account
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.MeResponse
//	@Failure		401	{object}	portalsdk.ErrorResponse	"Invalid or revoked session"
//	@Failure		403	{object}	portalsdk.ErrorResponse	"Account deactivated"
//	@Router			/v1/me [get].
func (h *SessionHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.MeResponse{
		Kind:               string(p.Kind),
		AccountID:          p.AccountID,
		Email:              p.Email,
		FullName:           p.FullName,
		MustChangePassword: p.MustChangePassword,
		MFAEnabled:         p.MFAEnabled,
	})
}
