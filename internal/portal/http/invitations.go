package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
)

// InvitationHandler serves the public setup flow and the back office
// invitation controls.
type InvitationHandler struct {
	Invitations *service.InvitationService
	Admins      *service.AdminService
}

// HandleValidate handles GET /v1/invitations/{token}
//
//	@Summary		Validate a setup token
//	@Description	Reports who a setup token belongs to without using it. Unknown and used tokens look the same.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string								true	"Setup token"
//	@Success		200		{object}	portalsdk.ValidateInvitationResponse	"Token is usable"
//	@Failure		400		{object}	portalsdk.ValidateInvitationResponse	"Token unknown or already used"
//	@Failure		410		{object}	portalsdk.ValidateInvitationResponse	"Token expired"
//	@Router			/v1/invitations/{token} [get].
func (h *InvitationHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	who, err := h.Invitations.ValidateInvitation(r.Context(), r.PathValue("token"))
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, portalsdk.ValidateInvitationResponse{
			Valid:     true,
			Kind:      string(who.Kind),
			Email:     who.Email,
			FullName:  who.FullName,
			ExpiresAt: &who.ExpiresAt,
		})
	case errors.Is(err, service.ErrInvitationExpired):
		httpx.WriteJSON(w, http.StatusGone, portalsdk.ValidateInvitationResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvitationInvalid):
		httpx.WriteJSON(w, http.StatusBadRequest, portalsdk.ValidateInvitationResponse{Error: err.Error()})
	default:
		writeServiceError(w, r, err)
	}
}

// HandleComplete handles POST /v1/invitations/complete
//
//	@Summary		Complete account setup
//	@Description	Sets the password of an invited account. The token works once.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			body	body		portalsdk.CompleteSetupRequest	true	"Token and new password"
//	@Success		200		{object}	portalsdk.CompleteSetupResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse	"Invalid token or password"
//	@Failure		410		{object}	portalsdk.ErrorResponse	"Token expired"
//	@Failure		502		{object}	portalsdk.ErrorResponse	"Identity provider failure"
//	@Router			/v1/invitations/complete [post].
func (h *InvitationHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.CompleteSetupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := h.Invitations.CompleteSetup(r.Context(), req.Token, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.CompleteSetupResponse{
		Success: true,
		Message: "Account setup complete. You can now sign in.",
		Kind:    string(res.Kind),
		Email:   res.Email,
	})
}

// HandleRegenerate handles POST /v1/admin/{kind}/{id}/invitation
//
//	@Summary		Regenerate a setup link
//	@Description	Supersedes every unused token of the account and sends a new link.
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			kind	path		string	true	"admins or members"
//	@Param			id		path		string	true	"Account ID"
//	@Success		201		{object}	portalsdk.InvitationResponse
//	@Failure		404		{object}	portalsdk.ErrorResponse	"Unknown account"
//	@Router			/v1/admin/{kind}/{id}/invitation [post].
func (h *InvitationHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	kind, ok := domain.ParseAccountKind(r.PathValue("kind"))
	if !ok {
		writeServiceError(w, r, service.ErrNotFound)
		return
	}

	inv, err := h.Invitations.RegenerateInvitation(r.Context(), kind, r.PathValue("id"), p.AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, invitationResponse(inv))
}

// HandleStatus handles GET /v1/admin/admins/{id}/invitation
//
//	@Summary		Admin invitation status
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Admin ID"
//	@Success		200	{object}	portalsdk.InvitationStatusResponse
//	@Failure		404	{object}	portalsdk.ErrorResponse	"Unknown admin"
//	@Router			/v1/admin/admins/{id}/invitation [get].
func (h *InvitationHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.Admins.GetInvitationStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.InvitationStatusResponse{
		Pending:   st.Pending,
		CreatedAt: st.CreatedAt,
		ExpiresAt: st.ExpiresAt,
	})
}
