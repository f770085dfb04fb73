package http

import (
	"net/http"

	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
)

// AdminHandler is the back office view of admin accounts.
type AdminHandler struct {
	Admins      *service.AdminService
	Invitations *service.InvitationService
}

// HandleInvite handles POST /v1/admin/admins
//
//	@Summary		Invite an admin
//	@Description	Creates the admin account and emails a single use setup link. The email result is reported, not enforced.
//	@Tags			Admins
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		portalsdk.InviteAdminRequest	true	"New admin"
//	@Success		201		{object}	portalsdk.AdminInvitationResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse	"Invalid input"
//	@Failure		409		{object}	portalsdk.ErrorResponse	"Email already in use"
//	@Failure		502		{object}	portalsdk.ErrorResponse	"Identity provider failure"
//	@Router			/v1/admin/admins [post].
func (h *AdminHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	var req portalsdk.InviteAdminRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	inv, err := h.Invitations.InviteAdmin(r.Context(), service.InviteAdminRequest{
		Email:     req.Email,
		FullName:  req.FullName,
		InvitedBy: p.AccountID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, portalsdk.AdminInvitationResponse{
		IssuedInvitation: issuedInvitation(inv.IssuedInvitation),
		Admin:            adminResponse(inv.Admin),
		Invitation:       invitationResponse(inv.IssuedInvitation),
	})
}

// HandleList handles GET /v1/admin/admins
//
//	@Summary		List admins
//	@Tags			Admins
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	portalsdk.AdminResponse
//	@Router			/v1/admin/admins [get].
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Admins.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminResponses(admins))
}

// HandleGet handles GET /v1/admin/admins/{id}
//
//	@Summary		Get an admin
//	@Tags			Admins
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Admin ID"
//	@Success		200	{object}	portalsdk.AdminResponse
//	@Failure		404	{object}	portalsdk.ErrorResponse
//	@Router			/v1/admin/admins/{id} [get].
func (h *AdminHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.Admins.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminResponse(a))
}

// HandleSetActive handles POST /v1/admin/admins/{id}/active
//
//	@Summary		Activate or deactivate an admin
//	@Description	Deactivation ends every session of the admin. Admins cannot change their own state.
//	@Tags			Admins
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Admin ID"
//	@Param			body	body		portalsdk.SetActiveRequest	true	"New state"
//	@Success		200		{object}	portalsdk.AdminResponse
//	@Failure		403		{object}	portalsdk.ErrorResponse	"Self action"
//	@Failure		404		{object}	portalsdk.ErrorResponse
//	@Router			/v1/admin/admins/{id}/active [post].
func (h *AdminHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	var req portalsdk.SetActiveRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	a, err := h.Admins.SetActive(r.Context(), p.AccountID, r.PathValue("id"), req.Active)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminResponse(a))
}

// HandleDelete handles DELETE /v1/admin/admins/{id}
//
//	@Summary		Delete an admin
//	@Tags			Admins
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Admin ID"
//	@Success		204
//	@Failure		403	{object}	portalsdk.ErrorResponse	"Self action"
//	@Failure		404	{object}	portalsdk.ErrorResponse
//	@Router			/v1/admin/admins/{id} [delete].
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}
	if err := h.Admins.Delete(r.Context(), p.AccountID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleChangePassword handles POST /v1/me/password
//
//	@Summary		Change own password
//	@Description	Clears the forced rotation flag and restarts the password expiry window.
//	@Tags			Admins
//	@Security		BearerAuth
//	@Accept			json
//	@Param			body	body	portalsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		204
//	@Failure		400	{object}	portalsdk.ErrorResponse	"Password policy not met"
//	@Failure		401	{object}	portalsdk.ErrorResponse	"Current password wrong"
//	@Router			/v1/me/password [post].
func (h *AdminHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	var req portalsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := h.Admins.ChangePassword(r.Context(), p.AccountID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
