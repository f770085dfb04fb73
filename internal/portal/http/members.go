package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
)

// MemberHandler covers self-registration and the member approval gate.
type MemberHandler struct {
	Members     *service.MemberService
	Invitations *service.InvitationService
}

// HandleRegister handles POST /v1/members/register
//
//	@Summary		Register as a member
//	@Description	Creates a member awaiting approval and notifies the active admins.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			body	body		portalsdk.RegisterRequest	true	"Registration"
//	@Success		201		{object}	portalsdk.RegisterResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse	"Invalid input"
//	@Failure		409		{object}	portalsdk.ErrorResponse	"Email already in use"
//	@Router			/v1/members/register [post].
func (h *MemberHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := h.Members.Register(r.Context(), service.RegisterMemberRequest{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, portalsdk.RegisterResponse{
		Member:         memberResponse(res.Member),
		AdminsNotified: res.AdminNotification.Sent,
	})
}

// HandleInvite handles POST /v1/admin/members
//
//	@Summary		Create a member
//	@Description	Creates the member and emails a setup link. auto_approve lets the member in as soon as setup completes.
//	@Tags			Members
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		portalsdk.InviteMemberRequest	true	"New member"
//	@Success		201		{object}	portalsdk.MemberInvitationResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse	"Invalid input"
//	@Failure		409		{object}	portalsdk.ErrorResponse	"Email already in use"
//	@Router			/v1/admin/members [post].
func (h *MemberHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	var req portalsdk.InviteMemberRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	inv, err := h.Invitations.InviteMember(r.Context(), service.InviteMemberRequest{
		Email:       req.Email,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		AutoApprove: req.AutoApprove,
		InvitedBy:   p.AccountID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, portalsdk.MemberInvitationResponse{
		IssuedInvitation: issuedInvitation(inv.IssuedInvitation),
		Member:           memberResponse(inv.Member),
		Invitation:       invitationResponse(inv.IssuedInvitation),
	})
}

// HandleList handles GET /v1/admin/members
//
//	@Summary		List members
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Param			pending	query	bool	false	"Only active members awaiting approval (true) or only approved ones (false)"
//	@Success		200		{array}	portalsdk.MemberResponse
//	@Router			/v1/admin/members [get].
func (h *MemberHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var f service.MemberFilter
	if v := r.URL.Query().Get("pending"); v != "" {
		pending, err := strconv.ParseBool(v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "validation_error", "pending must be true or false")
			return
		}
		f.Pending = &pending
	}

	members, err := h.Members.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, memberResponses(members))
}

// HandleGet handles GET /v1/admin/members/{id}
//
//	@Summary		Get a member
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Member ID"
//	@Success		200	{object}	portalsdk.MemberResponse
//	@Failure		404	{object}	portalsdk.ErrorResponse
//	@Router			/v1/admin/members/{id} [get].
func (h *MemberHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	m, err := h.Members.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, memberResponse(m))
}

// HandleApprove handles POST /v1/admin/members/{id}/approve
//
//	@Summary		Approve a member
//	@Description	Approving an approved member is a no-op reported with changed=false.
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Member ID"
//	@Success		200	{object}	portalsdk.ApprovalResponse
//	@Failure		404	{object}	portalsdk.ErrorResponse
//	@Router			/v1/admin/members/{id}/approve [post].
func (h *MemberHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	res, err := h.Members.Approve(r.Context(), r.PathValue("id"), p.AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.ApprovalResponse{
		Member:      memberResponse(res.Member),
		Changed:     res.Changed,
		EmailStatus: emailStatus(res.Notification),
	})
}

// HandleApproveAll handles POST /v1/admin/members/approve-all
//
//	@Summary		Approve every pending member
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.BulkApprovalResponse
//	@Router			/v1/admin/members/approve-all [post].
func (h *MemberHandler) HandleApproveAll(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}

	res, err := h.Members.BulkApprove(r.Context(), p.AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := portalsdk.BulkApprovalResponse{
		Approved:     len(res.Approved),
		EmailsSent:   res.EmailsSent,
		EmailsFailed: res.EmailsFailed,
		Results:      make([]portalsdk.BulkApprovalItem, len(res.Approved)),
	}
	for i, a := range res.Approved {
		out.Results[i] = portalsdk.BulkApprovalItem{
			MemberID:    a.Member.ID,
			Email:       a.Member.Email,
			EmailStatus: emailStatus(a.Notification),
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleSetActive handles POST /v1/admin/members/{id}/active
//
//	@Summary		Activate or deactivate a member
//	@Description	Deactivation ends every session of the member.
//	@Tags			Members
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Member ID"
//	@Param			body	body		portalsdk.SetActiveRequest	true	"New state"
//	@Success		200		{object}	portalsdk.MemberResponse
//	@Failure		404		{object}	portalsdk.ErrorResponse
//	@Router			/v1/admin/members/{id}/active [post].
func (h *MemberHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.SetActiveRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	m, err := h.Members.SetActive(r.Context(), r.PathValue("id"), req.Active)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, memberResponse(m))
}

// HandleDelete handles DELETE /v1/admin/members/{id}
//
//	@Summary		Delete a member
//	@Tags			Members
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Member ID"
//	@Success		204
//	@Failure		404	{object}	portalsdk.ErrorResponse
//	@Router			/v1/admin/members/{id} [delete].
func (h *MemberHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Members.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
