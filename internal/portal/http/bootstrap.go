package http

import (
	"net/http"

	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
)

type BootstrapHandler struct {
	Bootstrap *service.BootstrapService
}

// ServeHTTP creates the first admin.
//
//	@Summary		Bootstrap the portal
//	@Description	Creates the first admin with a password, no invitation. Only available while a bootstrap token is configured and no admin exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		portalsdk.BootstrapRequest	true	"First admin"
//	@Success		201					{object}	portalsdk.AdminResponse
//	@Failure		400					{object}	portalsdk.ErrorResponse	"Invalid input"
//	@Failure		401					{object}	portalsdk.ErrorResponse	"Missing or wrong bootstrap token"
//	@Failure		404					{object}	portalsdk.ErrorResponse	"Bootstrap not enabled"
//	@Failure		409					{object}	portalsdk.ErrorResponse	"Already bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.BootstrapRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	admin, err := h.Bootstrap.Bootstrap(r.Context(), r.Header.Get("X-Bootstrap-Token"), req.Email, req.FullName, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("portal bootstrapped", "admin_id", admin.ID)
	httpx.WriteJSON(w, http.StatusCreated, adminResponse(admin))
}
