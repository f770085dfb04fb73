package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
)

// sentinelStatus maps service sentinels to their HTTP status. The error
// code written is the sentinel's text.
var sentinelStatus = []struct {
	err    error
	status int
}{
	{service.ErrInvitationInvalid, http.StatusBadRequest},
	{service.ErrInvalidTOTPCode, http.StatusBadRequest},
	{service.ErrInvitationExpired, http.StatusGone},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrBootstrapDisabled, http.StatusNotFound},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrSessionRevoked, http.StatusUnauthorized},
	{service.ErrConversionKeyInvalid, http.StatusUnauthorized},
	{service.ErrBootstrapUnauthorized, http.StatusUnauthorized},
	{service.ErrAccountDeactivated, http.StatusForbidden},
	{service.ErrApprovalPending, http.StatusForbidden},
	{service.ErrSelfAction, http.StatusForbidden},
	{service.ErrMFARequired, http.StatusConflict},
	{service.ErrMFANotEnrolled, http.StatusConflict},
	{service.ErrMFANotEnabled, http.StatusConflict},
	{service.ErrMFAAlreadyEnabled, http.StatusConflict},
	{service.ErrSlugTaken, http.StatusConflict},
	{service.ErrDuplicateConversion, http.StatusConflict},
	{service.ErrBootstrapAlready, http.StatusConflict},
}

// writeServiceError turns a service error into the JSON error envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var (
		valErr      *service.ValidationError
		conflictErr *service.ConflictError
		upErr       *service.UpstreamError
	)
	switch {
	case errors.As(err, &valErr):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", valErr.Error())
		return
	case errors.As(err, &conflictErr):
		httpx.WriteError(w, http.StatusConflict, "email_taken", conflictErr.Error())
		return
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			httpx.WriteError(w, s.status, s.err.Error(), "")
			return
		}
	}

	if errors.As(err, &upErr) {
		log.Error("upstream failure", slog.String("op", upErr.Op), slogx.Err(upErr.Err))
		httpx.WriteError(w, http.StatusBadGateway, "upstream_error", upErr.Error())
		return
	}

	log.Error("unhandled service error", slogx.Err(err))
	httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
}

// writeBadRequest answers a body that could not be decoded.
func writeBadRequest(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
}
