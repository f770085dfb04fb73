package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
)

// visitorCookieMaxAge keeps a visitor recognisable across a typical sales cycle.
const visitorCookieMaxAge = 365 * 24 * time.Hour

// PartnerHandler serves partner management and analytics for admins and
// the member portal.
type PartnerHandler struct {
	Affiliates *service.AffiliateService
}

// HandleCreate handles POST /v1/admin/partners
//
//	@Summary		Create a partner
//	@Tags			Affiliates
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		portalsdk.PartnerRequest	true	"Partner"
//	@Success		201		{object}	portalsdk.PartnerResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse	"Invalid input"
//	@Failure		409		{object}	portalsdk.ErrorResponse	"Slug taken"
//	@Router			/v1/admin/partners [post].
func (h *PartnerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.PartnerRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	p, err := h.Affiliates.CreatePartner(r.Context(), service.PartnerInput{
		Name:           req.Name,
		Slug:           req.Slug,
		Website:        req.Website,
		CommissionRate: req.CommissionRate,
		MemberID:       req.MemberID,
		IsActive:       req.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, partnerResponse(p))
}

// HandleList handles GET /v1/admin/partners
//
//	@Summary		List partners
//	@Tags			Affiliates
//	@Security		BearerAuth
//	@Produce		json
//	@Param			member_id	query	string	false	"Only partners owned by this member"
//	@Success		200			{array}	portalsdk.PartnerResponse
//	@Router			/v1/admin/partners [get].
func (h *PartnerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("member_id"))
}

// HandlePortalList handles GET /v1/portal/partners
//
//	@Summary		List own partners
//	@Description	Partners owned by the calling member.
//	@Tags			Portal
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}	portalsdk.PartnerResponse
//	@Router			/v1/portal/partners [get].
func (h *PartnerHandler) HandlePortalList(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}
	h.list(w, r, p.AccountID)
}

func (h *PartnerHandler) list(w http.ResponseWriter, r *http.Request, memberID string) {
	partners, err := h.Affiliates.ListPartners(r.Context(), memberID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, partnerResponses(partners))
}

// HandleGet handles GET /v1/admin/partners/{id}
//
//	@Summary		Get a partner
//	@Tags			Affiliates
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Partner ID"
//	@Success		200	{object}	portalsdk.PartnerResponse
//	@Failure		404	{object}	portalsdk.ErrorResponse
//	@Router			/v1/admin/partners/{id} [get].
func (h *PartnerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Affiliates.GetPartner(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, partnerResponse(p))
}

// HandleUpdate handles PATCH /v1/admin/partners/{id}
//
//	@Summary		Update a partner
//	@Description	Only the fields present in the body change.
//	@Tags			Affiliates
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Partner ID"
//	@Param			body	body		portalsdk.PartnerPatchRequest	true	"Changes"
//	@Success		200		{object}	portalsdk.PartnerResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse	"Invalid input"
//	@Failure		404		{object}	portalsdk.ErrorResponse
//	@Failure		409		{object}	portalsdk.ErrorResponse	"Slug taken"
//	@Router			/v1/admin/partners/{id} [patch].
func (h *PartnerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.PartnerPatchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	p, err := h.Affiliates.UpdatePartner(r.Context(), r.PathValue("id"), service.PartnerPatch{
		Name:           req.Name,
		Slug:           req.Slug,
		Website:        req.Website,
		CommissionRate: req.CommissionRate,
		MemberID:       req.MemberID,
		IsActive:       req.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, partnerResponse(p))
}

// HandleDelete handles DELETE /v1/admin/partners/{id}
//
//	@Summary		Delete a partner
//	@Description	Removes the partner together with its clicks and conversions.
//	@Tags			Affiliates
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Partner ID"
//	@Success		204
//	@Failure		404	{object}	portalsdk.ErrorResponse
//	@Router			/v1/admin/partners/{id} [delete].
func (h *PartnerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Affiliates.DeletePartner(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAnalytics handles GET /v1/admin/analytics
//
//	@Summary		Affiliate analytics
//	@Description	Clicks, unique visitors, conversions, revenue and commission per partner over [from, to). Defaults to the last 30 days.
//	@Tags			Affiliates
//	@Security		BearerAuth
//	@Produce		json
//	@Param			from		query		string	false	"RFC 3339 time or YYYY-MM-DD"
//	@Param			to			query		string	false	"RFC 3339 time or YYYY-MM-DD"
//	@Param			partner_id	query		[]string	false	"Restrict to these partners"
//	@Param			member_id	query		string	false	"Restrict to partners of this member"
//	@Success		200			{object}	portalsdk.AnalyticsResponse
//	@Failure		400			{object}	portalsdk.ErrorResponse	"Invalid range"
//	@Router			/v1/admin/analytics [get].
func (h *PartnerHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	f, err := analyticsFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	f.MemberID = r.URL.Query().Get("member_id")
	h.analytics(w, r, f)
}

// HandlePortalAnalytics handles GET /v1/portal/analytics
//
//	@Summary		Own affiliate analytics
//	@Description	Same report as the admin view, limited to partners the calling member owns.
//	@Tags			Portal
//	@Security		BearerAuth
//	@Produce		json
//	@Param			from		query		string	false	"RFC 3339 time or YYYY-MM-DD"
//	@Param			to			query		string	false	"RFC 3339 time or YYYY-MM-DD"
//	@Param			partner_id	query		[]string	false	"Restrict to these partners"
//	@Success		200			{object}	portalsdk.AnalyticsResponse
//	@Failure		400			{object}	portalsdk.ErrorResponse	"Invalid range"
//	@Router			/v1/portal/analytics [get].
func (h *PartnerHandler) HandlePortalAnalytics(w http.ResponseWriter, r *http.Request) {
	p, ok := mustPrincipal(w, r)
	if !ok {
		return
	}
	f, err := analyticsFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	f.MemberID = p.AccountID
	h.analytics(w, r, f)
}

func (h *PartnerHandler) analytics(w http.ResponseWriter, r *http.Request, f service.AnalyticsFilter) {
	rep, err := h.Affiliates.Analytics(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, analyticsResponse(rep))
}

func analyticsFilter(q url.Values) (service.AnalyticsFilter, error) {
	var (
		f       service.AnalyticsFilter
		details []string
		err     error
	)
	if f.From, err = parseQueryTime(q.Get("from")); err != nil {
		details = append(details, "from must be an RFC 3339 time or YYYY-MM-DD")
	}
	if f.To, err = parseQueryTime(q.Get("to")); err != nil {
		details = append(details, "to must be an RFC 3339 time or YYYY-MM-DD")
	}
	if len(details) > 0 {
		return f, &service.ValidationError{Message: "invalid range", Details: details}
	}
	f.PartnerIDs = q["partner_id"]
	return f, nil
}

func parseQueryTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, v)
}

// TrackingHandler receives public clicks and server-to-server conversions.
type TrackingHandler struct {
	Affiliates    *service.AffiliateService
	VisitorCookie string
	SecureCookies bool
}

// HandleClick handles POST /v1/track/clicks/{slug}
//
//	@Summary		Record a referral click
//	@Description	Records a click for an active partner. The visitor id comes from the visitor cookie, then the body, then a fresh UUID, and is set back as a cookie.
//	@Tags			Tracking
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string					true	"Partner slug"
//	@Param			body	body		portalsdk.ClickRequest	false	"Landing details"
//	@Success		201		{object}	portalsdk.ClickResponse
//	@Failure		404		{object}	portalsdk.ErrorResponse	"Unknown or inactive partner"
//	@Router			/v1/track/clicks/{slug} [post].
func (h *TrackingHandler) HandleClick(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.ClickRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	visitor := req.VisitorID
	if c, err := r.Cookie(h.VisitorCookie); err == nil && c.Value != "" {
		visitor = c.Value
	}
	referrer := req.Referrer
	if referrer == "" {
		referrer = r.Referer()
	}

	click, err := h.Affiliates.RecordClick(r.Context(), r.PathValue("slug"), service.ClickInput{
		VisitorID:   visitor,
		LandingPath: req.LandingPath,
		Referrer:    referrer,
		UserAgent:   r.UserAgent(),
		IP:          httpx.IPKeyExtractor(r),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.VisitorCookie,
		Value:    click.VisitorID,
		Path:     "/",
		MaxAge:   int(visitorCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteJSON(w, http.StatusCreated, portalsdk.ClickResponse{
		ClickID:   click.ID,
		VisitorID: click.VisitorID,
	})
}

// HandleConversion handles POST /v1/track/conversions
//
//	@Summary		Record a conversion
//	@Description	Attributes a sale to a partner by click id or slug. A reference counts once per partner.
//	@Tags			Tracking
//	@Accept			json
//	@Produce		json
//	@Param			X-Conversion-Key	header		string						true	"Shared conversion key"
//	@Param			body				body		portalsdk.ConversionRequest	true	"Sale"
//	@Success		201					{object}	portalsdk.ConversionResponse
//	@Failure		400					{object}	portalsdk.ErrorResponse	"Invalid input"
//	@Failure		401					{object}	portalsdk.ErrorResponse	"Wrong conversion key"
//	@Failure		404					{object}	portalsdk.ErrorResponse	"Unknown click or partner"
//	@Failure		409					{object}	portalsdk.ErrorResponse	"Duplicate reference"
//	@Router			/v1/track/conversions [post].
func (h *TrackingHandler) HandleConversion(w http.ResponseWriter, r *http.Request) {
	if err := h.Affiliates.CheckConversionKey(r.Header.Get("X-Conversion-Key")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req portalsdk.ConversionRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	conv, err := h.Affiliates.RecordConversion(r.Context(), service.ConversionInput{
		Slug:        req.Slug,
		ClickID:     req.ClickID,
		Reference:   req.Reference,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, portalsdk.ConversionResponse{
		ID:        conv.ID,
		PartnerID: conv.PartnerID,
	})
}
