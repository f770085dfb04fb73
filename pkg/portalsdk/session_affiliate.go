package portalsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CreatePartner requires: admin:write scope
func (s *Session) CreatePartner(ctx context.Context, req PartnerRequest) (*PartnerResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/partners", req, "admin:write")
	if err != nil {
		return nil, err
	}

	var out PartnerResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPartners requires: admin:read scope
func (s *Session) ListPartners(ctx context.Context) ([]PartnerResponse, error) {
	return s.listPartners(ctx, "/v1/admin/partners", "admin:read")
}

// ListOwnPartners lists the partners owned by the member behind the session.
// Requires: portal:read scope
func (s *Session) ListOwnPartners(ctx context.Context) ([]PartnerResponse, error) {
	return s.listPartners(ctx, "/v1/portal/partners", "portal:read")
}

func (s *Session) listPartners(ctx context.Context, path, scope string) ([]PartnerResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, scope)
	if err != nil {
		return nil, err
	}

	var out []PartnerResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePartner requires: admin:write scope
func (s *Session) UpdatePartner(ctx context.Context, id string, req PartnerPatchRequest) (*PartnerResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/admin/partners/"+url.PathEscape(id), req, "admin:write")
	if err != nil {
		return nil, err
	}

	var out PartnerResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePartner removes the partner with its clicks and conversions.
// Requires: admin:write scope
func (s *Session) DeletePartner(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/admin/partners/"+url.PathEscape(id), nil, "admin:write")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// AnalyticsQuery narrows an analytics report. Zero values use the server
// defaults.
type AnalyticsQuery struct {
	From       time.Time
	To         time.Time
	PartnerIDs []string
	MemberID   string // admin reports only
}

func (q AnalyticsQuery) encode() string {
	v := url.Values{}
	if !q.From.IsZero() {
		v.Set("from", q.From.UTC().Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		v.Set("to", q.To.UTC().Format(time.RFC3339))
	}
	for _, id := range q.PartnerIDs {
		v.Add("partner_id", id)
	}
	if q.MemberID != "" {
		v.Set("member_id", q.MemberID)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Analytics returns click and conversion figures across partners.
// Requires: admin:read scope
func (s *Session) Analytics(ctx context.Context, q AnalyticsQuery) (*AnalyticsResponse, error) {
	return s.analytics(ctx, "/v1/admin/analytics"+q.encode(), "admin:read")
}

// PortalAnalytics returns figures for the member's own partners.
// Requires: portal:read scope
func (s *Session) PortalAnalytics(ctx context.Context, q AnalyticsQuery) (*AnalyticsResponse, error) {
	q.MemberID = ""
	return s.analytics(ctx, "/v1/portal/analytics"+q.encode(), "portal:read")
}

func (s *Session) analytics(ctx context.Context, path, scope string) (*AnalyticsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, scope)
	if err != nil {
		return nil, err
	}

	var out AnalyticsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
