package portalsdk

import (
	"context"
	"net/http"
	"net/url"
)

// InviteAdmin creates an admin account and sends its setup link.
// Requires: admin:write scope
func (s *Session) InviteAdmin(ctx context.Context, req InviteAdminRequest) (*AdminInvitationResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/admins", req, "admin:write")
	if err != nil {
		return nil, err
	}

	var out AdminInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAdmins requires: admin:read scope
func (s *Session) ListAdmins(ctx context.Context) ([]AdminResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/admin/admins", nil, "admin:read")
	if err != nil {
		return nil, err
	}

	var out []AdminResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAdmin requires: admin:read scope
func (s *Session) GetAdmin(ctx context.Context, id string) (*AdminResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/admin/admins/"+url.PathEscape(id), nil, "admin:read")
	if err != nil {
		return nil, err
	}

	var out AdminResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetAdminActive activates or deactivates another admin. Deactivation ends
// their sessions.
// Requires: admin:write scope
func (s *Session) SetAdminActive(ctx context.Context, id string, active bool) (*AdminResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/admins/"+url.PathEscape(id)+"/active",
		SetActiveRequest{Active: active}, "admin:write")
	if err != nil {
		return nil, err
	}

	var out AdminResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAdmin requires: admin:write scope
func (s *Session) DeleteAdmin(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/admin/admins/"+url.PathEscape(id), nil, "admin:write")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// GetAdminInvitationStatus reports whether the admin still has an unused
// setup link.
// Requires: admin:read scope
func (s *Session) GetAdminInvitationStatus(ctx context.Context, id string) (*InvitationStatusResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/admin/admins/"+url.PathEscape(id)+"/invitation", nil, "admin:read")
	if err != nil {
		return nil, err
	}

	var out InvitationStatusResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegenerateInvitation replaces any unused setup link of the account. kind
// is "admin" or "member".
// Requires: admin:write scope
func (s *Session) RegenerateInvitation(ctx context.Context, kind, id string) (*InvitationResponse, error) {
	path := "/v1/admin/" + url.PathEscape(kind) + "s/" + url.PathEscape(id) + "/invitation"
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, nil, "admin:write")
	if err != nil {
		return nil, err
	}

	var out InvitationResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// InviteMember creates a member account and sends its setup link.
// Requires: admin:write scope
func (s *Session) InviteMember(ctx context.Context, req InviteMemberRequest) (*MemberInvitationResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/members", req, "admin:write")
	if err != nil {
		return nil, err
	}

	var out MemberInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMembers returns members, only those awaiting approval when
// pendingOnly is set.
// Requires: admin:read scope
func (s *Session) ListMembers(ctx context.Context, pendingOnly bool) ([]MemberResponse, error) {
	path := "/v1/admin/members"
	if pendingOnly {
		path += "?pending=true"
	}
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, "admin:read")
	if err != nil {
		return nil, err
	}

	var out []MemberResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveMember requires: admin:write scope
func (s *Session) ApproveMember(ctx context.Context, id string) (*ApprovalResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/members/"+url.PathEscape(id)+"/approve", nil, "admin:write")
	if err != nil {
		return nil, err
	}

	var out ApprovalResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveAllMembers approves every pending member.
// Requires: admin:write scope
func (s *Session) ApproveAllMembers(ctx context.Context) (*BulkApprovalResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/members/approve-all", nil, "admin:write")
	if err != nil {
		return nil, err
	}

	var out BulkApprovalResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetMemberActive requires: admin:write scope
func (s *Session) SetMemberActive(ctx context.Context, id string, active bool) (*MemberResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/members/"+url.PathEscape(id)+"/active",
		SetActiveRequest{Active: active}, "admin:write")
	if err != nil {
		return nil, err
	}

	var out MemberResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMember requires: admin:write scope
func (s *Session) DeleteMember(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/admin/members/"+url.PathEscape(id), nil, "admin:write")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
