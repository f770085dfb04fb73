package http

import (
	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/notify"
	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
)

func emailStatus(o notify.Outcome) portalsdk.EmailStatus {
	return portalsdk.EmailStatus{EmailSent: o.Sent, EmailError: o.Error}
}

func adminResponse(a domain.AdminUser) portalsdk.AdminResponse {
	return portalsdk.AdminResponse{
		ID:                 a.ID,
		Email:              a.Email,
		FullName:           a.FullName,
		IsActive:           a.IsActive,
		MustChangePassword: a.MustChangePassword,
		MFAEnabled:         a.HasMFA(),
		PasswordExpiresAt:  a.PasswordExpiresAt,
		CreatedAt:          a.CreatedAt,
	}
}

func adminResponses(as []domain.AdminUser) []portalsdk.AdminResponse {
	out := make([]portalsdk.AdminResponse, len(as))
	for i, a := range as {
		out[i] = adminResponse(a)
	}
	return out
}

func memberResponse(m domain.Member) portalsdk.MemberResponse {
	return portalsdk.MemberResponse{
		ID:          m.ID,
		Email:       m.Email,
		FullName:    m.FullName,
		CompanyName: m.CompanyName,
		Phone:       m.Phone,
		IsActive:    m.IsActive,
		IsApproved:  m.IsApproved,
		State:       string(m.State()),
		ApprovedAt:  m.ApprovedAt,
		ApprovedBy:  m.ApprovedBy,
		CreatedAt:   m.CreatedAt,
	}
}

func memberResponses(ms []domain.Member) []portalsdk.MemberResponse {
	out := make([]portalsdk.MemberResponse, len(ms))
	for i, m := range ms {
		out[i] = memberResponse(m)
	}
	return out
}

// issuedInvitation is only built for the call that minted the token.
func issuedInvitation(inv service.IssuedInvitation) portalsdk.IssuedInvitation {
	return portalsdk.IssuedInvitation{
		Success:         true,
		InvitationToken: inv.Token,
		TokenExpiresAt:  inv.ExpiresAt,
		SetupLink:       inv.SetupLink,
		EmailStatus:     emailStatus(inv.Notification),
	}
}

// invitationResponse carries the raw token only inside the setup link.
func invitationResponse(inv service.IssuedInvitation) portalsdk.InvitationResponse {
	return portalsdk.InvitationResponse{
		Kind:        string(inv.Kind),
		AccountID:   inv.AccountID,
		Email:       inv.Email,
		SetupLink:   inv.SetupLink,
		ExpiresAt:   inv.ExpiresAt,
		EmailStatus: emailStatus(inv.Notification),
	}
}

func partnerResponse(p domain.Partner) portalsdk.PartnerResponse {
	return portalsdk.PartnerResponse{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Website:        p.Website,
		CommissionRate: p.CommissionRate,
		MemberID:       p.MemberID,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func partnerResponses(ps []domain.Partner) []portalsdk.PartnerResponse {
	out := make([]portalsdk.PartnerResponse, len(ps))
	for i, p := range ps {
		out[i] = partnerResponse(p)
	}
	return out
}

func statsResponse(s domain.PartnerStats) portalsdk.PartnerStatsResponse {
	return portalsdk.PartnerStatsResponse{
		PartnerID:       s.PartnerID,
		PartnerName:     s.PartnerName,
		Slug:            s.Slug,
		Clicks:          s.Clicks,
		UniqueVisitors:  s.UniqueVisitors,
		Conversions:     s.Conversions,
		ConversionRate:  s.ConversionRate,
		RevenueCents:    s.RevenueCents,
		CommissionCents: s.CommissionCents,
	}
}

func analyticsResponse(rep service.AnalyticsReport) portalsdk.AnalyticsResponse {
	out := portalsdk.AnalyticsResponse{
		From:     rep.From,
		To:       rep.To,
		Partners: make([]portalsdk.PartnerStatsResponse, len(rep.Partners)),
		Totals:   statsResponse(rep.Totals),
	}
	for i, s := range rep.Partners {
		out.Partners[i] = statsResponse(s)
	}
	return out
}
