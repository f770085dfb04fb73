package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/identity"
	"github.com/aussiebroadwan/partnerportal/internal/portal/metrics"
	"github.com/aussiebroadwan/partnerportal/internal/portal/notify"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/pkg/cryptox"
	"github.com/aussiebroadwan/partnerportal/pkg/idx"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
)

// InvitationService issues, validates and redeems setup tokens for both
// account classes.
type InvitationService struct {
	Store    store.Store
	Identity identity.Provider
	Notifier *notify.Notifier
	Metrics  *metrics.Metrics

	Policy           domain.PasswordPolicy
	InviteTTL        time.Duration
	SetupURLTemplate string
	Now              func() time.Time
}

type InviteAdminRequest struct {
	Email     string
	FullName  string
	InvitedBy string
}

type InviteMemberRequest struct {
	Email       string
	FullName    string
	CompanyName string
	Phone       string
	AutoApprove bool
	InvitedBy   string
}

// IssuedInvitation is returned once per issuance. Token is the only copy of
// the raw secret.
type IssuedInvitation struct {
	Kind         domain.AccountKind
	AccountID    string
	Email        string
	Token        string
	ExpiresAt    time.Time
	SetupLink    string
	Notification notify.Outcome
}

type AdminInvitation struct {
	Admin domain.AdminUser
	IssuedInvitation
}

type MemberInvitation struct {
	Member domain.Member
	IssuedInvitation
}

// InvitationIdentity is what a valid token resolves to.
type InvitationIdentity struct {
	Kind      domain.AccountKind
	AccountID string
	UserID    string
	Email     string
	FullName  string
	ExpiresAt time.Time
}

type SetupResult struct {
	Email string
	Kind  domain.AccountKind
}

func (s *InvitationService) ttl() time.Duration {
	if s.InviteTTL > 0 {
		return s.InviteTTL
	}
	return domain.DefaultInviteTTL
}

// newToken returns a raw token and the invitation row carrying its
// fingerprint.
func (s *InvitationService) newToken(kind domain.AccountKind, accountID string, now time.Time) (string, domain.Invitation, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.Invitation{}, err
	}
	return raw, domain.Invitation{
		ID:        idx.NewAt(now).String(),
		Kind:      kind,
		AccountID: accountID,
		TokenHash: cryptox.FingerprintToken(raw),
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}, nil
}

// createIdentity makes the identity an invitation will later claim. The
// password is random and never shown to anyone.
func (s *InvitationService) createIdentity(ctx context.Context, email string) (identity.User, error) {
	throwaway, err := cryptox.GeneratePassword()
	if err != nil {
		return identity.User{}, upstream("generate password", err)
	}
	user, err := s.Identity.CreateUser(ctx, email, throwaway, true)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return identity.User{}, &ConflictError{Email: email}
		}
		return identity.User{}, upstream("create identity", err)
	}
	return user, nil
}

// compensate removes an identity whose account rows never made it in.
func (s *InvitationService) compensate(ctx context.Context, userID string) {
	if err := s.Identity.DeleteUser(ctx, userID); err != nil {
		slogx.FromContext(ctx).Error("failed to remove orphaned identity",
			slog.String("user_id", userID),
			slogx.Err(err),
		)
	}
}

func persistErr(op, email string, err error) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return &ConflictError{Email: email}
	}
	return upstream(op, err)
}

// InviteAdmin creates an admin account with a forced password rotation and
// emails a setup link.
func (s *InvitationService) InviteAdmin(ctx context.Context, req InviteAdminRequest) (AdminInvitation, error) {
	l := slogx.FromContext(ctx)

	email, err := checkEmail(req.Email)
	if err != nil {
		return AdminInvitation{}, err
	}
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return AdminInvitation{}, invalid("invalid input", "full_name is required")
	}
	if err := emailTaken(ctx, s.Store, email); err != nil {
		return AdminInvitation{}, err
	}

	user, err := s.createIdentity(ctx, email)
	if err != nil {
		return AdminInvitation{}, err
	}

	now := clock(s.Now)
	admin := domain.AdminUser{
		ID:                 idx.NewAt(now).String(),
		UserID:             user.ID,
		Email:              email,
		FullName:           name,
		IsActive:           true,
		MustChangePassword: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	raw, inv, err := s.newToken(domain.KindAdmin, admin.ID, now)
	if err != nil {
		s.compensate(ctx, user.ID)
		return AdminInvitation{}, upstream("generate token", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Admins().CreateAdmin(ctx, admin); err != nil {
			return err
		}
		return tx.Invitations().CreateInvitation(ctx, inv)
	})
	if err != nil {
		s.compensate(ctx, user.ID)
		return AdminInvitation{}, persistErr("create admin", email, err)
	}

	link := domain.SetupLink(s.SetupURLTemplate, domain.KindAdmin, raw)
	outcome := s.Notifier.AdminInvitation(ctx, email, name, link, inv.ExpiresAt)
	s.Metrics.InvitationIssued(string(domain.KindAdmin))

	l.Info("admin invited",
		slog.String("admin_id", admin.ID),
		slog.String("invited_by", req.InvitedBy),
		slog.Bool("email_sent", outcome.Sent),
	)

	return AdminInvitation{
		Admin: admin,
		IssuedInvitation: IssuedInvitation{
			Kind:         domain.KindAdmin,
			AccountID:    admin.ID,
			Email:        email,
			Token:        raw,
			ExpiresAt:    inv.ExpiresAt,
			SetupLink:    link,
			Notification: outcome,
		},
	}, nil
}

// InviteMember creates a member account on behalf of an admin. With
// AutoApprove the member skips the approval gate.
func (s *InvitationService) InviteMember(ctx context.Context, req InviteMemberRequest) (MemberInvitation, error) {
	l := slogx.FromContext(ctx)

	email, err := checkEmail(req.Email)
	if err != nil {
		return MemberInvitation{}, err
	}
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return MemberInvitation{}, invalid("invalid input", "full_name is required")
	}
	if err := emailTaken(ctx, s.Store, email); err != nil {
		return MemberInvitation{}, err
	}

	user, err := s.createIdentity(ctx, email)
	if err != nil {
		return MemberInvitation{}, err
	}

	now := clock(s.Now)
	member := domain.Member{
		ID:          idx.NewAt(now).String(),
		UserID:      user.ID,
		Email:       email,
		FullName:    name,
		CompanyName: strings.TrimSpace(req.CompanyName),
		Phone:       strings.TrimSpace(req.Phone),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.AutoApprove {
		member.IsApproved = true
		member.ApprovedAt = &now
		member.ApprovedBy = req.InvitedBy
	}
	raw, inv, err := s.newToken(domain.KindMember, member.ID, now)
	if err != nil {
		s.compensate(ctx, user.ID)
		return MemberInvitation{}, upstream("generate token", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Members().CreateMember(ctx, member); err != nil {
			return err
		}
		return tx.Invitations().CreateInvitation(ctx, inv)
	})
	if err != nil {
		s.compensate(ctx, user.ID)
		return MemberInvitation{}, persistErr("create member", email, err)
	}

	link := domain.SetupLink(s.SetupURLTemplate, domain.KindMember, raw)
	outcome := s.Notifier.MemberInvitation(ctx, email, name, member.CompanyName, link, inv.ExpiresAt, member.IsApproved)
	s.Metrics.InvitationIssued(string(domain.KindMember))

	l.Info("member invited",
		slog.String("member_id", member.ID),
		slog.String("invited_by", req.InvitedBy),
		slog.Bool("auto_approved", member.IsApproved),
		slog.Bool("email_sent", outcome.Sent),
	)

	return MemberInvitation{
		Member: member,
		IssuedInvitation: IssuedInvitation{
			Kind:         domain.KindMember,
			AccountID:    member.ID,
			Email:        email,
			Token:        raw,
			ExpiresAt:    inv.ExpiresAt,
			SetupLink:    link,
			Notification: outcome,
		},
	}, nil
}

// RegenerateInvitation supersedes every unused token of the account with a
// fresh one and re-sends the email.
func (s *InvitationService) RegenerateInvitation(
	ctx context.Context,
	kind domain.AccountKind,
	accountID string,
	by string,
) (IssuedInvitation, error) {
	l := slogx.FromContext(ctx)

	acct, err := loadAccount(ctx, s.Store, kind, accountID)
	if err != nil {
		return IssuedInvitation{}, err
	}

	now := clock(s.Now)
	raw, inv, err := s.newToken(kind, acct.ID, now)
	if err != nil {
		return IssuedInvitation{}, upstream("generate token", err)
	}

	var superseded int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if superseded, err = tx.Invitations().InvalidateAccountInvitations(ctx, kind, acct.ID, now); err != nil {
			return err
		}
		return tx.Invitations().CreateInvitation(ctx, inv)
	})
	if err != nil {
		return IssuedInvitation{}, upstream("regenerate invitation", err)
	}

	link := domain.SetupLink(s.SetupURLTemplate, kind, raw)
	var outcome notify.Outcome
	if kind == domain.KindAdmin {
		outcome = s.Notifier.AdminInvitation(ctx, acct.Email, acct.FullName, link, inv.ExpiresAt)
	} else {
		outcome = s.Notifier.MemberInvitation(ctx, acct.Email, acct.FullName, acct.CompanyName, link, inv.ExpiresAt, acct.IsApproved)
	}
	s.Metrics.InvitationIssued(string(kind))

	l.Info("invitation regenerated",
		slog.String("kind", string(kind)),
		slog.String("account_id", acct.ID),
		slog.String("by", by),
		slog.Int64("superseded", superseded),
		slog.Bool("email_sent", outcome.Sent),
	)

	return IssuedInvitation{
		Kind:         kind,
		AccountID:    acct.ID,
		Email:        acct.Email,
		Token:        raw,
		ExpiresAt:    inv.ExpiresAt,
		SetupLink:    link,
		Notification: outcome,
	}, nil
}

// lookup resolves a raw token to its row and owner without side effects.
func (s *InvitationService) lookup(ctx context.Context, token string) (domain.Invitation, InvitationIdentity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Invitation{}, InvitationIdentity{}, invalid("invalid input", "token is required")
	}

	inv, err := s.Store.Invitations().GetUnusedInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, InvitationIdentity{}, ErrInvitationInvalid
		}
		return domain.Invitation{}, InvitationIdentity{}, upstream("lookup invitation", err)
	}
	if inv.Expired(clock(s.Now)) {
		return domain.Invitation{}, InvitationIdentity{}, ErrInvitationExpired
	}

	acct, err := loadAccount(ctx, s.Store, inv.Kind, inv.AccountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Invitation{}, InvitationIdentity{}, ErrInvitationInvalid
		}
		return domain.Invitation{}, InvitationIdentity{}, upstream("lookup account", err)
	}

	return inv, InvitationIdentity{
		Kind:      acct.Kind,
		AccountID: acct.ID,
		UserID:    acct.UserID,
		Email:     acct.Email,
		FullName:  acct.FullName,
		ExpiresAt: inv.ExpiresAt,
	}, nil
}

// ValidateInvitation reports who a token belongs to. Unknown and already used
// tokens are indistinguishable; expired tokens get their own error.
func (s *InvitationService) ValidateInvitation(ctx context.Context, token string) (InvitationIdentity, error) {
	_, who, err := s.lookup(ctx, token)
	return who, err
}

// CompleteSetup redeems a token by setting the account's password. The
// token is claimed before the password changes, and released again if the
// change fails so the user can retry.
func (s *InvitationService) CompleteSetup(ctx context.Context, token, password string) (SetupResult, error) {
	l := slogx.FromContext(ctx)

	if strings.TrimSpace(token) == "" {
		return SetupResult{}, invalid("invalid input", "token is required")
	}
	if err := checkPassword(s.Policy, password); err != nil {
		return SetupResult{}, err
	}

	inv, who, err := s.lookup(ctx, token)
	if err != nil {
		return SetupResult{}, err
	}

	now := clock(s.Now)
	claimed, err := s.Store.Invitations().ClaimInvitation(ctx, inv.ID, now)
	if err != nil {
		return SetupResult{}, upstream("claim invitation", err)
	}
	if !claimed {
		l.Warn("invitation claimed concurrently", slog.String("invitation_id", inv.ID))
		return SetupResult{}, ErrInvitationInvalid
	}

	if err := s.Identity.UpdatePassword(ctx, who.UserID, password); err != nil {
		switch rerr := s.Store.Invitations().ReleaseInvitation(ctx, inv.ID); {
		case errors.Is(rerr, store.ErrNotFound):
			l.Info("invitation superseded during setup, not released", slog.String("invitation_id", inv.ID))
		case rerr != nil:
			l.Error("failed to release invitation after password failure",
				slog.String("invitation_id", inv.ID),
				slogx.Err(rerr),
			)
		}
		return SetupResult{}, upstream("set password", err)
	}

	if who.Kind == domain.KindAdmin {
		// Setup clears the expiry. The rotation window starts with the first
		// ChangePassword.
		if err := s.Store.Admins().SetAdminPasswordChanged(ctx, who.AccountID, nil, now); err != nil {
			l.Error("failed to clear admin password rotation flag",
				slog.String("admin_id", who.AccountID),
				slogx.Err(err),
			)
		}
	}

	s.Metrics.SetupCompleted(string(who.Kind))
	l.Info("invitation setup completed",
		slog.String("kind", string(who.Kind)),
		slog.String("account_id", who.AccountID),
	)

	return SetupResult{Email: who.Email, Kind: who.Kind}, nil
}
