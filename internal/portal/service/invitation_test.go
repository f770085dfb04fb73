package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/identity"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestInviteAdminIssuesSingleUseToken(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.invites.InviteAdmin(ctx, InviteAdminRequest{Email: " Boss@Example.com ", FullName: "Boss", InvitedBy: "cli"})
	require.NoError(t, err)
	require.Equal(t, "boss@example.com", res.Email)
	require.True(t, res.Admin.MustChangePassword)
	require.Equal(t, h.clock.Now().Add(domain.DefaultInviteTTL), res.ExpiresAt)
	require.Equal(t, "https://portal.example.com/admin-setup?token="+res.Token, res.SetupLink)
	require.True(t, res.Notification.Sent)

	msgs := h.mail.to("boss@example.com")
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0].Text, res.SetupLink)

	t.Run("only the fingerprint is stored", func(t *testing.T) {
		_, err := h.st.Invitations().GetUnusedInvitationByTokenHash(ctx, res.Token)
		require.ErrorIs(t, err, store.ErrNotFound)
		inv, err := h.st.Invitations().GetUnusedInvitationByTokenHash(ctx, cryptox.FingerprintToken(res.Token))
		require.NoError(t, err)
		require.Equal(t, res.Admin.ID, inv.AccountID)
	})

	who, err := h.invites.ValidateInvitation(ctx, res.Token)
	require.NoError(t, err)
	require.Equal(t, domain.KindAdmin, who.Kind)
	require.Equal(t, "boss@example.com", who.Email)
	require.Equal(t, "Boss", who.FullName)

	t.Run("weak password keeps the token", func(t *testing.T) {
		_, err := h.invites.CompleteSetup(ctx, res.Token, "short")
		verr := requireValidation(t, err)
		require.NotEmpty(t, verr.Details)
		_, err = h.invites.ValidateInvitation(ctx, res.Token)
		require.NoError(t, err)
	})

	out, err := h.invites.CompleteSetup(ctx, res.Token, strongPassword)
	require.NoError(t, err)
	require.Equal(t, SetupResult{Email: "boss@example.com", Kind: domain.KindAdmin}, out)

	admin, err := h.st.Admins().GetAdminByID(ctx, res.Admin.ID)
	require.NoError(t, err)
	require.False(t, admin.MustChangePassword)
	require.Nil(t, admin.PasswordExpiresAt)

	_, err = h.invites.CompleteSetup(ctx, res.Token, "Second-Horse-8!")
	require.ErrorIs(t, err, ErrInvitationInvalid)
	_, err = h.invites.ValidateInvitation(ctx, res.Token)
	require.ErrorIs(t, err, ErrInvitationInvalid)

	_, err = h.sessions.Login(ctx, LoginRequest{Kind: domain.KindAdmin, Email: "boss@example.com", Password: "Second-Horse-8!"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	h.login(t, domain.KindAdmin, "boss@example.com")
}

func TestValidateInvitationRejectsUnknownAndEmpty(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.invites.ValidateInvitation(ctx, "no-such-token")
	require.ErrorIs(t, err, ErrInvitationInvalid)

	_, err = h.invites.ValidateInvitation(ctx, "  ")
	requireValidation(t, err)
}

func TestInvitationExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.invites.InviteMember(ctx, InviteMemberRequest{Email: "vendor@example.com", FullName: "Vendor"})
	require.NoError(t, err)

	h.clock.Advance(domain.DefaultInviteTTL)
	_, err = h.invites.ValidateInvitation(ctx, res.Token)
	require.NoError(t, err, "usable at the expiry instant")

	h.clock.Advance(time.Second)
	_, err = h.invites.ValidateInvitation(ctx, res.Token)
	require.ErrorIs(t, err, ErrInvitationExpired)
	_, err = h.invites.CompleteSetup(ctx, res.Token, strongPassword)
	require.ErrorIs(t, err, ErrInvitationExpired)
}

func TestInviteRejectsTakenEmailAcrossClasses(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.invites.InviteAdmin(ctx, InviteAdminRequest{Email: "shared@example.com", FullName: "Admin"})
	require.NoError(t, err)
	identities, tokens := h.count(t, "identities"), h.count(t, "invitation_tokens")
	defer func() {
		require.Equal(t, identities, h.count(t, "identities"), "no identity left behind")
		require.Equal(t, tokens, h.count(t, "invitation_tokens"), "no token left behind")
	}()

	var conflict *ConflictError
	_, err = h.invites.InviteMember(ctx, InviteMemberRequest{Email: "SHARED@example.com", FullName: "Member"})
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "shared@example.com", conflict.Email)

	_, err = h.members.Register(ctx, RegisterMemberRequest{Email: "shared@example.com", Password: strongPassword, FullName: "Member"})
	require.ErrorAs(t, err, &conflict)

	_, err = h.invites.InviteAdmin(ctx, InviteAdminRequest{Email: "shared@example.com", FullName: "Again"})
	require.ErrorAs(t, err, &conflict)

	_, err = h.invites.InviteAdmin(ctx, InviteAdminRequest{Email: "not-an-email", FullName: "X"})
	requireValidation(t, err)
	_, err = h.invites.InviteMember(ctx, InviteMemberRequest{Email: "ok@example.com", FullName: " "})
	requireValidation(t, err)
}

func TestInviteMemberAutoApprove(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	pending, err := h.invites.InviteMember(ctx, InviteMemberRequest{Email: "pending@example.com", FullName: "P"})
	require.NoError(t, err)
	require.False(t, pending.Member.IsApproved)
	require.Equal(t, "https://portal.example.com/member-setup?token="+pending.Token, pending.SetupLink)

	approved, err := h.invites.InviteMember(ctx, InviteMemberRequest{
		Email: "approved@example.com", FullName: "A", AutoApprove: true, InvitedBy: "admin-1",
	})
	require.NoError(t, err)
	require.True(t, approved.Member.IsApproved)
	require.Equal(t, "admin-1", approved.Member.ApprovedBy)

	_, err = h.invites.CompleteSetup(ctx, pending.Token, strongPassword)
	require.NoError(t, err)
	_, err = h.sessions.Login(ctx, LoginRequest{Kind: domain.KindMember, Email: "pending@example.com", Password: strongPassword})
	require.ErrorIs(t, err, ErrApprovalPending)
}

func TestRegenerateInvitationSupersedesPreviousToken(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	first, err := h.invites.InviteMember(ctx, InviteMemberRequest{Email: "vendor@example.com", FullName: "Vendor"})
	require.NoError(t, err)

	h.clock.Advance(time.Hour)
	second, err := h.invites.RegenerateInvitation(ctx, domain.KindMember, first.Member.ID, "admin-1")
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)
	require.Equal(t, h.clock.Now().Add(domain.DefaultInviteTTL), second.ExpiresAt)
	require.Len(t, h.mail.to("vendor@example.com"), 2)

	_, err = h.invites.ValidateInvitation(ctx, first.Token)
	require.ErrorIs(t, err, ErrInvitationInvalid)
	_, err = h.invites.ValidateInvitation(ctx, second.Token)
	require.NoError(t, err)

	_, err = h.invites.RegenerateInvitation(ctx, domain.KindAdmin, first.Member.ID, "admin-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInvitationEmailFailureIsReportedNotFatal(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.mail.fail["down@example.com"] = true

	res, err := h.invites.InviteMember(ctx, InviteMemberRequest{Email: "down@example.com", FullName: "Down"})
	require.NoError(t, err)
	require.False(t, res.Notification.Sent)
	require.Contains(t, res.Notification.Error, "relay refused")

	_, err = h.invites.ValidateInvitation(ctx, res.Token)
	require.NoError(t, err)
}

func TestCompleteSetupReleasesTokenWhenPasswordUpdateFails(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.invites.InviteAdmin(ctx, InviteAdminRequest{Email: "boss@example.com", FullName: "Boss"})
	require.NoError(t, err)

	h.invites.Identity = failingPasswords{Provider: h.ident}
	_, err = h.invites.CompleteSetup(ctx, res.Token, strongPassword)
	var up *UpstreamError
	require.ErrorAs(t, err, &up)
	require.Equal(t, "set password", up.Op)

	h.invites.Identity = h.ident
	_, err = h.invites.CompleteSetup(ctx, res.Token, strongPassword)
	require.NoError(t, err)
}

// regenerateThenFail supersedes the invitation while the password update is
// in flight and then fails the update.
type regenerateThenFail struct {
	identity.Provider
	regenerate func()
}

func (p regenerateThenFail) UpdatePassword(context.Context, string, string) error {
	p.regenerate()
	return errors.New("provider unavailable")
}

func TestCompleteSetupKeepsSupersededTokenUsed(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.invites.InviteAdmin(ctx, InviteAdminRequest{Email: "boss@example.com", FullName: "Boss"})
	require.NoError(t, err)

	var fresh IssuedInvitation
	h.invites.Identity = regenerateThenFail{Provider: h.ident, regenerate: func() {
		h.clock.Advance(time.Minute)
		var err error
		fresh, err = h.invites.RegenerateInvitation(ctx, domain.KindAdmin, res.Admin.ID, "test")
		require.NoError(t, err)
	}}
	_, err = h.invites.CompleteSetup(ctx, res.Token, strongPassword)
	var up *UpstreamError
	require.ErrorAs(t, err, &up)
	require.NotEmpty(t, fresh.Token)

	_, err = h.invites.ValidateInvitation(ctx, res.Token)
	require.ErrorIs(t, err, ErrInvitationInvalid)
	_, err = h.invites.ValidateInvitation(ctx, fresh.Token)
	require.NoError(t, err)

	h.invites.Identity = h.ident
	_, err = h.invites.CompleteSetup(ctx, res.Token, strongPassword)
	require.ErrorIs(t, err, ErrInvitationInvalid)
	_, err = h.invites.CompleteSetup(ctx, fresh.Token, strongPassword)
	require.NoError(t, err)
	h.login(t, domain.KindAdmin, "boss@example.com")
}

func TestCompleteSetupRedeemsOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	res, err := h.invites.InviteMember(ctx, InviteMemberRequest{Email: "vendor@example.com", FullName: "Vendor"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = h.invites.CompleteSetup(ctx, res.Token, strongPassword)
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, ErrInvitationInvalid)
	}
	require.Equal(t, 1, ok)
}
