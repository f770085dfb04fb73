package portal_test

import (
	"testing"

	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

func TestRegistrationNeedsApproval(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewSDKClient(baseURL)
	admin := bootstrapAdmin(t, client)

	reg, err := client.Register(t.Context(), portalsdk.RegisterRequest{
		Email:       "vendor@example.com",
		Password:    memberPassword,
		FullName:    "Vendor",
		CompanyName: "Vendor Pty Ltd",
	})
	require.NoError(t, err)
	require.Equal(t, "pending", reg.Member.State)

	_, err = client.Login(t.Context(), portalsdk.LoginRequest{Kind: "member", Email: "vendor@example.com", Password: memberPassword})
	requireCode(t, err, "approval_pending")

	pending, err := admin.ListMembers(t.Context(), true)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approval, err := admin.ApproveMember(t.Context(), reg.Member.ID)
	require.NoError(t, err)
	require.True(t, approval.Changed)
	require.True(t, approval.Member.IsApproved)

	member := login(t, client, "member", "vendor@example.com", memberPassword)
	me, err := member.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, reg.Member.ID, me.AccountID)

	_, err = admin.SetMemberActive(t.Context(), reg.Member.ID, false)
	require.NoError(t, err)
	_, err = member.Me(t.Context())
	require.Error(t, err)
}

func TestMemberCannotReachAdminRoutes(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewSDKClient(baseURL)
	admin := bootstrapAdmin(t, client)
	member, _ := inviteMember(t, client, admin, "vendor@example.com")

	_, err := member.ListAdmins(t.Context())
	require.ErrorContains(t, err, "missing required scope")

	require.NoError(t, member.Logout(t.Context()))
}
