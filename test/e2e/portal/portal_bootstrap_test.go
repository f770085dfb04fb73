package portal_test

import (
	"testing"

	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

func TestBootstrapOnlyOnce(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewSDKClient(baseURL)

	_, err := client.Bootstrap(t.Context(), "wrong-token", portalsdk.BootstrapRequest{
		Email: adminEmail, FullName: adminName, Password: adminPassword,
	})
	requireCode(t, err, "unauthorized_bootstrap")

	admin := bootstrapAdmin(t, client)
	me, err := admin.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, adminEmail, me.Email)
	require.True(t, admin.HasScope("admin:write"))

	_, err = client.Bootstrap(t.Context(), bootstrapToken, portalsdk.BootstrapRequest{
		Email: "second@example.com", FullName: "Second", Password: adminPassword,
	})
	requireCode(t, err, "already_bootstrapped")
}
