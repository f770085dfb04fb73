package portal_test

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/partnerportal/pkg/portalsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Shared setup for the portal end-to-end tests: one image build per run,
 * one container per test, and the account flows most tests start from.
 */

const (
	testImageName = "partner-portal-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	conversionKey  = "test-conversion-key"
	adminEmail     = "admin@example.com"
	adminName      = "Administrator"
	adminPassword  = "Correct-Horse-42!"
	memberPassword = "Member-Password-42!"
)

// TestMain builds the image once and removes it after the run.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Partner Portal Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Partner Portal Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/portal/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// setupPortalContainer starts the portal and returns its base URL.
func setupPortalContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"BOOTSTRAP_TOKEN":           bootstrapToken,
			"PORTAL_CONVERSION_KEY":     conversionKey,
			"PORTAL_SETUP_URL_TEMPLATE": "https://portal.example.com/{kind}-setup?token={token}",
			"PORTAL_SECURE_COOKIES":     "false",
			"MAIL_DRIVER":               "log",
			"ENV":                       "test",
			"LOG_LEVEL":                 "info",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return baseURL, cleanup
}

// bootstrapAdmin creates the first admin and signs in as them.
func bootstrapAdmin(t *testing.T, client *portalsdk.SDKClient) *portalsdk.Session {
	t.Helper()

	admin, err := client.Bootstrap(t.Context(), bootstrapToken, portalsdk.BootstrapRequest{
		Email:    adminEmail,
		FullName: adminName,
		Password: adminPassword,
	})
	require.NoError(t, err, "bootstrap should succeed")
	require.NotEmpty(t, admin.ID)

	return login(t, client, "admin", adminEmail, adminPassword)
}

func login(t *testing.T, client *portalsdk.SDKClient, kind, email, password string) *portalsdk.Session {
	t.Helper()

	session, err := client.Login(t.Context(), portalsdk.LoginRequest{Kind: kind, Email: email, Password: password})
	require.NoError(t, err, "login should succeed")
	require.Equal(t, kind, session.Kind())
	return session
}

// inviteMember invites an auto-approved member, completes setup and signs
// them in.
func inviteMember(t *testing.T, client *portalsdk.SDKClient, admin *portalsdk.Session, email string) (*portalsdk.Session, portalsdk.MemberResponse) {
	t.Helper()

	resp, err := admin.InviteMember(t.Context(), portalsdk.InviteMemberRequest{
		Email:       email,
		FullName:    "Vendor " + email,
		CompanyName: "Vendor Pty Ltd",
		AutoApprove: true,
	})
	require.NoError(t, err)

	_, err = client.CompleteSetup(t.Context(), portalsdk.CompleteSetupRequest{
		Token:    tokenFromLink(t, resp.Invitation.SetupLink),
		Password: memberPassword,
	})
	require.NoError(t, err)

	return login(t, client, "member", email, memberPassword), resp.Member
}

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token, "setup link should carry a token")
	return token
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, portalsdk.IsCode(err, code), "expected %s, got %v", code, err)
}
