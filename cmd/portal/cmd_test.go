package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORTAL_DATABASE_FILE", filepath.Join(dir, "portal.db"))
	t.Setenv("PORTAL_PEPPER_FILE", filepath.Join(dir, "pepper"))
	t.Setenv("LOG_LEVEL", "error")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestMigrateThenInviteAdmin(t *testing.T) {
	setupEnv(t)
	t.Setenv("PORTAL_SETUP_URL_TEMPLATE", "https://portal.example.com/setup/{kind}/{token}")

	_, err := run(t, "migrate")
	require.NoError(t, err)

	out, err := run(t, "admin", "invite", "--email", "first@example.com", "--name", "First")
	require.NoError(t, err)
	require.Contains(t, out, "first@example.com")
	require.Contains(t, out, "https://portal.example.com/setup/admin/")

	_, err = run(t, "admin", "invite", "--email", "first@example.com", "--name", "Again")
	require.Error(t, err)

	_, err = run(t, "admin", "invite", "--email", "second@example.com")
	require.ErrorContains(t, err, "name")
}

func TestBootstrapValidatesBeforeCalling(t *testing.T) {
	t.Setenv("BOOTSTRAP_TOKEN", "secret")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "short")

	_, err := run(t, "bootstrap", "--url", "http://127.0.0.1:1", "--email", "root@example.com", "--name", "Root")
	require.ErrorContains(t, err, "password: too short")

	t.Setenv("BOOTSTRAP_TOKEN", "")
	_, err = run(t, "bootstrap", "--email", "root@example.com", "--name", "Root")
	require.ErrorContains(t, err, "BOOTSTRAP_TOKEN")
}

func TestBootstrapValidationMessageIsSorted(t *testing.T) {
	t.Setenv("BOOTSTRAP_TOKEN", "secret")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "short")

	const want = "invalid bootstrap request: email: must be a plain email address, full_name: required, password: too short (min 12)"
	for range 20 {
		_, err := run(t, "bootstrap", "--url", "http://127.0.0.1:1", "--email", "Root <root@example.com>")
		require.EqualError(t, err, want)
	}
}
