package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/identity"
	"github.com/aussiebroadwan/partnerportal/internal/portal/notify"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/partnerportal/pkg/cryptox"
	"github.com/aussiebroadwan/partnerportal/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const strongPassword = "Correct-Horse-9!"

func TestMain(m *testing.M) {
	cryptox.SetPepper("service-test-pepper")
	os.Exit(m.Run())
}

// testClock starts an hour in the past so tokens minted after a few
// Advance calls still pass the verifier's wall clock checks.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Now().UTC().Add(-time.Hour).Truncate(time.Second)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type captureMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	fail map[string]bool
}

func (m *captureMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[msg.To] {
		return errors.New("relay refused recipient")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) to(addr string) []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notify.Message
	for _, msg := range m.sent {
		if msg.To == addr {
			out = append(out, msg)
		}
	}
	return out
}

func (m *captureMailer) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}

// failingPasswords is an identity provider whose password updates fail.
type failingPasswords struct {
	identity.Provider
}

func (failingPasswords) UpdatePassword(context.Context, string, string) error {
	return errors.New("provider unavailable")
}

type harness struct {
	st       *sqlite.Store
	ident    *identity.Local
	clock    *testClock
	mail     *captureMailer
	verifier *jwtx.EdDSAVerifier

	invites   *InvitationService
	members   *MemberService
	sessions  *SessionService
	admins    *AdminService
	mfa       *MFAService
	bootstrap *BootstrapService
	affiliate *AffiliateService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	clk := newTestClock()
	ident := &identity.Local{Store: st, Now: clk.Now}
	mail := &captureMailer{fail: map[string]bool{}}
	n := &notify.Notifier{
		Mailer:    mail,
		Product:   "Partner Portal",
		LoginURL:  "https://portal.example.com/login",
		ReviewURL: "https://portal.example.com/admin/members",
	}
	policy := domain.DefaultPasswordPolicy()
	maxAge := 90 * 24 * time.Hour

	return &harness{
		st:       st,
		ident:    ident,
		clock:    clk,
		mail:     mail,
		verifier: jwtx.NewVerifierEdDSA(keys, "partner-portal", nil),
		invites: &InvitationService{
			Store: st, Identity: ident, Notifier: n,
			Policy:           policy,
			SetupURLTemplate: "https://portal.example.com/{kind}-setup?token={token}",
			Now:              clk.Now,
		},
		members: &MemberService{
			Store: st, Identity: ident, Notifier: n,
			Policy: policy, EmailConcurrency: 2, Now: clk.Now,
		},
		sessions: &SessionService{
			Store: st, Identity: ident, Signer: signer,
			Issuer: "partner-portal", TTL: 24 * time.Hour, Now: clk.Now,
		},
		admins: &AdminService{
			Store: st, Identity: ident,
			Policy: policy, PasswordMaxAge: maxAge, Now: clk.Now,
		},
		mfa: &MFAService{Store: st, Issuer: "Partner Portal", Now: clk.Now},
		bootstrap: &BootstrapService{
			Store: st, Identity: ident, Token: "bootstrap-secret",
			Policy: policy, PasswordMaxAge: maxAge, Now: clk.Now,
		},
		affiliate: &AffiliateService{
			Store: st, IPKey: []byte("ip-key"), ConversionKey: "conversion-secret", Now: clk.Now,
		},
	}
}

// activeAdmin invites an admin and completes their setup.
func (h *harness) activeAdmin(t *testing.T, email string) domain.AdminUser {
	t.Helper()
	ctx := context.Background()
	res, err := h.invites.InviteAdmin(ctx, InviteAdminRequest{Email: email, FullName: "Admin " + email, InvitedBy: "test"})
	require.NoError(t, err)
	_, err = h.invites.CompleteSetup(ctx, res.Token, strongPassword)
	require.NoError(t, err)
	a, err := h.st.Admins().GetAdminByID(ctx, res.Admin.ID)
	require.NoError(t, err)
	return a
}

// approvedMember invites an auto-approved member and completes their setup.
func (h *harness) approvedMember(t *testing.T, email string) domain.Member {
	t.Helper()
	ctx := context.Background()
	res, err := h.invites.InviteMember(ctx, InviteMemberRequest{
		Email: email, FullName: "Member " + email, CompanyName: "Acme", AutoApprove: true, InvitedBy: "test",
	})
	require.NoError(t, err)
	_, err = h.invites.CompleteSetup(ctx, res.Token, strongPassword)
	require.NoError(t, err)
	return res.Member
}

// login signs in and returns the verified claims.
func (h *harness) login(t *testing.T, kind domain.AccountKind, email string) jwtx.Claims {
	t.Helper()
	s, err := h.sessions.Login(context.Background(), LoginRequest{Kind: kind, Email: email, Password: strongPassword})
	require.NoError(t, err)
	claims, err := h.verifier.Verify(s.AccessToken)
	require.NoError(t, err)
	return claims
}

func requireValidation(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr
}

// count returns the number of rows in table.
func (h *harness) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, h.st.DB().QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
