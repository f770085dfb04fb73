package portalsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrSessionExpired is returned once the access token has expired. Sessions
// are not refreshed; log in again.
var ErrSessionExpired = errors.New("portalsdk: session expired")

// Session is an authenticated admin or member session. It is safe for
// concurrent use.
type Session struct {
	client *SDKClient

	mu                 sync.RWMutex
	accessToken        string
	expiresAt          time.Time
	kind               string
	accountID          string
	mustChangePassword bool
	scopes             map[string]bool
}

func newSession(client *SDKClient, resp *SessionResponse) *Session {
	return &Session{
		client:             client,
		accessToken:        resp.AccessToken,
		expiresAt:          resp.ExpiresAt,
		kind:               resp.Kind,
		accountID:          resp.AccountID,
		mustChangePassword: resp.MustChangePassword,
		scopes:             parseScopes(resp.Scope),
	}
}

// NewSessionFromToken wraps a token obtained elsewhere. scope is the
// space-delimited scope string that came with it.
func (c *SDKClient) NewSessionFromToken(accessToken, scope string, expiresAt time.Time) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
		expiresAt:   expiresAt,
		scopes:      parseScopes(scope),
	}
}

func parseScopes(scopeStr string) map[string]bool {
	parts := strings.Fields(scopeStr)
	scopes := make(map[string]bool, len(parts))
	for _, scope := range parts {
		scopes[scope] = true
	}
	return scopes
}

func (s *Session) validToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}

// AccessToken returns the bearer token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Kind is "admin" or "member".
func (s *Session) Kind() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kind
}

func (s *Session) AccountID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountID
}

// MustChangePassword reports the flag returned at login.
func (s *Session) MustChangePassword() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mustChangePassword
}

func (s *Session) HasScope(scope string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopes[scope]
}

func (s *Session) checkScopes(required ...string) error {
	if !s.client.CheckScopes || len(required) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []string
	for _, scope := range required {
		if !s.scopes[scope] {
			missing = append(missing, scope)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required scope(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// Me returns the account behind the session.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil)
	if err != nil {
		return nil, err
	}

	var me MeResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return nil, err
	}
	return &me, nil
}

// Logout revokes every session of the account, this one included.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/sessions", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
