package portalsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the partner portal API. It covers the public
// endpoints and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckScopes makes Sessions refuse calls their token's scopes cannot
	// make before sending them. Tests turn it off to exercise the server's
	// own checks.
	CheckScopes bool
}

// NewSDKClient creates a client with scope checking enabled.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckScopes: true,
	}
}

// Login opens a session for an admin or member. Admins with MFA enabled
// must pass the current TOTP code in req.OTP.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/sessions", req, nil)
	if err != nil {
		return nil, err
	}

	var sess SessionResponse
	if err := decodeJSON(resp, &sess, http.StatusCreated); err != nil {
		return nil, err
	}
	return newSession(c, &sess), nil
}

// GetLiveness checks that the service is up.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks that the database and signing key are usable.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetJWKS fetches the public keys that verify session tokens.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", nil, nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON(resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}
	return &jwks, nil
}

// Bootstrap creates the first admin. It only succeeds while no admin exists.
func (c *SDKClient) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*AdminResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/bootstrap", req, map[string]string{
		"X-Bootstrap-Token": token,
	})
	if err != nil {
		return nil, err
	}

	var admin AdminResponse
	if err := decodeJSON(resp, &admin, http.StatusCreated); err != nil {
		return nil, err
	}
	return &admin, nil
}

// ValidateInvitation checks a setup token without using it. Invalid and
// expired tokens return an *APIError carrying the reason.
func (c *SDKClient) ValidateInvitation(ctx context.Context, token string) (*ValidateInvitationResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/invitations/"+url.PathEscape(token), nil, nil)
	if err != nil {
		return nil, err
	}

	var v ValidateInvitationResponse
	if err := decodeJSON(resp, &v, http.StatusOK); err != nil {
		return nil, err
	}
	return &v, nil
}

// CompleteSetup sets the password of an invited account and uses up the token.
func (c *SDKClient) CompleteSetup(ctx context.Context, req CompleteSetupRequest) (*CompleteSetupResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/invitations/complete", req, nil)
	if err != nil {
		return nil, err
	}

	var done CompleteSetupResponse
	if err := decodeJSON(resp, &done, http.StatusOK); err != nil {
		return nil, err
	}
	return &done, nil
}

// Register signs up a member. The account stays pending until an admin
// approves it.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/members/register", req, nil)
	if err != nil {
		return nil, err
	}

	var reg RegisterResponse
	if err := decodeJSON(resp, &reg, http.StatusCreated); err != nil {
		return nil, err
	}
	return &reg, nil
}

// TrackClick records a referral click for the partner with the given slug.
func (c *SDKClient) TrackClick(ctx context.Context, slug string, req ClickRequest) (*ClickResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/track/clicks/"+url.PathEscape(slug), req, nil)
	if err != nil {
		return nil, err
	}

	var click ClickResponse
	if err := decodeJSON(resp, &click, http.StatusCreated); err != nil {
		return nil, err
	}
	return &click, nil
}

// RecordConversion reports a completed sale. key is the shared conversion key.
func (c *SDKClient) RecordConversion(ctx context.Context, key string, req ConversionRequest) (*ConversionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/track/conversions", req, map[string]string{
		"X-Conversion-Key": key,
	})
	if err != nil {
		return nil, err
	}

	var conv ConversionResponse
	if err := decodeJSON(resp, &conv, http.StatusCreated); err != nil {
		return nil, err
	}
	return &conv, nil
}
