package auth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/blog-platform-api/internal/config"
	"github.com/rs/zerolog"
	"resty.dev/v3"
)

// TokenResponse is the provider's code-exchange response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	IDToken     string `json:"id_token"`
}

// UserInfo is the subset of the OpenID userinfo response we use
type UserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

type oauthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// OAuthClient drives the hosted Google OAuth code flow: building the
// redirect URL, exchanging the callback code, and fetching userinfo.
type OAuthClient struct {
	cfg  *config.OAuthConfig
	http *resty.Client
	log  zerolog.Logger
}

// NewOAuthClient creates an OAuthClient
func NewOAuthClient(cfg *config.OAuthConfig, log zerolog.Logger) *OAuthClient {
	return &OAuthClient{
		cfg:  cfg,
		http: resty.New(),
		log:  log.With().Str("component", "oauth").Logger(),
	}
}

// Close releases the underlying HTTP client
func (c *OAuthClient) Close() error {
	return c.http.Close()
}

// AuthCodeURL builds the provider redirect URL for the given one-shot
// state parameter.
func (c *OAuthClient) AuthCodeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.cfg.GoogleClientID)
	params.Set("redirect_uri", c.cfg.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", "openid email")
	params.Set("state", state)

	return c.cfg.AuthURL + "?" + params.Encode()
}

// Exchange trades the callback code for tokens
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*TokenResponse, error) {
	var token TokenResponse
	var apiErr oauthError

	resp, err := c.http.R().
		WithContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.cfg.GoogleClientID,
			"client_secret": c.cfg.GoogleClientSecret,
			"redirect_uri":  c.cfg.RedirectURL,
			"grant_type":    "authorization_code",
			"code":          code,
		}).
		SetResult(&token).
		SetError(&apiErr).
		Post(c.cfg.TokenURL)
	if err != nil {
		return nil, fmt.Errorf("token exchange request failed: %w", err)
	}
	if resp.IsError() {
		c.log.Warn().
			Int("status", resp.StatusCode()).
			Str("error", apiErr.Error).
			Msg("Token exchange rejected")
		return nil, fmt.Errorf("token exchange failed: %s", apiErr.Error)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token exchange returned no access token")
	}

	return &token, nil
}

// UserInfo fetches the authenticated user's identity from the provider
func (c *OAuthClient) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	var info UserInfo

	resp, err := c.http.R().
		WithContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&info).
		Get(c.cfg.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("userinfo failed with status %d", resp.StatusCode())
	}
	if info.Email == "" {
		return nil, fmt.Errorf("userinfo returned no email")
	}

	return &info, nil
}
