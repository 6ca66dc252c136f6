package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/Certs365/auth-service/internal/auth"
	"github.com/Certs365/auth-service/internal/logger"
)

const (
	providerName = "linkedin"

	authURL     = "https://www.linkedin.com/oauth/v2/authorization"
	tokenURL    = "https://www.linkedin.com/oauth/v2/accessToken"
	userinfoURL = "https://api.linkedin.com/v2/userinfo"
)

// Provider implements Sign In with LinkedIn (OpenID Connect flavor).
// LinkedIn does not support PKCE for confidential clients, so the
// challenge/verifier parameters are accepted and ignored; identity
// facts come from the userinfo endpoint rather than an id_token.
type Provider struct {
	oauthConfig *oauth2.Config
	userinfoURL string
}

func New(
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("linkedin oauth config missing required fields")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
		Scopes: []string{
			"openid",
			"profile",
			"email",
		},
	}

	return &Provider{
		oauthConfig: oauthCfg,
		userinfoURL: userinfoURL,
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the OAuth authorization URL.
func (p *Provider) AuthCodeURL(state string, _ string) string {
	return p.oauthConfig.AuthCodeURL(state)
}

func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	_ string,
) (*auth.Identity, error) {

	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("linkedin token exchange failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userinfoURL, nil)
	if err != nil {
		return nil, err
	}

	client := p.oauthConfig.Client(ctx, token)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("linkedin userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin userinfo returned status %d", resp.StatusCode)
	}

	var info struct {
		Sub           string `json:"sub"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("linkedin userinfo parse failed: %w", err)
	}

	if info.Sub == "" {
		return nil, errors.New("linkedin userinfo missing subject")
	}

	logger.Info("linkedin identity fetched", map[string]any{
		"email_present":  info.Email != "",
		"email_verified": info.EmailVerified,
	})

	return &auth.Identity{
		Provider:       providerName,
		ProviderUserID: info.Sub,
		DisplayName:    info.Name,
		Email:          info.Email,
		EmailVerified:  info.EmailVerified,
		AccessToken:    token.AccessToken,
	}, nil
}
