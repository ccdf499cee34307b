// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package oidc is a small OpenID Connect relying-party client built on
// golang.org/x/oauth2: discovery, code exchange, userinfo and refresh.
package oidc

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

const discoveryTimeout = 10 * time.Second

// ProviderMetadata is the subset of the discovery document this client uses.
type ProviderMetadata struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
	EndSessionEndpoint    string `json:"end_session_endpoint"`
}

// Claims are the userinfo claims the application consumes.
type Claims struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// Client talks to a single OpenID Connect provider.
type Client struct {
	metadata ProviderMetadata
	config   oauth2.Config
}

// Discover fetches the provider's discovery document and returns a configured
// client. The HTTP client carries both the discovery fetch and later userinfo
// calls.
func Discover(ctx context.Context, issuer, clientID, clientSecret string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, discoveryTimeout)
	defer cancel()

	wellKnown := issuer + "/.well-known/openid-configuration"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wellKnown, nil)
	if err != nil {
		return nil, fmt.Errorf("building discovery request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching discovery document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discovery returned status %d", resp.StatusCode)
	}

	var meta ProviderMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decoding discovery document: %w", err)
	}
	if meta.AuthorizationEndpoint == "" || meta.TokenEndpoint == "" {
		return nil, errors.New("discovery document missing endpoints")
	}

	return &Client{
		metadata: meta,
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"openid", "email", "profile", "offline_access"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  meta.AuthorizationEndpoint,
				TokenURL: meta.TokenEndpoint,
			},
		},
	}, nil
}

// AuthCodeURL builds the authorization redirect for the given state and
// per-request callback URL.
func (c *Client) AuthCodeURL(state, redirectURL string) string {
	cfg := c.config
	cfg.RedirectURL = redirectURL
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for tokens. The redirect URL must
// match the one used in AuthCodeURL.
func (c *Client) Exchange(ctx context.Context, code, redirectURL string) (*oauth2.Token, error) {
	cfg := c.config
	cfg.RedirectURL = redirectURL
	return cfg.Exchange(ctx, code)
}

// UserInfo fetches the userinfo claims for the token.
func (c *Client) UserInfo(ctx context.Context, token *oauth2.Token) (Claims, error) {
	if c.metadata.UserinfoEndpoint == "" {
		return Claims{}, errors.New("provider has no userinfo endpoint")
	}

	ctx, cancel := context.WithTimeout(ctx, discoveryTimeout)
	defer cancel()

	client := c.config.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.metadata.UserinfoEndpoint, nil)
	if err != nil {
		return Claims{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return Claims{}, fmt.Errorf("fetching userinfo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Claims{}, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var claims Claims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return Claims{}, fmt.Errorf("decoding userinfo: %w", err)
	}
	if claims.Sub == "" {
		return Claims{}, errors.New("userinfo missing sub claim")
	}
	return claims, nil
}

// Refresh exchanges a refresh token for a new token set. One attempt, no
// retries: a failure means the session is no longer recoverable.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, errors.New("no refresh token")
	}
	src := c.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return src.Token()
}

// EndSessionURL returns the provider logout URL, or "" when the provider does
// not advertise one.
func (c *Client) EndSessionURL(redirectURI string) string {
	if c.metadata.EndSessionEndpoint == "" {
		return ""
	}
	u, err := url.Parse(c.metadata.EndSessionEndpoint)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("client_id", c.config.ClientID)
	if redirectURI != "" {
		q.Set("post_logout_redirect_uri", redirectURI)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// GenerateState returns a random URL-safe state token.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
