package spotify

import (
	"context"
	"fmt"

	"github.com/a-yossy/spotify-mcp/internal/shared"
	"golang.org/x/oauth2"
)

// Scopes requested during the auth login flow. They cover everything the
// discovery tools do: reading and modifying follows and starting playback.
var Scopes = []string{
	"user-follow-read",
	"user-follow-modify",
	"user-read-playback-state",
	"user-modify-playback-state",
}

// OAuthConfig returns the oauth2 configuration for the authorization-code
// flow used by `auth login` to obtain the long-lived refresh token.
func (c *Client) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURL:  c.redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.accountsURL + "/authorize",
			TokenURL:  c.accountsURL + "/api/token",
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// Token exchanges the configured refresh token for a fresh access token.
//
// A new token source is built on every call: access tokens are never cached
// across pipeline steps, trading an extra round trip for the elimination of
// expiry bookkeeping. Failures wrap [shared.ErrAuthFailed].
func (c *Client) Token(ctx context.Context) (string, error) {
	if c.refreshToken == "" {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, shared.ErrNoRefreshToken)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	src := c.OAuthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: c.refreshToken})

	token, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return token.AccessToken, nil
}
