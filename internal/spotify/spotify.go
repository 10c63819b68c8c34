// Package spotify implements the Spotify Web API client used by the
// discovery tools: token exchange, artist search, follow management, and
// playback. Response types follow
// https://developer.spotify.com/documentation/web-api/reference/
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/a-yossy/spotify-mcp/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultAccountsURL = "https://accounts.spotify.com"
	defaultAPIURL      = "https://api.spotify.com"

	// MaxSearchLimit is the largest page size the search endpoint accepts.
	MaxSearchLimit = 50
)

// Client talks to the Spotify Web API. It holds no token state: every
// pipeline step acquires a fresh access token via [Client.Token], so there
// is no expiry bookkeeping to get wrong.
type Client struct {
	clientID     string
	clientSecret string
	refreshToken string
	redirectURI  string

	accountsURL string
	apiURL      string

	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURLs overrides the accounts and API base URLs. Used by tests to
// point the client at httptest servers.
func WithBaseURLs(accountsURL, apiURL string) Option {
	return func(c *Client) {
		c.accountsURL = accountsURL
		c.apiURL = apiURL
	}
}

// WithRateLimit paces outbound requests at the given requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// NewClient creates a Spotify client from the configured credentials.
func NewClient(cfg shared.SpotifyConfig, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	c := &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		refreshToken: cfg.RefreshToken,
		redirectURI:  cfg.RedirectURI,
		accountsURL:  defaultAccountsURL,
		apiURL:       defaultAPIURL,
		httpClient:   http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// doRequest performs a bearer-authenticated request against the Web API and
// decodes the JSON response into result when non-nil. Transport errors,
// non-2xx statuses, and decode failures all wrap [shared.ErrAPIRequest]
// with the endpoint attached; nothing is retried here.
func (c *Client) doRequest(ctx context.Context, token, method, endpoint string, query url.Values, body, result any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %s %s: %v", shared.ErrAPIRequest, method, endpoint, err)
		}
	}

	apiURL := c.apiURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %s %s: encode body: %v", shared.ErrAPIRequest, method, endpoint, err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, payload)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrAPIRequest, method, endpoint, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrAPIRequest, method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: status %d", shared.ErrAPIRequest, method, endpoint, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %s %s: decode response: %v", shared.ErrAPIRequest, method, endpoint, err)
		}
	}

	return nil
}
