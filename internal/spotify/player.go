package spotify

import (
	"context"
	"fmt"
	"net/http"
)

// Track is the slice of a track object the top-tracks endpoint keeps.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	URI          string       `json:"uri"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

type topTracksResponse struct {
	Tracks []Track `json:"tracks"`
}

// Play starts playback of the given context URI (an album, artist, or
// playlist URI) on the user's active device. The endpoint returns no body
// of interest.
func (c *Client) Play(ctx context.Context, token, contextURI string) error {
	body := map[string]string{"context_uri": contextURI}
	return c.doRequest(ctx, token, http.MethodPut, "/v1/me/player/play", nil, body, nil)
}

// TopTracks fetches an artist's top tracks.
func (c *Client) TopTracks(ctx context.Context, token, artistID string) ([]Track, error) {
	endpoint := fmt.Sprintf("/v1/artists/%s/top-tracks", artistID)

	var response topTracksResponse
	if err := c.doRequest(ctx, token, http.MethodGet, endpoint, nil, nil, &response); err != nil {
		return nil, err
	}

	return response.Tracks, nil
}
