package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ExternalURLs holds known external links for a resource.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Followers reports follower counts for an artist.
type Followers struct {
	Href  *string `json:"href"`
	Total int     `json:"total"`
}

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist is a full artist object as returned by the search endpoint.
type Artist struct {
	ExternalURLs ExternalURLs `json:"external_urls"`
	Followers    Followers    `json:"followers"`
	Genres       []string     `json:"genres"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Images       []Image      `json:"images"`
	Name         string       `json:"name"`
	Popularity   int          `json:"popularity"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

// SearchPage is one offset/limit page of artist search results. The server
// is stateless between calls; the caller supplies offset and limit.
type SearchPage struct {
	Href     string   `json:"href"`
	Limit    int      `json:"limit"`
	Next     *string  `json:"next"`
	Offset   int      `json:"offset"`
	Previous *string  `json:"previous"`
	Total    int      `json:"total"`
	Items    []Artist `json:"items"`
}

type searchResponse struct {
	Artists SearchPage `json:"artists"`
}

// FollowedArtist is the slice of an artist object the following endpoint
// traversal keeps.
type FollowedArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type followingResponse struct {
	Artists struct {
		Cursors struct {
			After *string `json:"after"`
		} `json:"cursors"`
		Items []FollowedArtist `json:"items"`
	} `json:"artists"`
}

// SearchArtistsByGenre fetches exactly one page of artist search results for
// the given genre key. No multi-page aggregation happens here; advancing
// through pages is the orchestrator's job because the position must be
// durably recorded between pages.
func (c *Client) SearchArtistsByGenre(ctx context.Context, token, genre string, offset, limit int) (*SearchPage, error) {
	query := url.Values{}
	query.Set("type", "artist")
	query.Set("q", "genre:"+genre)
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	var response searchResponse
	if err := c.doRequest(ctx, token, http.MethodGet, "/v1/search", query, nil, &response); err != nil {
		return nil, err
	}

	return &response.Artists, nil
}

// FollowedArtists traverses the cursor-paginated following list to
// completion: starting from an empty `after` cursor, it appends each page's
// items in server order and stops once the server returns no cursor.
// Duplicates under cursor drift propagate; the traversal does not
// deduplicate, matching upstream semantics.
func (c *Client) FollowedArtists(ctx context.Context, token string) ([]FollowedArtist, error) {
	var artists []FollowedArtist

	after := ""
	for {
		query := url.Values{}
		query.Set("type", "artist")
		query.Set("after", after)

		var response followingResponse
		if err := c.doRequest(ctx, token, http.MethodGet, "/v1/me/following", query, nil, &response); err != nil {
			return nil, err
		}

		artists = append(artists, response.Artists.Items...)

		if response.Artists.Cursors.After == nil {
			return artists, nil
		}
		after = *response.Artists.Cursors.After
	}
}

// ContainsFollowing reports, for each id, whether the current user follows
// that artist. The response array is parallel to the input order.
func (c *Client) ContainsFollowing(ctx context.Context, token string, ids []string) ([]bool, error) {
	query := url.Values{}
	query.Set("type", "artist")
	query.Set("ids", strings.Join(ids, ","))

	var response []bool
	if err := c.doRequest(ctx, token, http.MethodGet, "/v1/me/following/contains", query, nil, &response); err != nil {
		return nil, err
	}

	return response, nil
}

// Follow adds the given artists to the current user's followed list.
func (c *Client) Follow(ctx context.Context, token string, ids []string) error {
	query := url.Values{}
	query.Set("type", "artist")

	body := map[string][]string{"ids": ids}
	return c.doRequest(ctx, token, http.MethodPut, "/v1/me/following", query, body, nil)
}
