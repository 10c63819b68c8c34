// package testing contains shared testing utilities
package testing

import (
	"context"
	"net/http"

	"github.com/a-yossy/spotify-mcp/internal/models"
	"github.com/a-yossy/spotify-mcp/internal/spotify"
)

// MockRoundTripper allows custom HTTP responses for testing.
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// StubTokenSource is a test double for discovery.TokenSource.
type StubTokenSource struct {
	AccessToken string
	Err         error
	Calls       int
}

func (s *StubTokenSource) Token(ctx context.Context) (string, error) {
	s.Calls++
	return s.AccessToken, s.Err
}

// StubSearcher is a test double for discovery.ArtistSearcher recording the
// arguments of its last call.
type StubSearcher struct {
	Page *spotify.SearchPage
	Err  error

	Calls      int
	LastToken  string
	LastGenre  string
	LastOffset int
	LastLimit  int
}

func (s *StubSearcher) SearchArtistsByGenre(ctx context.Context, token, genre string, offset, limit int) (*spotify.SearchPage, error) {
	s.Calls++
	s.LastToken = token
	s.LastGenre = genre
	s.LastOffset = offset
	s.LastLimit = limit
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Page, nil
}

// StubExclusions is a test double for discovery.ExclusionChecker.
type StubExclusions struct {
	Excluded map[string]bool
	Err      error
	Calls    int
}

func (s *StubExclusions) ContainsAny(ids []string) (map[string]bool, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	membership := make(map[string]bool, len(ids))
	for _, id := range ids {
		membership[id] = s.Excluded[id]
	}
	return membership, nil
}

// StubProgress is a test double for discovery.ProgressStore backed by a map.
type StubProgress struct {
	Rows        map[int64]*models.MusicSearchProgress
	GetErr      error
	AdvanceErr  error
	AdvanceCall int
}

func NewStubProgress() *StubProgress {
	return &StubProgress{Rows: make(map[int64]*models.MusicSearchProgress)}
}

func (s *StubProgress) GetByGenre(genreID int64) (*models.MusicSearchProgress, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return s.Rows[genreID], nil
}

func (s *StubProgress) AdvanceFrom(genreID int64, expectedOld, newPosition int) (*models.MusicSearchProgress, error) {
	s.AdvanceCall++
	if s.AdvanceErr != nil {
		return nil, s.AdvanceErr
	}
	row := s.Rows[genreID]
	if row == nil {
		row = &models.MusicSearchProgress{MusicGenreID: genreID}
		s.Rows[genreID] = row
	}
	row.Position = newPosition
	return row, nil
}
