// Package discovery composes token acquisition, paginated artist search,
// exclusion filtering, and the persisted per-genre cursor into a single
// resumable discovery step.
//
// A step is strictly sequential: the cursor only advances after the page
// fetch for its position has completed, so a failed step never mutates
// state and can be retried wholesale. Re-fetching the same offset is
// side-effect-free upstream.
package discovery

import (
	"context"
	"fmt"

	"github.com/a-yossy/spotify-mcp/internal/models"
	"github.com/a-yossy/spotify-mcp/internal/spotify"
	"github.com/charmbracelet/log"
)

// TokenSource acquires a fresh upstream access token. Called once per step;
// tokens are never reused across steps.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ArtistSearcher fetches one offset/limit page of artist search results.
type ArtistSearcher interface {
	SearchArtistsByGenre(ctx context.Context, token, genre string, offset, limit int) (*spotify.SearchPage, error)
}

// ExclusionChecker reports exclusion-list membership for a set of artist ids.
type ExclusionChecker interface {
	ContainsAny(ids []string) (map[string]bool, error)
}

// ProgressStore reads and advances the persisted per-genre cursor.
type ProgressStore interface {
	GetByGenre(genreID int64) (*models.MusicSearchProgress, error)
	AdvanceFrom(genreID int64, expectedOld, newPosition int) (*models.MusicSearchProgress, error)
}

// StepResult is the outcome of one successful discovery step.
type StepResult struct {
	Genre          models.MusicGenre
	PositionBefore int
	PositionAfter  int

	// Artists are the page's items with excluded artists removed.
	Artists []spotify.Artist
	// ExcludedIDs are the page items that were filtered out.
	ExcludedIDs []string

	// Total is the upstream result count for the genre. Exhausted is
	// derived from it each step and never persisted: the cursor tracks
	// upstream pagination, not completion.
	Total     int
	Exhausted bool
}

// Orchestrator runs discovery steps. It assumes a single writer per genre;
// overlapping steps for the same genre are detected by the store's guarded
// advance and surface as ErrStaleProgress rather than skipping a page.
type Orchestrator struct {
	tokens     TokenSource
	search     ArtistSearcher
	exclusions ExclusionChecker
	progress   ProgressStore
	pageSize   int
	logger     *log.Logger
}

// NewOrchestrator creates an Orchestrator. pageSize bounds each search page
// and defines how many items one unit of position covers.
func NewOrchestrator(
	tokens TokenSource,
	search ArtistSearcher,
	exclusions ExclusionChecker,
	progress ProgressStore,
	pageSize int,
	logger *log.Logger,
) *Orchestrator {
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > spotify.MaxSearchLimit {
		pageSize = spotify.MaxSearchLimit
	}

	return &Orchestrator{
		tokens:     tokens,
		search:     search,
		exclusions: exclusions,
		progress:   progress,
		pageSize:   pageSize,
		logger:     logger,
	}
}

// Step executes one discovery step for the given genre: acquire a token,
// fetch the page at the stored position, filter out excluded artists, and
// commit position+1. Position counts pages, so the page at position P
// starts at item offset P*pageSize.
//
// Failures before the commit leave the cursor untouched. A commit failure
// after a successful fetch surfaces as an error; retrying the whole step is
// safe.
func (o *Orchestrator) Step(ctx context.Context, genre *models.MusicGenre) (*StepResult, error) {
	token, err := o.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	position := 0
	if stored, err := o.progress.GetByGenre(genre.ID); err != nil {
		return nil, err
	} else if stored != nil {
		position = stored.Position
	}

	offset := position * o.pageSize
	page, err := o.search.SearchArtistsByGenre(ctx, token, genre.SearchKey, offset, o.pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(page.Items))
	for _, artist := range page.Items {
		ids = append(ids, artist.ID)
	}

	membership, err := o.exclusions.ContainsAny(ids)
	if err != nil {
		return nil, err
	}

	result := &StepResult{
		Genre:          *genre,
		PositionBefore: position,
		PositionAfter:  position + 1,
		Total:          page.Total,
		Exhausted:      len(page.Items) == 0 || offset+len(page.Items) >= page.Total,
	}
	for _, artist := range page.Items {
		if membership[artist.ID] {
			result.ExcludedIDs = append(result.ExcludedIDs, artist.ID)
			continue
		}
		result.Artists = append(result.Artists, artist)
	}

	// The exclusion filter never affects the stored position: it tracks
	// upstream pagination, not post-filter result count.
	if _, err := o.progress.AdvanceFrom(genre.ID, position, position+1); err != nil {
		return nil, fmt.Errorf("fetch succeeded but progress commit failed, retry the step: %w", err)
	}

	if o.logger != nil {
		o.logger.Debug("discovery step committed",
			"genre", genre.SearchKey,
			"position", result.PositionAfter,
			"kept", len(result.Artists),
			"excluded", len(result.ExcludedIDs),
			"total", page.Total,
		)
	}

	return result, nil
}
