package tools

import (
	"context"
	"errors"

	"github.com/a-yossy/spotify-mcp/internal/discovery"
	"github.com/a-yossy/spotify-mcp/internal/formatter"
	"github.com/a-yossy/spotify-mcp/internal/repositories"
	"github.com/a-yossy/spotify-mcp/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// DiscoverTool runs one resumable discovery step for a genre: fetch the
// page at the stored position, filter out excluded artists, and advance the
// persisted cursor by one.
type DiscoverTool struct {
	orchestrator *discovery.Orchestrator
	genres       *repositories.GenreRepository
	logger       *log.Logger
}

// NewDiscoverTool creates a DiscoverTool.
func NewDiscoverTool(orchestrator *discovery.Orchestrator, genres *repositories.GenreRepository, logger *log.Logger) *DiscoverTool {
	return &DiscoverTool{orchestrator: orchestrator, genres: genres, logger: logger}
}

func (t *DiscoverTool) Definition() mcp.Tool {
	return mcp.NewTool("discover_artists",
		mcp.WithDescription("Run one discovery step for a music genre: fetch the next page of artists, filter out excluded ones, and advance the stored search position. Resumes where the last step left off."),
		mcp.WithNumber("music_genre_id",
			mcp.Required(),
			mcp.Description("ID of the music genre (see list_music_genres)"),
		),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func (t *DiscoverTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "discover_artists")

	genreID, err := request.RequireInt("music_genre_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	genre, err := t.genres.Get(int64(genreID))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return failure(logger, "failed to load music genre", err), nil
	}

	result, err := t.orchestrator.Step(ctx, genre)
	if err != nil {
		if errors.Is(err, shared.ErrStaleProgress) {
			return failure(logger, "another discovery step advanced this genre concurrently; re-run to continue from the new position", err), nil
		}
		return failure(logger, "discovery step failed", err), nil
	}

	logger.Info("discovery step complete",
		"genre", genre.SearchKey,
		"position", result.PositionAfter,
		"kept", len(result.Artists),
		"excluded", len(result.ExcludedIDs),
	)
	return mcp.NewToolResultText(formatter.DiscoveryStep(result)), nil
}
