package tools

import (
	"context"

	"github.com/a-yossy/spotify-mcp/internal/formatter"
	"github.com/a-yossy/spotify-mcp/internal/spotify"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// PlayTool starts playback of a context URI on the user's active device.
type PlayTool struct {
	client *spotify.Client
	logger *log.Logger
}

// NewPlayTool creates a PlayTool.
func NewPlayTool(client *spotify.Client, logger *log.Logger) *PlayTool {
	return &PlayTool{client: client, logger: logger}
}

func (t *PlayTool) Definition() mcp.Tool {
	return mcp.NewTool("play",
		mcp.WithDescription("Start playback of a Spotify context URI (artist, album, or playlist) on the active device."),
		mcp.WithString("context_uri",
			mcp.Required(),
			mcp.Description("Spotify URI to play, e.g. spotify:artist:..."),
		),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func (t *PlayTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "play")

	contextURI, err := request.RequireString("context_uri")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	token, err := t.client.Token(ctx)
	if err != nil {
		return failure(logger, "failed to acquire access token", err), nil
	}

	if err := t.client.Play(ctx, token, contextURI); err != nil {
		return failure(logger, "failed to start playback", err), nil
	}

	logger.Info("started playback", "context_uri", contextURI)
	return mcp.NewToolResultText("Playback started."), nil
}

// TopTracksTool fetches an artist's top tracks.
type TopTracksTool struct {
	client *spotify.Client
	logger *log.Logger
}

// NewTopTracksTool creates a TopTracksTool.
func NewTopTracksTool(client *spotify.Client, logger *log.Logger) *TopTracksTool {
	return &TopTracksTool{client: client, logger: logger}
}

func (t *TopTracksTool) Definition() mcp.Tool {
	return mcp.NewTool("get_artist_top_tracks",
		mcp.WithDescription("Get an artist's top tracks."),
		mcp.WithString("artist_id",
			mcp.Required(),
			mcp.Description("Spotify artist ID"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func (t *TopTracksTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "get_artist_top_tracks")

	artistID, err := request.RequireString("artist_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	token, err := t.client.Token(ctx)
	if err != nil {
		return failure(logger, "failed to acquire access token", err), nil
	}

	tracks, err := t.client.TopTracks(ctx, token, artistID)
	if err != nil {
		return failure(logger, "failed to fetch top tracks", err), nil
	}

	logger.Info("fetched top tracks", "artist_id", artistID, "count", len(tracks))
	return mcp.NewToolResultText(formatter.TopTracks(artistID, tracks)), nil
}
