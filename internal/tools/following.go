package tools

import (
	"context"

	"github.com/a-yossy/spotify-mcp/internal/formatter"
	"github.com/a-yossy/spotify-mcp/internal/spotify"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListFollowedTool lists every artist the user follows, traversing the
// cursor-paginated following endpoint to completion.
type ListFollowedTool struct {
	client *spotify.Client
	logger *log.Logger
}

// NewListFollowedTool creates a ListFollowedTool.
func NewListFollowedTool(client *spotify.Client, logger *log.Logger) *ListFollowedTool {
	return &ListFollowedTool{client: client, logger: logger}
}

func (t *ListFollowedTool) Definition() mcp.Tool {
	return mcp.NewTool("list_followed_artists",
		mcp.WithDescription("List every artist the current user follows."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func (t *ListFollowedTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "list_followed_artists")

	token, err := t.client.Token(ctx)
	if err != nil {
		return failure(logger, "failed to acquire access token", err), nil
	}

	artists, err := t.client.FollowedArtists(ctx, token)
	if err != nil {
		return failure(logger, "failed to list followed artists", err), nil
	}

	logger.Info("listed followed artists", "count", len(artists))
	return mcp.NewToolResultText(formatter.FollowedArtists(artists)), nil
}

// CheckFollowingTool reports whether the user follows each given artist.
type CheckFollowingTool struct {
	client *spotify.Client
	logger *log.Logger
}

// NewCheckFollowingTool creates a CheckFollowingTool.
func NewCheckFollowingTool(client *spotify.Client, logger *log.Logger) *CheckFollowingTool {
	return &CheckFollowingTool{client: client, logger: logger}
}

func (t *CheckFollowingTool) Definition() mcp.Tool {
	return mcp.NewTool("check_following",
		mcp.WithDescription("Check whether the current user follows the given artists."),
		mcp.WithArray("ids",
			mcp.Required(),
			mcp.Description("Artist IDs to check"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func (t *CheckFollowingTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "check_following")

	ids := request.GetStringSlice("ids", nil)
	if len(ids) == 0 {
		return mcp.NewToolResultError("ids must contain at least one artist ID"), nil
	}

	token, err := t.client.Token(ctx)
	if err != nil {
		return failure(logger, "failed to acquire access token", err), nil
	}

	following, err := t.client.ContainsFollowing(ctx, token, ids)
	if err != nil {
		return failure(logger, "failed to check follow status", err), nil
	}

	logger.Info("checked follow status", "count", len(ids))
	return mcp.NewToolResultText(formatter.FollowStatus(ids, following)), nil
}

// FollowTool follows the given artists.
type FollowTool struct {
	client *spotify.Client
	logger *log.Logger
}

// NewFollowTool creates a FollowTool.
func NewFollowTool(client *spotify.Client, logger *log.Logger) *FollowTool {
	return &FollowTool{client: client, logger: logger}
}

func (t *FollowTool) Definition() mcp.Tool {
	return mcp.NewTool("follow_artists",
		mcp.WithDescription("Follow the given artists as the current user."),
		mcp.WithArray("ids",
			mcp.Required(),
			mcp.Description("Artist IDs to follow"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func (t *FollowTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "follow_artists")

	ids := request.GetStringSlice("ids", nil)
	if len(ids) == 0 {
		return mcp.NewToolResultError("ids must contain at least one artist ID"), nil
	}

	token, err := t.client.Token(ctx)
	if err != nil {
		return failure(logger, "failed to acquire access token", err), nil
	}

	if err := t.client.Follow(ctx, token, ids); err != nil {
		return failure(logger, "failed to follow artists", err), nil
	}

	logger.Info("followed artists", "count", len(ids))
	return mcp.NewToolResultText("Now following the given artists."), nil
}
