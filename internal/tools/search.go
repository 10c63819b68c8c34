package tools

import (
	"context"

	"github.com/a-yossy/spotify-mcp/internal/formatter"
	"github.com/a-yossy/spotify-mcp/internal/spotify"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchTool performs a single-page artist search by genre. Offset and
// limit are caller-supplied; resumable paging across invocations goes
// through DiscoverTool instead.
type SearchTool struct {
	client   *spotify.Client
	pageSize int
	logger   *log.Logger
}

// NewSearchTool creates a SearchTool. pageSize is the default limit when
// the caller does not supply one.
func NewSearchTool(client *spotify.Client, pageSize int, logger *log.Logger) *SearchTool {
	return &SearchTool{client: client, pageSize: pageSize, logger: logger}
}

func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_artists",
		mcp.WithDescription("Search Spotify artists by genre. Returns one page of results."),
		mcp.WithString("genre",
			mcp.Required(),
			mcp.Description("Genre search key, e.g. \"jazz\""),
		),
		mcp.WithNumber("offset",
			mcp.Description("Item offset to start the page at (default 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Page size, at most 50"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func (t *SearchTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "search_artists")

	genre, err := request.RequireString("genre")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	offset := request.GetInt("offset", 0)
	limit := request.GetInt("limit", t.pageSize)
	if offset < 0 {
		return mcp.NewToolResultError("offset must be non-negative"), nil
	}
	if limit <= 0 || limit > spotify.MaxSearchLimit {
		limit = t.pageSize
	}

	token, err := t.client.Token(ctx)
	if err != nil {
		return failure(logger, "failed to acquire access token", err), nil
	}

	page, err := t.client.SearchArtistsByGenre(ctx, token, genre, offset, limit)
	if err != nil {
		return failure(logger, "artist search failed", err), nil
	}

	logger.Info("searched artists", "genre", genre, "offset", offset, "returned", len(page.Items), "total", page.Total)
	return mcp.NewToolResultText(formatter.SearchResults(genre, page)), nil
}
