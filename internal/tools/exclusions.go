package tools

import (
	"context"
	"errors"

	"github.com/a-yossy/spotify-mcp/internal/formatter"
	"github.com/a-yossy/spotify-mcp/internal/repositories"
	"github.com/a-yossy/spotify-mcp/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListExclusionsTool looks up which of the given artists are excluded.
type ListExclusionsTool struct {
	exclusions *repositories.ExclusionRepository
	logger     *log.Logger
}

// NewListExclusionsTool creates a ListExclusionsTool.
func NewListExclusionsTool(exclusions *repositories.ExclusionRepository, logger *log.Logger) *ListExclusionsTool {
	return &ListExclusionsTool{exclusions: exclusions, logger: logger}
}

func (t *ListExclusionsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_excluded_artists",
		mcp.WithDescription("List which of the given artists are on the exclusion list."),
		mcp.WithArray("ids",
			mcp.Required(),
			mcp.Description("Artist IDs to look up"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *ListExclusionsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "list_excluded_artists")

	ids := request.GetStringSlice("ids", nil)

	artists, err := t.exclusions.FindByIDs(ids)
	if err != nil {
		return failure(logger, "failed to look up excluded artists", err), nil
	}

	logger.Info("listed excluded artists", "requested", len(ids), "excluded", len(artists))
	return mcp.NewToolResultText(formatter.ExcludedArtists(artists)), nil
}

// AddExclusionTool inserts an artist into the exclusion list.
type AddExclusionTool struct {
	exclusions *repositories.ExclusionRepository
	logger     *log.Logger
}

// NewAddExclusionTool creates an AddExclusionTool.
func NewAddExclusionTool(exclusions *repositories.ExclusionRepository, logger *log.Logger) *AddExclusionTool {
	return &AddExclusionTool{exclusions: exclusions, logger: logger}
}

func (t *AddExclusionTool) Definition() mcp.Tool {
	return mcp.NewTool("add_excluded_artist",
		mcp.WithDescription("Add an artist to the exclusion list so discovery filters it out."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Spotify artist ID"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Artist name"),
		),
	)
}

func (t *AddExclusionTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "add_excluded_artist")

	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	artist, err := t.exclusions.Insert(id, name)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateExclusion) || errors.Is(err, shared.ErrInvalidInput) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return failure(logger, "failed to add excluded artist", err), nil
	}

	logger.Info("added excluded artist", "id", id)
	return mcp.NewToolResultText(formatter.ExclusionAdded(artist)), nil
}
