package tools

import (
	"context"

	"github.com/a-yossy/spotify-mcp/internal/formatter"
	"github.com/a-yossy/spotify-mcp/internal/repositories"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListGenresTool lists the seeded genre vocabulary.
type ListGenresTool struct {
	genres *repositories.GenreRepository
	logger *log.Logger
}

// NewListGenresTool creates a ListGenresTool.
func NewListGenresTool(genres *repositories.GenreRepository, logger *log.Logger) *ListGenresTool {
	return &ListGenresTool{genres: genres, logger: logger}
}

func (t *ListGenresTool) Definition() mcp.Tool {
	return mcp.NewTool("list_music_genres",
		mcp.WithDescription("List the music genres available for discovery, with their IDs and search keys."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *ListGenresTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "list_music_genres")

	genres, err := t.genres.FindAll()
	if err != nil {
		return failure(logger, "failed to list music genres", err), nil
	}

	logger.Info("listed music genres", "count", len(genres))
	return mcp.NewToolResultText(formatter.Genres(genres)), nil
}
