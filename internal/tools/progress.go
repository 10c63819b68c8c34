package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/a-yossy/spotify-mcp/internal/formatter"
	"github.com/a-yossy/spotify-mcp/internal/repositories"
	"github.com/a-yossy/spotify-mcp/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetProgressTool reads a genre's stored search position.
type GetProgressTool struct {
	progress *repositories.ProgressRepository
	logger   *log.Logger
}

// NewGetProgressTool creates a GetProgressTool.
func NewGetProgressTool(progress *repositories.ProgressRepository, logger *log.Logger) *GetProgressTool {
	return &GetProgressTool{progress: progress, logger: logger}
}

func (t *GetProgressTool) Definition() mcp.Tool {
	return mcp.NewTool("get_search_progress",
		mcp.WithDescription("Get the stored search position for a music genre."),
		mcp.WithNumber("music_genre_id",
			mcp.Required(),
			mcp.Description("ID of the music genre"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *GetProgressTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "get_search_progress")

	genreID, err := request.RequireInt("music_genre_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	progress, err := t.progress.GetByGenre(int64(genreID))
	if err != nil {
		return failure(logger, "failed to get search progress", err), nil
	}

	return mcp.NewToolResultText(formatter.Progress(int64(genreID), progress)), nil
}

// StartProgressTool records position 0 for a genre, creating its progress
// row. Re-running it resets the position to 0.
type StartProgressTool struct {
	progress *repositories.ProgressRepository
	logger   *log.Logger
}

// NewStartProgressTool creates a StartProgressTool.
func NewStartProgressTool(progress *repositories.ProgressRepository, logger *log.Logger) *StartProgressTool {
	return &StartProgressTool{progress: progress, logger: logger}
}

func (t *StartProgressTool) Definition() mcp.Tool {
	return mcp.NewTool("start_search_progress",
		mcp.WithDescription("Start tracking search progress for a music genre at position 0."),
		mcp.WithNumber("music_genre_id",
			mcp.Required(),
			mcp.Description("ID of the music genre"),
		),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func (t *StartProgressTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "start_search_progress")

	genreID, err := request.RequireInt("music_genre_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	progress, err := t.progress.Upsert(int64(genreID), 0)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return failure(logger, "failed to start search progress", err), nil
	}

	logger.Info("started search progress", "music_genre_id", genreID)
	return mcp.NewToolResultText(fmt.Sprintf(
		"Search progress for music genre %d started at position %d.",
		progress.MusicGenreID, progress.Position,
	)), nil
}

// AdvanceProgressTool advances a genre's stored position by exactly one.
// The genre must have been started first; advancing an untracked genre
// reports absence rather than creating a row.
type AdvanceProgressTool struct {
	progress *repositories.ProgressRepository
	logger   *log.Logger
}

// NewAdvanceProgressTool creates an AdvanceProgressTool.
func NewAdvanceProgressTool(progress *repositories.ProgressRepository, logger *log.Logger) *AdvanceProgressTool {
	return &AdvanceProgressTool{progress: progress, logger: logger}
}

func (t *AdvanceProgressTool) Definition() mcp.Tool {
	return mcp.NewTool("advance_search_progress",
		mcp.WithDescription("Advance the stored search position for a music genre by one."),
		mcp.WithNumber("music_genre_id",
			mcp.Required(),
			mcp.Description("ID of the music genre"),
		),
	)
}

func (t *AdvanceProgressTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := invocationLogger(t.logger, "advance_search_progress")

	genreID, err := request.RequireInt("music_genre_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	current, err := t.progress.GetByGenre(int64(genreID))
	if err != nil {
		return failure(logger, "failed to get search progress", err), nil
	}
	if current == nil {
		return mcp.NewToolResultText(formatter.Progress(int64(genreID), nil)), nil
	}

	updated, err := t.progress.Upsert(int64(genreID), current.Position+1)
	if err != nil {
		return failure(logger, "failed to advance search progress", err), nil
	}

	logger.Info("advanced search progress", "music_genre_id", genreID, "position", updated.Position)
	return mcp.NewToolResultText(fmt.Sprintf(
		"Search progress for music genre %d advanced to position %d.",
		updated.MusicGenreID, updated.Position,
	)), nil
}
