// Package server wires the Spotify client, repositories, and discovery
// orchestrator into the MCP server instance, and hosts the local OAuth
// callback flow used to bootstrap the refresh token.
//
// This is the composition root: concrete implementations are created here
// and injected into the tools. No business logic lives in this package.
package server

import (
	"database/sql"

	"github.com/a-yossy/spotify-mcp/internal/discovery"
	"github.com/a-yossy/spotify-mcp/internal/repositories"
	"github.com/a-yossy/spotify-mcp/internal/shared"
	"github.com/a-yossy/spotify-mcp/internal/spotify"
	"github.com/a-yossy/spotify-mcp/internal/tools"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

const instructions = `Discover Spotify artists by genre. Use list_music_genres to see the
genre vocabulary, then discover_artists to fetch the next unseen page for a
genre — the search position is stored per genre and resumes across sessions.
Artists on the exclusion list are filtered out of discovery results;
add_excluded_artist grows that list. Follow and playback tools act on the
configured user's account.`

// New creates the MCP server with every tool registered. The database
// connection is owned by the caller; cfg must already be validated.
func New(cfg *shared.Config, db *sql.DB, logger *log.Logger) (*server.MCPServer, error) {
	client, err := spotify.NewClient(cfg.Credentials.Spotify,
		spotify.WithRateLimit(cfg.RateLimit.RequestsPerSecond))
	if err != nil {
		return nil, err
	}

	exclusions := repositories.NewExclusionRepository(db, cfg.Exclusions.OnDuplicate)
	genres := repositories.NewGenreRepository(db)
	progress := repositories.NewProgressRepository(db)

	orchestrator := discovery.NewOrchestrator(
		client, client, exclusions, progress, cfg.Search.PageSize, logger)

	s := server.NewMCPServer(
		"spotify-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	searchTool := tools.NewSearchTool(client, cfg.Search.PageSize, logger)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	discoverTool := tools.NewDiscoverTool(orchestrator, genres, logger)
	s.AddTool(discoverTool.Definition(), discoverTool.Handle)

	listFollowedTool := tools.NewListFollowedTool(client, logger)
	s.AddTool(listFollowedTool.Definition(), listFollowedTool.Handle)

	checkFollowingTool := tools.NewCheckFollowingTool(client, logger)
	s.AddTool(checkFollowingTool.Definition(), checkFollowingTool.Handle)

	followTool := tools.NewFollowTool(client, logger)
	s.AddTool(followTool.Definition(), followTool.Handle)

	playTool := tools.NewPlayTool(client, logger)
	s.AddTool(playTool.Definition(), playTool.Handle)

	topTracksTool := tools.NewTopTracksTool(client, logger)
	s.AddTool(topTracksTool.Definition(), topTracksTool.Handle)

	listExclusionsTool := tools.NewListExclusionsTool(exclusions, logger)
	s.AddTool(listExclusionsTool.Definition(), listExclusionsTool.Handle)

	addExclusionTool := tools.NewAddExclusionTool(exclusions, logger)
	s.AddTool(addExclusionTool.Definition(), addExclusionTool.Handle)

	listGenresTool := tools.NewListGenresTool(genres, logger)
	s.AddTool(listGenresTool.Definition(), listGenresTool.Handle)

	getProgressTool := tools.NewGetProgressTool(progress, logger)
	s.AddTool(getProgressTool.Definition(), getProgressTool.Handle)

	startProgressTool := tools.NewStartProgressTool(progress, logger)
	s.AddTool(startProgressTool.Definition(), startProgressTool.Handle)

	advanceProgressTool := tools.NewAdvanceProgressTool(progress, logger)
	s.AddTool(advanceProgressTool.Definition(), advanceProgressTool.Handle)

	return s, nil
}

// ServeStdio runs the MCP server over stdin/stdout until the client
// disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
