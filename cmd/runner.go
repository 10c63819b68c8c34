package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/a-yossy/spotify-mcp/internal/discovery"
	"github.com/a-yossy/spotify-mcp/internal/formatter"
	"github.com/a-yossy/spotify-mcp/internal/models"
	"github.com/a-yossy/spotify-mcp/internal/repositories"
	"github.com/a-yossy/spotify-mcp/internal/server"
	"github.com/a-yossy/spotify-mcp/internal/shared"
	"github.com/a-yossy/spotify-mcp/internal/spotify"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// defaultGenres is the vocabulary (re)seeded by `genres seed`. The initial
// migration seeds the same set.
var defaultGenres = []models.MusicGenre{
	{ID: 1, Name: "Jazz", SearchKey: "jazz"},
	{ID: 2, Name: "Rock", SearchKey: "rock"},
	{ID: 3, Name: "Hip Hop", SearchKey: "hip-hop"},
	{ID: 4, Name: "Electronic", SearchKey: "electronic"},
	{ID: 5, Name: "Classical", SearchKey: "classical"},
	{ID: 6, Name: "Metal", SearchKey: "metal"},
	{ID: 7, Name: "Folk", SearchKey: "folk"},
	{ID: 8, Name: "Soul", SearchKey: "soul"},
	{ID: 9, Name: "Ambient", SearchKey: "ambient"},
	{ID: 10, Name: "Punk", SearchKey: "punk"},
}

// Runner holds all dependencies for CLI commands and provides a method for
// each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, rollbackCommand, genresCommand, authCommand, discoverCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writePlainln(format string, args ...any) error {
	_, err := fmt.Fprintf(r.output, format+"\n", args...)
	return err
}

// reloadConfig re-reads the config file named by the command's --config
// flag, falling back to the already-loaded config when the file is absent.
func (r *Runner) reloadConfig(cmd *cli.Command) {
	path := cmd.String("config")
	if path == "" {
		return
	}
	if loaded, err := shared.LoadConfig(path); err == nil {
		r.config = loaded
	}
}

// openDatabase opens the configured sqlite database with the configured
// pool bounds and runs pending migrations.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Serve runs the MCP server over stdio until the client disconnects.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	if err := r.config.Validate(); err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := server.New(r.config, db, r.logger)
	if err != nil {
		return err
	}

	r.logger.Info("serving MCP over stdio", "database", r.config.Database.Path)
	return server.ServeStdio(s)
}

// Setup initializes the database and optionally writes a starter config.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("write-config") {
		path := cmd.String("config")
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warnf("config not written: %v", err)
		} else {
			r.writePlainln("Wrote starter config to %s", path)
		}
	}

	r.reloadConfig(cmd)

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("database ready", "path", r.config.Database.Path)
	return r.writePlainln("Database initialized at %s", r.config.Database.Path)
}

// Rollback rolls back the most recent migration.
func (r *Runner) Rollback(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return err
	}

	return r.writePlainln("Rolled back the most recent migration")
}

// GenresList prints the seeded genre vocabulary.
func (r *Runner) GenresList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	genres, err := repositories.NewGenreRepository(db).FindAll()
	if err != nil {
		return err
	}

	return r.writePlainln("%s", formatter.Genres(genres))
}

// GenresSeed (re)seeds the default genre vocabulary.
func (r *Runner) GenresSeed(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewGenreRepository(db).Seed(defaultGenres); err != nil {
		return err
	}

	r.logger.Info("seeded genres", "count", len(defaultGenres))
	return r.writePlainln("Seeded %d genres", len(defaultGenres))
}

// AuthLogin runs the OAuth authorization-code flow and prints the refresh
// token to paste into the config file.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	client, err := spotify.NewClient(r.config.Credentials.Spotify)
	if err != nil {
		return err
	}

	oauthConfig := client.OAuthConfig()
	state := shared.GenerateID()
	authURL := oauthConfig.AuthCodeURL(state)

	r.writePlainln("Opening browser for Spotify authorization...")
	r.writePlainln("If the browser does not open, visit:\n%s", authURL)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("could not open browser: %v", err)
	}

	token, err := server.RunOAuthFlow(ctx, oauthConfig, state, 5*time.Minute)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if token.RefreshToken == "" {
		return shared.ErrNoRefreshToken
	}

	r.writePlainln("Authorization successful.")
	r.writePlainln("Add this to config.toml under [credentials.spotify]:")
	return r.writePlainln("refresh_token = %q", token.RefreshToken)
}

// AuthStatus verifies the configured refresh token by acquiring an access
// token.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	if err := r.config.Validate(); err != nil {
		return err
	}

	client, err := spotify.NewClient(r.config.Credentials.Spotify)
	if err != nil {
		return err
	}

	if _, err := client.Token(ctx); err != nil {
		return err
	}

	return r.writePlainln("Credentials OK: access token acquired")
}

// Discover runs one discovery step for a genre from the terminal.
func (r *Runner) Discover(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	if err := r.config.Validate(); err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := spotify.NewClient(r.config.Credentials.Spotify,
		spotify.WithRateLimit(r.config.RateLimit.RequestsPerSecond))
	if err != nil {
		return err
	}

	genreID := cmd.Int("genre-id")
	genre, err := repositories.NewGenreRepository(db).Get(int64(genreID))
	if err != nil {
		return err
	}

	orchestrator := discovery.NewOrchestrator(
		client,
		client,
		repositories.NewExclusionRepository(db, r.config.Exclusions.OnDuplicate),
		repositories.NewProgressRepository(db),
		r.config.Search.PageSize,
		r.logger,
	)

	result, err := orchestrator.Step(ctx, genre)
	if err != nil {
		return err
	}

	return r.writePlainln("%s", formatter.DiscoveryStep(result))
}
