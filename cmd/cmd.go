// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand runs the MCP server over stdio.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the MCP server over stdio",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Serve,
	}
}

// setupCommand initializes the database and config file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file and database, and run migrations",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "write-config",
				Usage: "Write a starter config.toml if none exists",
			},
		},
		Action: r.Setup,
	}
}

// rollbackCommand rolls back the most recent migration.
func rollbackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "rollback",
		Usage:  "Roll back the most recent database migration",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Rollback,
	}
}

// genresCommand manages the genre vocabulary.
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genres",
		Usage: "Manage the music genre vocabulary",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List seeded music genres",
				Flags:  []cli.Flag{configFlag()},
				Action: r.GenresList,
			},
			{
				Name:   "seed",
				Usage:  "Seed the default genre vocabulary (idempotent)",
				Flags:  []cli.Flag{configFlag()},
				Action: r.GenresSeed,
			},
		},
	}
}

// authCommand manages Spotify credentials.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Spotify authorization helpers",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Run the OAuth flow to obtain a refresh token",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Verify the configured refresh token by acquiring an access token",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthStatus,
			},
		},
	}
}

// discoverCommand runs one discovery step from the terminal.
func discoverCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "Run one discovery step for a genre",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:     "genre-id",
				Usage:    "Music genre ID (see `genres list`)",
				Required: true,
			},
		},
		Action: r.Discover,
	}
}
