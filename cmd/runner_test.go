package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-yossy/spotify-mcp/internal/shared"
	"github.com/urfave/cli/v3"
)

// writeTestConfig writes a config pointing the database into a temp dir and
// returns the config path.
func writeTestConfig(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	dbPath := filepath.Join(tmpDir, "test.db")

	content := fmt.Sprintf(`[database]
path = %q

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
refresh_token = "test_refresh"
`, dbPath)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	return configPath
}

func newTestApp(runner *Runner) *cli.Command {
	return &cli.Command{
		Name:     "spotify-mcp",
		Commands: runner.register(),
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writePlainln", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlainln("hello %s", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := make(map[string]bool)
		for _, command := range commands {
			names[command.Name] = true
		}

		for _, want := range []string{"serve", "setup", "rollback", "genres", "auth", "discover"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})
}

func TestRunnerCommands(t *testing.T) {
	t.Run("Setup Creates Database", func(t *testing.T) {
		configPath := writeTestConfig(t)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		app := newTestApp(runner)
		err := app.Run(context.Background(), []string{"spotify-mcp", "setup", "--config", configPath})
		if err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		if !strings.Contains(output.String(), "Database initialized") {
			t.Errorf("expected confirmation, got %q", output.String())
		}
		if _, err := os.Stat(runner.config.Database.Path); err != nil {
			t.Errorf("expected database file to exist: %v", err)
		}
	})

	t.Run("Genres List", func(t *testing.T) {
		configPath := writeTestConfig(t)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		app := newTestApp(runner)
		err := app.Run(context.Background(), []string{"spotify-mcp", "genres", "list", "--config", configPath})
		if err != nil {
			t.Fatalf("genres list failed: %v", err)
		}

		if !strings.Contains(output.String(), "jazz") {
			t.Errorf("expected seeded genres in output, got %q", output.String())
		}
	})

	t.Run("Genres Seed Idempotent", func(t *testing.T) {
		configPath := writeTestConfig(t)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		app := newTestApp(runner)
		for i := 0; i < 2; i++ {
			err := app.Run(context.Background(), []string{"spotify-mcp", "genres", "seed", "--config", configPath})
			if err != nil {
				t.Fatalf("genres seed run %d failed: %v", i+1, err)
			}
		}

		if !strings.Contains(output.String(), "Seeded 10 genres") {
			t.Errorf("expected seed confirmation, got %q", output.String())
		}
	})

	t.Run("Rollback", func(t *testing.T) {
		configPath := writeTestConfig(t)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		app := newTestApp(runner)
		if err := app.Run(context.Background(), []string{"spotify-mcp", "setup", "--config", configPath}); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		if err := app.Run(context.Background(), []string{"spotify-mcp", "rollback", "--config", configPath}); err != nil {
			t.Fatalf("rollback failed: %v", err)
		}

		if !strings.Contains(output.String(), "Rolled back") {
			t.Errorf("expected rollback confirmation, got %q", output.String())
		}
	})
}
