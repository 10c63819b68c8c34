package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// DuplicatePolicy controls what happens when an artist is inserted into the
// exclusion list twice.
type DuplicatePolicy string

const (
	// DuplicateError surfaces the conflict as ErrDuplicateExclusion.
	DuplicateError DuplicatePolicy = "error"
	// DuplicateIgnore treats the re-insert as a no-op and returns the
	// existing row.
	DuplicateIgnore DuplicatePolicy = "ignore"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Search      SearchConfig      `toml:"search"`
	Exclusions  ExclusionsConfig  `toml:"exclusions"`
	RateLimit   RateLimitConfig   `toml:"ratelimit"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials. The refresh token is
// obtained once via `spotify-mcp auth login` and pasted here; every
// upstream call exchanges it for a fresh access token.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`
	RedirectURI  string `toml:"redirect_uri"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SearchConfig controls genre search pagination.
type SearchConfig struct {
	PageSize int `toml:"page_size"`
}

// ExclusionsConfig controls exclusion-list behavior.
type ExclusionsConfig struct {
	OnDuplicate DuplicatePolicy `toml:"on_duplicate"`
}

// RateLimitConfig paces outbound Spotify API requests.
type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	config.applyDefaults()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyDefaults()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "spotify-mcp.db"
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 5
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 2
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = 20
	}
	if c.Search.PageSize > 50 {
		c.Search.PageSize = 50
	}
	if c.Exclusions.OnDuplicate == "" {
		c.Exclusions.OnDuplicate = DuplicateError
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = 5.0
	}
	if c.Credentials.Spotify.RedirectURI == "" {
		c.Credentials.Spotify.RedirectURI = "http://localhost:8080/callback"
	}
}

// Validate checks that the credentials needed for upstream calls are present.
func (c *Config) Validate() error {
	s := c.Credentials.Spotify
	if s.ClientID == "" || s.ClientSecret == "" {
		return fmt.Errorf("%w: spotify client_id and client_secret are required", ErrMissingCredentials)
	}
	if s.RefreshToken == "" {
		return ErrNoRefreshToken
	}
	if c.Exclusions.OnDuplicate != DuplicateError && c.Exclusions.OnDuplicate != DuplicateIgnore {
		return fmt.Errorf("%w: exclusions.on_duplicate must be %q or %q", ErrInvalidConfig, DuplicateError, DuplicateIgnore)
	}
	return nil
}
