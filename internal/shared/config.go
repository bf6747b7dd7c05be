package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvAPIKey is the environment variable that overrides the configured
// server secret. Bots deployed alongside the API set this instead of
// editing config.toml.
const EnvAPIKey = "TASKBOARD_API_KEY"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Client  ClientConfig  `toml:"client"`
	Scraper ScraperConfig `toml:"scraper"`
}

// ServerConfig contains HTTP server settings.
//
// APIKey is the shared secret compared against bearer tokens. An empty key
// disables authentication (dev mode).
type ServerConfig struct {
	Host   string `toml:"host"`
	Port   int    `toml:"port"`
	APIKey string `toml:"api_key"`
}

// StorageConfig selects the task store backend.
//
// Selection order: Supabase credentials, then a sqlite path, then the
// ephemeral in-memory store mirrored to FilePath.
type StorageConfig struct {
	SupabaseURL string `toml:"supabase_url"`
	SupabaseKey string `toml:"supabase_key"`
	SQLitePath  string `toml:"sqlite_path"`
	FilePath    string `toml:"file_path"`

	MaxOpenConns int `toml:"max_open_conns"`
	MaxIdleConns int `toml:"max_idle_conns"`
}

// ClientConfig contains settings for the dashboard TUI and task commands.
type ClientConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// ScraperConfig contains settings for the video page scrapers.
type ScraperConfig struct {
	UserAgent string `toml:"user_agent"`
	Language  string `toml:"language"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidConfig)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays environment overrides onto the loaded configuration.
func (c *Config) applyEnv() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.Server.APIKey = key
	}
}
