package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	AI     AIConfig     `toml:"ai"`
	Server ServerConfig `toml:"server"`
	Import ImportConfig `toml:"import"`
}

// AIConfig holds Gemini API settings.
type AIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `toml:"port"`
	AutoOpenBrowser bool `toml:"auto_open_browser"`
}

// ImportConfig holds feed import settings.
type ImportConfig struct {
	MaxTitlesPerFeed int `toml:"max_titles_per_feed"`
}

const defaultConfigContent = `[ai]
api_key = ""                # Gemini API key (or set GEMINI_API_KEY env var)
model = ""                  # optional: pin a model instead of auto-selecting

[server]
port = 8080
auto_open_browser = true

[import]
max_titles_per_feed = 5
`

// Load reads and parses the TOML config from the given path. If the file
// does not exist, it creates a default config file at that path. A .env
// file in the working directory is loaded first, and environment variables
// override values from the config file with highest priority.
func Load(path string) (*Config, error) {
	// Optional; the API key is commonly supplied through a .env file.
	_ = godotenv.Load(".env")

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
// This catches cases like "port = 0" which would otherwise be silently
// replaced by the default value.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("import", "max_titles_per_feed") {
		if cfg.Import.MaxTitlesPerFeed < 1 {
			return fmt.Errorf("invalid import.max_titles_per_feed %d: must be >= 1", cfg.Import.MaxTitlesPerFeed)
		}
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	// Note: auto_open_browser defaults to true, but TOML parses missing bool
	// as false, so we cannot distinguish "explicitly set to false" from "not
	// set" using a plain bool. The default config file sets it to true, so
	// this is only relevant for hand-edited configs that omit the field.
	// We leave this as-is to respect explicit false values.
	if cfg.Import.MaxTitlesPerFeed == 0 {
		cfg.Import.MaxTitlesPerFeed = 5
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		} else {
			slog.Warn("ignoring invalid PORT environment variable", "value", v)
		}
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	if cfg.Import.MaxTitlesPerFeed < 1 {
		return fmt.Errorf("invalid import.max_titles_per_feed %d: must be >= 1", cfg.Import.MaxTitlesPerFeed)
	}

	if cfg.AI.APIKey == "" {
		slog.Warn("ai.api_key is empty: set it in the config file or via GEMINI_API_KEY environment variable")
	}

	return nil
}
