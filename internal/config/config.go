package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/marco/watchNext/internal/catalog"
	"github.com/marco/watchNext/internal/preferences"
)

// APIKeyEnv overrides tmdb.api_key when set
const APIKeyEnv = "TMDB_API_KEY"

// placeholderAPIKey is the value shipped in config.example.yaml
const placeholderAPIKey = "your_api_key_here"

// Config represents the application configuration
type Config struct {
	TMDB        TMDBConfig              `yaml:"tmdb"`
	Preferences preferences.Preferences `yaml:"preferences"`
	Discovery   DiscoveryConfig         `yaml:"discovery"`
	Log         LogConfig               `yaml:"log"`
	Watch       WatchConfig             `yaml:"watch"`
}

// TMDBConfig holds TMDB API configuration
type TMDBConfig struct {
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Language       string        `yaml:"language"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DiscoveryConfig tunes the orchestrator
type DiscoveryConfig struct {
	// AllowStaleResponses lets a superseded request overwrite newer results
	AllowStaleResponses bool `yaml:"allow_stale_responses"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// WatchConfig holds preferences file watch settings
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// Debounce returns the settle delay for file change events
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:  catalog.DefaultBaseURL,
			Language: catalog.DefaultLanguage,
		},
		Preferences: preferences.Default(),
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Watch: WatchConfig{DebounceMS: 500},
	}
}

// Load reads and parses the configuration file. An empty path yields the
// defaults. A missing API key is not an error here; the catalog client
// reports it on first use.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		path, err := expandHome(path)
		if err != nil {
			return nil, err
		}

		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		cfg.TMDB.APIKey = key
	}
	if cfg.TMDB.APIKey == placeholderAPIKey {
		cfg.TMDB.APIKey = ""
	}
	if cfg.TMDB.BaseURL == "" {
		cfg.TMDB.BaseURL = catalog.DefaultBaseURL
	}
	cfg.TMDB.Language = NormalizeLanguage(cfg.TMDB.Language)
	cfg.Preferences.Normalize()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TMDB.RequestTimeout < 0 {
		return fmt.Errorf("tmdb.request_timeout must not be negative")
	}
	if err := c.Preferences.Validate(); err != nil {
		return fmt.Errorf("invalid preferences section: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	return nil
}

// HasAPIKey reports whether a credential was configured
func (c *Config) HasAPIKey() bool {
	return c.TMDB.APIKey != ""
}

// CatalogConfig maps the tmdb section onto the catalog client config
func (c *Config) CatalogConfig() catalog.Config {
	return catalog.Config{
		APIKey:   c.TMDB.APIKey,
		BaseURL:  c.TMDB.BaseURL,
		Language: c.TMDB.Language,
		Timeout:  c.TMDB.RequestTimeout,
	}
}

// LoadDotEnv sets variables from a .env file without overriding the ones
// already in the environment. A missing file is not an error.
func LoadDotEnv(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open env file: %w", err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse env file: %w", err)
	}
	for k, v := range vars {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", k, err)
		}
	}
	return nil
}

// NormalizeLanguage turns loose tags ("en", "pt-br", "en_US") into the
// language-REGION form the catalog expects. Unparsable input falls back to
// the default language.
func NormalizeLanguage(tag string) string {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" {
		return catalog.DefaultLanguage
	}

	t, err := language.Parse(tag)
	if err != nil {
		return catalog.DefaultLanguage
	}

	base, _ := t.Base()
	region, conf := t.Region()
	if conf == language.No {
		return base.String()
	}
	return base.String() + "-" + region.String()
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
