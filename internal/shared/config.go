package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// APIKeyEnv is the environment variable that overrides [YouTubeConfig.APIKey].
const APIKeyEnv = "YOUTUBE_API_KEY"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	YouTube  YouTubeConfig  `toml:"youtube"`
	Export   ExportConfig   `toml:"export"`
	Playlist PlaylistConfig `toml:"playlist"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// YouTubeConfig contains YouTube Data API credentials and client settings.
type YouTubeConfig struct {
	APIKey            string  `toml:"api_key"`
	ClientSecretsPath string  `toml:"client_secrets_path"`
	TokenPath         string  `toml:"token_path"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// ExportConfig contains default spreadsheet names and result caps.
type ExportConfig struct {
	PlaylistFile       string `toml:"playlist_file"`
	MixFile            string `toml:"mix_file"`
	PlaylistMaxResults int    `toml:"playlist_max_results"`
	MixMaxResults      int    `toml:"mix_max_results"`
}

// PlaylistConfig describes the playlist that videos are added to.
type PlaylistConfig struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Privacy     string `toml:"privacy"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the local OAuth callback server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RedirectURL returns the OAuth redirect URL served by the callback server.
func (s ServerConfig) RedirectURL() string {
	return fmt.Sprintf("http://%s:%d/callback", s.Host, s.Port)
}

// Addr returns the listen address for the callback server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Fields missing from the file keep the values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// LoadConfigOrDefault loads the config at path when it exists and falls back to [DefaultConfig] otherwise.
func LoadConfigOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// SaveConfig writes the configuration to path as TOML.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
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

// ResolveAPIKey returns the API key from the environment, falling back to the config file value.
//
// Reports [ErrMissingAPIKey] when neither is set.
func (c *Config) ResolveAPIKey() (string, error) {
	if key := os.Getenv(APIKeyEnv); key != "" {
		return key, nil
	}
	if c.YouTube.APIKey == "" {
		return "", fmt.Errorf("%w: set youtube.api_key or %s", ErrMissingAPIKey, APIKeyEnv)
	}
	return c.YouTube.APIKey, nil
}
