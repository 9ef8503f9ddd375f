package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. MARQUEE_TMDB_TOKEN
	EnvPrefix = "MARQUEE"

	// DefaultLanguage is used when tmdb.language is missing or invalid
	DefaultLanguage = "en-US"

	appName        = "marquee"
	configFileName = "config"
	configFileType = "yaml"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Player  PlayerConfig  `mapstructure:"player"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds remote catalog configuration
type TMDBConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Token    string        `mapstructure:"token"`    // v4 read access token
	Language string        `mapstructure:"language"` // BCP 47, e.g. en-US
	Timeout  time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds list persistence configuration
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"` // Empty keeps lists in memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	StartSource string `mapstructure:"start_source"`
	PostersOnly bool   `mapstructure:"posters_only"`
}

// PlayerConfig selects what opens trailers and catalog pages. An empty
// command uses the system default handler.
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File      string `mapstructure:"file"`
	Level     string `mapstructure:"level"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:  "https://api.themoviedb.org/3",
			Token:    "",
			Language: DefaultLanguage,
			Timeout:  30 * time.Second,
		},
		Storage: StorageConfig{
			DataDir: defaultDataPath(),
		},
		UI: UIConfig{
			StartSource: domain.SourcePopular.String(),
			PostersOnly: false,
		},
		Logging: LoggingConfig{
			File:      filepath.Join(defaultDataPath(), "marquee.log"),
			Level:     "INFO",
			MaxSizeMB: 10,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return Load(DefaultConfigDir(), ".")
}

// Load reads config.yaml from the first directory that has one, then
// applies MARQUEE_* environment overrides.
func Load(dirs ...string) (*Config, error) {
	v := newViper()
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// newViper returns a viper instance with defaults registered for every key,
// so environment overrides apply even when the file omits a key.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("tmdb.base_url", def.TMDB.BaseURL)
	v.SetDefault("tmdb.token", def.TMDB.Token)
	v.SetDefault("tmdb.language", def.TMDB.Language)
	v.SetDefault("tmdb.timeout", def.TMDB.Timeout)
	v.SetDefault("storage.data_dir", def.Storage.DataDir)
	v.SetDefault("ui.start_source", def.UI.StartSource)
	v.SetDefault("ui.posters_only", def.UI.PostersOnly)
	v.SetDefault("player.command", def.Player.Command)
	v.SetDefault("player.args", def.Player.Args)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.max_size_mb", def.Logging.MaxSizeMB)
	return v
}

// SaveConfig writes the configuration to the default config directory
func SaveConfig(cfg *Config) error {
	return Save(cfg, DefaultConfigDir())
}

// Save writes cfg as config.yaml inside dir
func Save(cfg *Config, dir string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.token", cfg.TMDB.Token)
	v.Set("tmdb.language", cfg.TMDB.Language)
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())

	v.Set("storage.data_dir", cfg.Storage.DataDir)

	v.Set("ui.start_source", cfg.UI.StartSource)
	v.Set("ui.posters_only", cfg.UI.PostersOnly)

	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)

	configFile := filepath.Join(dir, configFileName+"."+configFileType)
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file holds the API token
	if err := os.Chmod(configFile, 0600); err != nil {
		return fmt.Errorf("failed to restrict config file permissions: %w", err)
	}

	return nil
}

// IsConfigured returns true once a catalog token is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.TMDB.Token) != ""
}

// Normalize replaces invalid values with defaults and returns a warning for
// each replacement, to be logged once a logger exists.
func (c *Config) Normalize() []string {
	var warnings []string

	lang, err := CanonicalLanguage(c.TMDB.Language)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("invalid tmdb.language %q, using %s", c.TMDB.Language, DefaultLanguage))
		lang = DefaultLanguage
	}
	c.TMDB.Language = lang

	if _, err := domain.ParseSource(c.UI.StartSource); err != nil {
		fallback := domain.SourcePopular.String()
		warnings = append(warnings, fmt.Sprintf("invalid ui.start_source %q, using %s", c.UI.StartSource, fallback))
		c.UI.StartSource = fallback
	}

	if c.TMDB.Timeout <= 0 {
		c.TMDB.Timeout = DefaultConfig().TMDB.Timeout
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = DefaultConfig().Logging.MaxSizeMB
	}

	return warnings
}

// StartSource returns the configured initial source
func (c *Config) StartSource() domain.Source {
	src, err := domain.ParseSource(c.UI.StartSource)
	if err != nil {
		return domain.SourcePopular
	}
	return src
}

// CanonicalLanguage validates a BCP 47 tag and returns its canonical form,
// e.g. "pt-br" becomes "pt-BR". An empty tag yields DefaultLanguage.
func CanonicalLanguage(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return DefaultLanguage, nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q: %w", tag, err)
	}
	return t.String(), nil
}
