package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/seriestracker/seriestracker/internal/tvrage"
)

// Config holds all application configuration.
type Config struct {
	Site    SiteConfig    `mapstructure:"site"`
	Scrape  ScrapeConfig  `mapstructure:"scrape"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
}

// SiteConfig holds the listing site's URL scheme.
type SiteConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	SearchURL      string `mapstructure:"search_url"`
	EpisodesSuffix string `mapstructure:"episodes_suffix"`
}

// ScrapeConfig holds scraping behaviour toggles.
type ScrapeConfig struct {
	FetchSynopsis bool `mapstructure:"fetch_synopsis"`
	Debug         bool `mapstructure:"debug"`
	Timeout       int  `mapstructure:"timeout"` // seconds, 0 waits forever
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL:        tvrage.DefaultBaseURL,
			SearchURL:      tvrage.DefaultSearchURL,
			EpisodesSuffix: tvrage.DefaultEpisodesSuffix,
		},
		Scrape: ScrapeConfig{
			FetchSynopsis: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8090,
		},
	}
}

// Load reads configuration from file and environment variables.
// Priority: environment variables (including .env) > config file > defaults
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.seriestracker")
	}

	v.SetEnvPrefix("SERIESTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("site.base_url", d.Site.BaseURL)
	v.SetDefault("site.search_url", d.Site.SearchURL)
	v.SetDefault("site.episodes_suffix", d.Site.EpisodesSuffix)

	v.SetDefault("scrape.fetch_synopsis", d.Scrape.FetchSynopsis)
	v.SetDefault("scrape.debug", d.Scrape.Debug)
	v.SetDefault("scrape.timeout", d.Scrape.Timeout)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", d.Logging.Path)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", d.Logging.Compress)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
}

// TVRage converts the site and scrape sections into a client config.
func (c *Config) TVRage() tvrage.Config {
	return tvrage.Config{
		BaseURL:        c.Site.BaseURL,
		SearchURL:      c.Site.SearchURL,
		EpisodesSuffix: c.Site.EpisodesSuffix,
		FetchSynopsis:  c.Scrape.FetchSynopsis,
		Debug:          c.Scrape.Debug,
		Timeout:        time.Duration(c.Scrape.Timeout) * time.Second,
	}
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
