// Package config provides application configuration loaded from config files,
// environment variables and defaults via Viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/jonesrussell/newswarehouse/internal/constants"
	"github.com/jonesrussell/newswarehouse/internal/logger"
)

// Config is the root configuration for the application.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Logger   logger.Config  `mapstructure:"logger"`
}

// AppConfig represents application-specific configuration settings.
type AppConfig struct {
	// Name is the name of the application.
	Name string `mapstructure:"name"`
	// Environment is the application environment (development, staging, production).
	Environment string `mapstructure:"environment"`
	// Debug indicates whether debug mode is enabled.
	Debug bool `mapstructure:"debug"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// MigrateURL returns the connection URL used by golang-migrate.
func (c *DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// ScraperConfig holds crawl and ingest configuration.
type ScraperConfig struct {
	// BaseURL is the news source root, e.g. https://www.theguardian.com.
	BaseURL string `mapstructure:"base_url"`
	// Category is the section to ingest (first URL path segment).
	Category string `mapstructure:"category"`
	// UserAgent is sent on every outbound request.
	UserAgent string `mapstructure:"user_agent"`
	// Pages is the pagination budget for steady-state runs.
	Pages int `mapstructure:"pages"`
	// InitialPages is the pagination budget for the first-ever run.
	InitialPages int `mapstructure:"initial_pages"`
	// FetchWorkers bounds the per-article fetch worker pool.
	FetchWorkers int `mapstructure:"fetch_workers"`
	// Interval is the delay between scheduled pipeline runs.
	Interval time.Duration `mapstructure:"interval"`
	// RequestTimeout applies to each page and article fetch.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Load unmarshals the configuration from Viper. Viper must already have been
// initialized (config file, environment, flags) by the command layer.
func Load() (*Config, error) {
	setDefaults()

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values for all configuration keys.
func setDefaults() {
	viper.SetDefault("app.name", "newswarehouse")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	viper.SetDefault("server.address", constants.DefaultServerAddress)
	viper.SetDefault("server.read_timeout", constants.DefaultServerReadTimeout)
	viper.SetDefault("server.write_timeout", constants.DefaultServerWriteTimeout)
	viper.SetDefault("server.idle_timeout", constants.DefaultServerIdleTimeout)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "newswarehouse")
	viper.SetDefault("database.dbname", "newswarehouse")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("scraper.base_url", constants.DefaultBaseURL)
	viper.SetDefault("scraper.category", constants.DefaultCategory)
	viper.SetDefault("scraper.user_agent", constants.DefaultUserAgent)
	viper.SetDefault("scraper.pages", constants.DefaultSteadyPages)
	viper.SetDefault("scraper.initial_pages", constants.DefaultInitialPages)
	viper.SetDefault("scraper.fetch_workers", constants.DefaultFetchWorkers)
	viper.SetDefault("scraper.interval", constants.DefaultRunInterval)
	viper.SetDefault("scraper.request_timeout", constants.DefaultRequestTimeout)

	viper.SetDefault("logger.level", string(logger.DefaultLevel))
	viper.SetDefault("logger.encoding", logger.DefaultEncoding)
	viper.SetDefault("logger.development", false)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment: %s", c.App.Environment)
	}

	if c.Scraper.BaseURL == "" {
		return errors.New("scraper base_url must be specified")
	}
	if c.Scraper.Category == "" {
		return errors.New("scraper category must be specified")
	}
	if c.Scraper.Pages <= 0 || c.Scraper.InitialPages <= 0 {
		return errors.New("scraper page budgets must be positive")
	}
	if c.Scraper.FetchWorkers <= 0 {
		return errors.New("scraper fetch_workers must be positive")
	}
	if c.Scraper.Interval <= 0 {
		return errors.New("scraper interval must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("database host and dbname must be specified")
	}

	return nil
}
