package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers understood by the diary backends.
const (
	StoreDriverMemory  = "memory"
	StoreDriverSQLite3 = "sqlite3"
)

// DefaultWritingTopic is the essay prompt shown when writing.topic is unset.
const DefaultWritingTopic = "Some people believe that technology has made our lives more complicated. Do you agree or disagree? Explain your position with specific examples."

// Config holds all configuration for our application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Fixtures FixturesConfig `mapstructure:"fixtures"`
	Level    LevelConfig    `mapstructure:"level"`
	Feedback FeedbackConfig `mapstructure:"feedback"`
	Writing  WritingConfig  `mapstructure:"writing"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig selects the session diary backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	LogSQL bool   `mapstructure:"log_sql"`
}

// FixturesConfig points at an optional fixture file overriding the embedded one.
type FixturesConfig struct {
	Path string `mapstructure:"path"`
}

// LevelConfig picks the active learner level by label; a non-empty
// Description replaces the one from the fixtures.
type LevelConfig struct {
	Label       string `mapstructure:"label"`
	Description string `mapstructure:"description"`
}

// FeedbackConfig tunes the tutor replies.
type FeedbackConfig struct {
	ReplyDelay time.Duration `mapstructure:"reply_delay"`
}

// WritingConfig holds the timed writing practice settings.
type WritingConfig struct {
	Duration time.Duration `mapstructure:"duration"`
	Topic    string        `mapstructure:"topic"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.http_port", 8080)
	viper.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)

	viper.SetDefault("store.driver", StoreDriverMemory)
	viper.SetDefault("store.dsn", "file:tutorpad?mode=memory&cache=shared")
	viper.SetDefault("store.log_sql", false)

	viper.SetDefault("fixtures.path", "")

	viper.SetDefault("level.label", "Intermediate")
	viper.SetDefault("level.description", "")

	viper.SetDefault("feedback.reply_delay", time.Second)

	viper.SetDefault("writing.duration", 180*time.Second)
	viper.SetDefault("writing.topic", DefaultWritingTopic)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	if _, err := c.StoreDriver(); err != nil {
		return err
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if c.Feedback.ReplyDelay < 0 {
		return fmt.Errorf("feedback.reply_delay must not be negative: %s", c.Feedback.ReplyDelay)
	}
	if c.Writing.Duration < time.Second {
		return fmt.Errorf("writing.duration must be at least 1s: %s", c.Writing.Duration)
	}
	return nil
}

// StoreDriver returns the normalized diary backend name.
func (c *Config) StoreDriver() (string, error) {
	driver := strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch driver {
	case "", StoreDriverMemory:
		return StoreDriverMemory, nil
	case StoreDriverSQLite3, "sqlite":
		return StoreDriverSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
}

// HTTPAddress returns the listen address for the HTTP server.
func (c *Config) HTTPAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.HTTPPort))
}

// WritingSeconds is the countdown length in whole seconds.
func (c *Config) WritingSeconds() int {
	return int(c.Writing.Duration / time.Second)
}
