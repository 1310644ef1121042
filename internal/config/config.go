// Package config loads scentquiz settings from defaults, an optional YAML
// file, a .env file and SCENTQUIZ_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix is prepended to every environment variable, e.g. SCENTQUIZ_STORAGE_BACKEND
const EnvPrefix = "SCENTQUIZ"

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the full application configuration
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Matching MatchingConfig `mapstructure:"matching"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

type CatalogConfig struct {
	// Path to a .csv, .yaml or .yml catalog; empty uses the built-in sample
	Path string `mapstructure:"path"`
}

type MatchingConfig struct {
	Strategy string `mapstructure:"strategy"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	// HistoryFile, when set, keeps history in a JSON-lines file instead of the backend
	HistoryFile string `mapstructure:"history_file"`
}

type AuthConfig struct {
	Required   bool `mapstructure:"required"`
	BcryptCost int  `mapstructure:"bcrypt_cost"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path
	Output string `mapstructure:"output"`
}

// Strategies accepted by matching.strategy
var Strategies = []string{"tfidf", "keyword"}

// SetDefaults registers every key with its default value
func SetDefaults(v *viper.Viper) {
	v.SetDefault("catalog.path", "")
	v.SetDefault("matching.strategy", "tfidf")
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.path", filepath.Join(DataDir(), "scentquiz.db"))
	v.SetDefault("storage.history_file", "")
	v.SetDefault("auth.required", true)
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_ttl", "30m")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
}

// Load reads the configuration. file may be empty to search ./config.yaml
// and ~/.config/scentquiz/config.yaml.
func Load(file string) (*Config, error) {
	return LoadWith(viper.New(), file)
}

// LoadWith reads the configuration into v, so callers can bind flags first
func LoadWith(v *viper.Viper, file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(ExpandPath(file))
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Matching.Strategy = strings.ToLower(strings.TrimSpace(c.Matching.Strategy))
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Catalog.Path = ExpandPath(c.Catalog.Path)
	c.Storage.Path = ExpandPath(c.Storage.Path)
	c.Storage.HistoryFile = ExpandPath(c.Storage.HistoryFile)
	if c.Logging.Output != "stderr" && c.Logging.Output != "stdout" {
		c.Logging.Output = ExpandPath(c.Logging.Output)
	}
}

// Validate rejects values outside their allowed sets
func (c *Config) Validate() error {
	if !slices.Contains(Strategies, c.Matching.Strategy) {
		return fmt.Errorf("matching.strategy: unknown strategy %q (want one of %s)", c.Matching.Strategy, strings.Join(Strategies, ", "))
	}
	if c.Storage.Backend != BackendSQLite && c.Storage.Backend != BackendMemory {
		return fmt.Errorf("storage.backend: unknown backend %q (want sqlite or memory)", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.Path == "" {
		return errors.New("storage.path: required for the sqlite backend")
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format: unknown format %q (want console or json)", c.Logging.Format)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Server.SessionTTL < 0 {
		return errors.New("server.session_ttl: must not be negative")
	}
	return nil
}

// DataDir is where the database lives: $XDG_DATA_HOME/scentquiz or ~/.local/share/scentquiz
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// StateDir is where the TUI writes its log: $XDG_STATE_HOME/scentquiz or ~/.local/state/scentquiz
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

// ConfigDir holds the optional config.yaml
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env string, fallback ...string) string {
	base := os.Getenv(env)
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, "scentquiz")
}
