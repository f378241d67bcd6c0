// Package config resolves runtime settings for quietscan.
//
// Settings come from three layers, highest precedence first: QUIETSCAN_*
// environment variables, a YAML config file, and built-in defaults. The
// default file is ~/.quietscan/config.yaml and may be absent.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QUIETSCAN"

// Keys understood in the config file and as QUIETSCAN_<KEY> variables.
const (
	KeyDataDir          = "data_dir"
	KeyAutoAdvanceDelay = "auto_advance_delay"
	KeyCatalogFile      = "catalog_file"
	KeyLogLevel         = "log_level"
	KeyMetricsAddr      = "metrics_addr"
	KeyScoreCacheSize   = "score_cache_size"
)

// Config is the resolved configuration.
type Config struct {
	DataDir          string        `mapstructure:"data_dir" json:"data_dir"`
	AutoAdvanceDelay time.Duration `mapstructure:"auto_advance_delay" json:"auto_advance_delay"`
	CatalogFile      string        `mapstructure:"catalog_file" json:"catalog_file,omitempty"`
	LogLevel         string        `mapstructure:"log_level" json:"log_level"`
	MetricsAddr      string        `mapstructure:"metrics_addr" json:"metrics_addr,omitempty"`
	ScoreCacheSize   int           `mapstructure:"score_cache_size" json:"score_cache_size"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:          defaultDataDir(),
		AutoAdvanceDelay: 600 * time.Millisecond,
		LogLevel:         "info",
		ScoreCacheSize:   128,
	}
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quietscan")
}

// Load resolves the configuration. An explicit path must exist; with an
// empty path the default file is read when present.
func Load(path string) (Config, error) {
	v := viper.New()
	def := Defaults()
	v.SetDefault(KeyDataDir, def.DataDir)
	v.SetDefault(KeyAutoAdvanceDelay, def.AutoAdvanceDelay)
	v.SetDefault(KeyCatalogFile, def.CatalogFile)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyMetricsAddr, def.MetricsAddr)
	v.SetDefault(KeyScoreCacheSize, def.ScoreCacheSize)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(def.DataDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: reading default file: %w", err)
			}
		}
	}

	cfg := Config{
		DataDir:          expandHome(v.GetString(KeyDataDir)),
		AutoAdvanceDelay: v.GetDuration(KeyAutoAdvanceDelay),
		CatalogFile:      expandHome(v.GetString(KeyCatalogFile)),
		LogLevel:         strings.ToLower(v.GetString(KeyLogLevel)),
		MetricsAddr:      v.GetString(KeyMetricsAddr),
		ScoreCacheSize:   v.GetInt(KeyScoreCacheSize),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("config: data_dir must not be empty")
	}
	if c.AutoAdvanceDelay <= 0 {
		return fmt.Errorf("config: auto_advance_delay must be positive, got %s", c.AutoAdvanceDelay)
	}
	if c.ScoreCacheSize <= 0 {
		return fmt.Errorf("config: score_cache_size must be positive, got %d", c.ScoreCacheSize)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
