package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"legislativo/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. LEGISLATIVO_SOURCE_KIND
const EnvPrefix = "LEGISLATIVO"

// Config holds all configuration settings for the application
type Config struct {
	Source      models.DataSource `mapstructure:"source"`
	OutputDir   string            `mapstructure:"output_dir"`
	DataDir     string            `mapstructure:"data_dir"`
	Locale      string            `mapstructure:"locale"`
	Timezone    string            `mapstructure:"timezone"`
	LoadTimeout time.Duration     `mapstructure:"load_timeout"`
	Dashboard   DashboardConfig   `mapstructure:"dashboard"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Log         LogConfig         `mapstructure:"log"`
}

// DashboardConfig tunes what the dashboard shows
type DashboardConfig struct {
	TableLimit           int `mapstructure:"table_limit"`
	TruncateLength       int `mapstructure:"truncate_length"`
	ActivityWindowMonths int `mapstructure:"activity_window_months"`
	TopTypes             int `mapstructure:"top_types"`
	ChartWidth           int `mapstructure:"chart_width"`
	ChartHeight          int `mapstructure:"chart_height"`
}

// HTTPConfig holds the server settings
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
	Debug      bool   `mapstructure:"debug"`
}

// Load reads the optional configuration file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.kind", string(models.SourceKindFile))
	v.SetDefault("source.location", "docs/data")
	v.SetDefault("output_dir", "pb_public")
	v.SetDefault("data_dir", "pb_data")
	v.SetDefault("locale", "es-CL")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("load_timeout", "60s")

	v.SetDefault("dashboard.table_limit", 50)
	v.SetDefault("dashboard.truncate_length", 60)
	v.SetDefault("dashboard.activity_window_months", 0)
	v.SetDefault("dashboard.top_types", 5)
	v.SetDefault("dashboard.chart_width", 800)
	v.SetDefault("dashboard.chart_height", 400)

	v.SetDefault("http.addr", "127.0.0.1:8090")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.debug", false)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source config: %w", err)
	}
	if c.OutputDir == "" {
		return errors.New("output_dir cannot be empty")
	}
	if c.DataDir == "" {
		return errors.New("data_dir cannot be empty")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.LoadTimeout <= 0 {
		return errors.New("load_timeout must be positive")
	}
	if err := c.validateDashboard(); err != nil {
		return fmt.Errorf("dashboard config: %w", err)
	}
	if c.HTTP.Addr == "" {
		return errors.New("http addr cannot be empty")
	}
	return nil
}

func (c *Config) validateDashboard() error {
	d := c.Dashboard
	if d.TableLimit <= 0 {
		return errors.New("table_limit must be positive")
	}
	if d.TruncateLength <= 0 {
		return errors.New("truncate_length must be positive")
	}
	if d.ActivityWindowMonths < 0 {
		return errors.New("activity_window_months cannot be negative")
	}
	if d.TopTypes <= 0 {
		return errors.New("top_types must be positive")
	}
	if d.ChartWidth <= 0 || d.ChartHeight <= 0 {
		return fmt.Errorf("invalid chart size: %dx%d", d.ChartWidth, d.ChartHeight)
	}
	return nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
