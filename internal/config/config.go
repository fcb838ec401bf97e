package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	StorageSiYuan   = "siyuan"
	StorageMarkdown = "markdown"
	StorageSQLite   = "sqlite"
)

// SiYuanConfig holds the kernel connection settings.
type SiYuanConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Validate validates the kernel connection settings.
func (c *SiYuanConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// popoverDefaultMargin matches popover.DefaultMargin.
const popoverDefaultMargin = 8

// PopoverConfig holds date picker placement settings.
type PopoverConfig struct {
	Margin int `mapstructure:"margin"`
}

// ThemeConfig holds TUI color settings.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Validate validates the logging settings.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "warning", "error")),
	)
}

// APIConfig holds the HTTP API settings used by serve.
type APIConfig struct {
	Addr string `mapstructure:"addr"`
}

// Validate validates the HTTP API settings.
func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
	)
}

// Config holds the application configuration.
type Config struct {
	Storage string        `mapstructure:"storage"`
	DataDir string        `mapstructure:"data_dir"`
	Lang    string        `mapstructure:"lang"`
	SiYuan  SiYuanConfig  `mapstructure:"siyuan"`
	Popover PopoverConfig `mapstructure:"popover"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Log     LogConfig     `mapstructure:"log"`
	API     APIConfig     `mapstructure:"api"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Storage, validation.Required, validation.In(StorageSiYuan, StorageMarkdown, StorageSQLite)),
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.Lang, validation.In("en", "zh_CN", "zh-CN")),
	); err != nil {
		return err
	}
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if c.Popover.Margin < 0 {
		return fmt.Errorf("popover: margin must not be negative, got %d", c.Popover.Margin)
	}
	if c.Storage == StorageSiYuan {
		if err := c.SiYuan.Validate(); err != nil {
			return fmt.Errorf("siyuan: %w", err)
		}
	}
	return c.Log.Validate()
}

// DefaultDataDir returns the default data directory (~/.dailylink/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".dailylink")
	}
	return filepath.Join(home, ".dailylink")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", StorageSiYuan)
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("lang", "en")
	v.SetDefault("siyuan.url", "http://127.0.0.1:6806")
	v.SetDefault("siyuan.token", "")
	v.SetDefault("siyuan.timeout", "10s")
	v.SetDefault("popover.margin", popoverDefaultMargin)
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.primary", "")
	v.SetDefault("theme.secondary", "")
	v.SetDefault("theme.accent", "")
	v.SetDefault("theme.muted", "")
	v.SetDefault("theme.danger", "")
	v.SetDefault("theme.background", "")
	v.SetDefault("theme.markdown_style", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("api.addr", "127.0.0.1:6807")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "dailylink"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: DAILYLINK_STORAGE, DAILYLINK_SIYUAN_TOKEN, etc.
	v.SetEnvPrefix("DAILYLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
