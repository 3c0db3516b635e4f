package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/grunfink/snac-core/pkg/logger"
)

// Config holds the core server's configuration, read from config.toml
// with spf13/viper (spec.md §4.7 step 1 and §8 "address"/"port"/
// "prefix"/"host"/"num_threads").
type Config struct {
	Address              string `mapstructure:"address"`
	Port                 int    `mapstructure:"port"`
	Host                 string `mapstructure:"host"`
	Prefix               string `mapstructure:"prefix"`
	NumThreads           int    `mapstructure:"num_threads"`
	ShowInstanceTimeline bool   `mapstructure:"show_instance_timeline"`
	AdminEmail           string `mapstructure:"admin_email"`
	GreetingTemplate     string `mapstructure:"greeting_template"`

	EnableOAuth        bool `mapstructure:"enable_oauth"`
	EnableMastodonAPI  bool `mapstructure:"enable_mastodon_api"`

	// AdminListen is the ops sidecar's bind address (ADDED, spec.md has
	// no equivalent key: the sidecar itself is an ambient addition).
	AdminListen string `mapstructure:"admin_listen"`

	DebugLevel int `mapstructure:"debug_level"`
}

// BaseURL returns the externally visible origin used to build absolute
// links (webfinger hrefs, nodeinfo discovery, actor URLs).
func (c *Config) BaseURL() string {
	return "https://" + c.Host
}

// Load reads config.toml from the working directory or ./config,
// applies defaults, and validates required fields, mirroring the
// teacher's config.Load().
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("address", "0.0.0.0")
	viper.SetDefault("port", 8001)
	viper.SetDefault("prefix", "")
	viper.SetDefault("num_threads", 0)
	viper.SetDefault("show_instance_timeline", false)
	viper.SetDefault("admin_email", "")
	viper.SetDefault("greeting_template", "<h1>%host%</h1>\n<p>A snac instance, run by %admin_email%.</p>\n")
	viper.SetDefault("enable_oauth", true)
	viper.SetDefault("enable_mastodon_api", true)
	viper.SetDefault("admin_listen", "127.0.0.1:9090")
	viper.SetDefault("debug_level", 0)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required in config file")
	}

	logger.Info("configuration loaded from %s", viper.ConfigFileUsed())
	logger.Info("  address: %s", cfg.Address)
	logger.Info("  port: %d", cfg.Port)
	logger.Info("  host: %s", cfg.Host)
	logger.Info("  prefix: %q", cfg.Prefix)
	logger.Info("  num_threads: %d (0 = auto-detect)", cfg.NumThreads)
	logger.Info("  show_instance_timeline: %v", cfg.ShowInstanceTimeline)
	logger.Info("  enable_oauth: %v", cfg.EnableOAuth)
	logger.Info("  enable_mastodon_api: %v", cfg.EnableMastodonAPI)
	logger.Info("  admin_listen: %s", cfg.AdminListen)

	return &cfg, nil
}
