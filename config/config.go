package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the divequest server.
type Config struct {
	// Listen is the address the divequest server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// DataDir is the directory holding the user and team quest store files.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
	// QuestCatalog is the path to the solo quest template catalog.
	QuestCatalog string `yaml:"quest_catalog" mapstructure:"quest_catalog"`
	// TeamQuestCatalog is the path to the team quest template catalog.
	TeamQuestCatalog string `yaml:"team_quest_catalog" mapstructure:"team_quest_catalog"`
	// Relay holds the chat platform relay configuration for direct messages.
	Relay *RelayConfig `yaml:"relay" mapstructure:"relay"`
	// Digest holds the leaderboard digest job configuration.
	Digest *DigestConfig `yaml:"digest" mapstructure:"digest"`
}

// RelayConfig holds the webhook relay used to deliver direct messages and
// channel posts through the chat platform.
type RelayConfig struct {
	// Enabled indicates whether the relay is configured.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// URL is the relay endpoint.
	URL string `yaml:"url" mapstructure:"url"`
	// Token is the bearer token sent to the relay.
	Token string `yaml:"token" mapstructure:"token"`
}

// DigestConfig holds the periodic leaderboard digest configuration.
type DigestConfig struct {
	// Enabled indicates whether the digest job runs.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// IntervalHours is the interval between digest posts.
	IntervalHours int `yaml:"interval_hours" mapstructure:"interval_hours"`
	// Channel is the chat channel the digest is posted to.
	Channel string `yaml:"channel" mapstructure:"channel"`
}

// UserFile returns the path of the user store file.
func (c *Config) UserFile() string {
	return filepath.Join(c.DataDir, "users.json")
}

// TeamQuestFile returns the path of the active team quest store file.
func (c *Config) TeamQuestFile() string {
	return filepath.Join(c.DataDir, "active_team_quests.json")
}

// Load reads the configuration from the specified path and returns a Config
// struct. If path is empty, it searches the default locations. A missing
// config file is fine, the defaults cover a local setup.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("DIVEQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.divequest")
		v.AddConfigPath("/etc/divequest")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3010")
	v.SetDefault("log_level", "info")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("quest_catalog", "./catalogs/quest_list.json")
	v.SetDefault("team_quest_catalog", "./catalogs/team_quest_list.json")

	v.SetDefault("relay.enabled", false)
	v.SetDefault("relay.url", "")
	v.SetDefault("relay.token", "")

	v.SetDefault("digest.enabled", false)
	v.SetDefault("digest.interval_hours", 24)
	v.SetDefault("digest.channel", "")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.QuestCatalog == "" {
		return fmt.Errorf("quest_catalog is required")
	}
	if c.TeamQuestCatalog == "" {
		return fmt.Errorf("team_quest_catalog is required")
	}

	if c.Relay != nil && c.Relay.Enabled && c.Relay.URL == "" {
		return fmt.Errorf("relay URL is required when the relay is enabled")
	}

	if c.Digest != nil && c.Digest.Enabled {
		if c.Relay == nil || !c.Relay.Enabled {
			return fmt.Errorf("digest requires the relay to be enabled")
		}
		if c.Digest.Channel == "" {
			return fmt.Errorf("digest channel is required when the digest is enabled")
		}
		if c.Digest.IntervalHours <= 0 {
			return fmt.Errorf("digest interval must be positive")
		}
	}

	if c.Relay == nil || !c.Relay.Enabled {
		log.Warn("No relay configured, direct messages and digests are disabled")
	}

	return nil
}
