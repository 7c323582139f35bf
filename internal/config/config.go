package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerURL      string `mapstructure:"server_url"`
	APIVersion     string `mapstructure:"api_version"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	DataDir        string `mapstructure:"data_dir"`
}

func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	defaultDataDir := filepath.Join(homeDir, ".scout")

	viper.SetDefault("server_url", "http://localhost:8000")
	viper.SetDefault("api_version", "v1")
	viper.SetDefault("timeout_seconds", 60)
	viper.SetDefault("data_dir", defaultDataDir)

	// Environment variable overrides
	viper.SetEnvPrefix("SCOUT")
	viper.AutomaticEnv()
	viper.BindEnv("server_url", "SCOUT_SERVER_URL")
	viper.BindEnv("api_version", "SCOUT_API_VERSION")
	viper.BindEnv("data_dir", "SCOUT_DATA_DIR")

	// Config file
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultDataDir)

	// Read config file if exists (ignore error if not found)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "scout.db")
}
