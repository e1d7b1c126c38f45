package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Events  EventsConfig  `mapstructure:"events"`
	Uploads UploadsConfig `mapstructure:"uploads"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type EventsConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	URL               string `mapstructure:"url"`
	Exchange          string `mapstructure:"exchange"`
	StockAlertQueue   string `mapstructure:"stock_alert_queue"`
	LowStockThreshold int    `mapstructure:"low_stock_threshold"`
}

type UploadsConfig struct {
	Dir        string `mapstructure:"dir"`
	MaxSizeMB  int64  `mapstructure:"max_size_mb"`
	PublicPath string `mapstructure:"public_path"`
}

// LoadConfig loads configuration from config.yaml and environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.sweetdelights/")
	v.AddConfigPath("/etc/sweetdelights/")

	// Enable environment variable override with SWEETS_ prefix
	v.SetEnvPrefix("SWEETS")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("db.maxOpenConns", 10)
	v.SetDefault("auth.token_ttl", 7*24*time.Hour)
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.exchange", "sweets.events")
	v.SetDefault("events.stock_alert_queue", "sweets.stock_alerts")
	v.SetDefault("events.low_stock_threshold", 10)
	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("uploads.max_size_mb", 5)
	v.SetDefault("uploads.public_path", "/uploads")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}

	return &config, nil
}
