package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Loader    LoaderConfig    `mapstructure:"loader"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Uploads   UploadsConfig   `mapstructure:"uploads"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// LoaderConfig tunes the aggregation pipeline.
type LoaderConfig struct {
	StaticDataPath string `mapstructure:"static_data_path"`
	ServiceKey     string `mapstructure:"service_key"` // data.go.kr API key
	CacheTTLHours  int    `mapstructure:"cache_ttl_hours"`
	CacheMaxSpots  int    `mapstructure:"cache_max_spots"`
	ReplaceAlways  bool   `mapstructure:"replace_always"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

// UploadsConfig configures presigned photo uploads.
type UploadsConfig struct {
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	Prefix        string `mapstructure:"prefix"`
	ExpirySeconds int    `mapstructure:"expiry_seconds"`
}

// NotifyConfig configures the operations webhook the notifier worker posts to.
type NotifyConfig struct {
	WebhookURL     string `mapstructure:"webhook_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("loader.static_data_path", "data/spots.json")
	v.SetDefault("loader.service_key", "")
	v.SetDefault("loader.cache_ttl_hours", 24)
	v.SetDefault("loader.cache_max_spots", 10000)
	v.SetDefault("loader.replace_always", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "smokemap")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "smokemap")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("uploads.bucket", "")
	v.SetDefault("uploads.region", "ap-northeast-2")
	v.SetDefault("uploads.prefix", "photos/")
	v.SetDefault("uploads.expiry_seconds", 900)
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.timeout_seconds", 10)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", true)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: SMOKEMAP_DATABASE_HOST → database.host
	v.SetEnvPrefix("SMOKEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Loader.StaticDataPath == "" {
		errs = append(errs, "loader.static_data_path is required")
	}
	if c.Loader.CacheTTLHours <= 0 {
		errs = append(errs, "loader.cache_ttl_hours must be positive")
	}
	if c.Loader.CacheMaxSpots <= 0 {
		errs = append(errs, "loader.cache_max_spots must be positive")
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	if c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}
	if c.Uploads.ExpirySeconds <= 0 {
		errs = append(errs, "uploads.expiry_seconds must be positive")
	}
	if c.Notify.TimeoutSeconds <= 0 {
		errs = append(errs, "notify.timeout_seconds must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
