package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvProduction is the env value that hides error detail and switches logs to JSON.
const EnvProduction = "production"

type Config struct {
	HTTP struct {
		Addr            string
		ShutdownTimeout time.Duration
		AllowedOrigins  []string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Log struct {
		Level  string
		Pretty bool
	}
	Redis struct {
		Addr           string
		Password       string
		DB             int
		ConnectTimeout time.Duration
	}
	Env      string
	APIToken string
	CacheTTL time.Duration
}

// Production reports whether the service runs with env=production.
func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads config from environment (BOOKMARKS_ prefix) and optional bookmarks.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookmarks")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("shutdown.timeout", "10s")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "file:bookmarks.db")
	v.SetDefault("env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("redis.connect_timeout", "30s")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.AllowedOrigins = v.GetStringSlice("http.cors_origins")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Env = v.GetString("env")
	cfg.APIToken = v.GetString("api_token")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")

	// Pretty console logs unless running in production or told otherwise.
	v.SetDefault("log.pretty", cfg.Env != EnvProduction)
	cfg.Log.Pretty = v.GetBool("log.pretty")

	shutdown, err := time.ParseDuration(v.GetString("shutdown.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKS_SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.HTTP.ShutdownTimeout = shutdown

	ttl, err := time.ParseDuration(v.GetString("cache.ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKS_CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	connect, err := time.ParseDuration(v.GetString("redis.connect_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKS_REDIS_CONNECT_TIMEOUT: %w", err)
	}
	cfg.Redis.ConnectTimeout = connect

	switch cfg.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("BOOKMARKS_DB_DRIVER must be one of sqlite3, mysql, postgres (got %q)", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BOOKMARKS_DB_DSN is required")
	}

	return cfg, nil
}
