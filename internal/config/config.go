package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Redis    *RedisConfig    `mapstructure:"redis"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	SessionTTL         time.Duration `mapstructure:"session_ttl"`
	CookieSecure       bool          `mapstructure:"cookie_secure"`
	LoginRate          string        `mapstructure:"login_rate"`
	Timezone           string        `mapstructure:"timezone"`
	LogLevel           string        `mapstructure:"log_level"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.session_ttl", 24*time.Hour)
	v.SetDefault("api.login_rate", "10-M")
	v.SetDefault("api.timezone", "Asia/Jakarta")
	v.SetDefault("api.log_level", "info")
	v.SetDefault("gin.mode", "debug")

	// libpq-style variables are what existing deployments already export.
	v.SetDefault("postgres.host", envOr("PGHOST", "localhost"))
	v.SetDefault("postgres.port", envOr("PGPORT", "5432"))
	v.SetDefault("postgres.user", envOr("PGUSER", "postgres"))
	v.SetDefault("postgres.password", os.Getenv("PGPASSWORD"))
	v.SetDefault("postgres.db", envOr("PGDATABASE", "simple_pos"))
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
}

// Load reads the YAML file at path, overlays environment variables
// (api.jwt_signing_key -> API_JWT_SIGNING_KEY) and validates the result.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	conf.watch(v)

	return conf, nil
}

func (c *AppConfig) validate() error {
	if c.API == nil || c.API.JWTSigningKey == "" {
		return fmt.Errorf("api.jwt_signing_key is required")
	}
	if len(c.API.JWTSigningKey) < 32 {
		return fmt.Errorf("api.jwt_signing_key must be at least 32 characters")
	}
	if c.API.SessionTTL <= 0 {
		return fmt.Errorf("api.session_ttl must be positive")
	}

	return nil
}

var onLogLevelChange func(level string)

// OnLogLevelChange registers fn to be called when api.log_level changes in
// the watched config file.
func OnLogLevelChange(fn func(level string)) {
	onLogLevelChange = fn
}

func (c *AppConfig) watch(v *viper.Viper) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) {
			return
		}

		level := v.GetString("api.log_level")
		if level == c.API.LogLevel {
			return
		}
		c.API.LogLevel = level

		if onLogLevelChange != nil {
			onLogLevelChange(level)
		}
	})
	v.WatchConfig()
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
