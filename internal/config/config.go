package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/clinicore/admin-api/internal/email"
	"github.com/clinicore/admin-api/internal/identity"
	"github.com/clinicore/admin-api/pkg/messaging/redis"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Identity  identity.Config `mapstructure:"identity"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	SMTP      email.Config    `mapstructure:"smtp"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig controls the admin session scheme. The session cookie carries
// a fixed sentinel value rather than a signed token; login checks the
// password against a bcrypt hash of the shared admin password.
type AuthConfig struct {
	SessionCookie     string `mapstructure:"session_cookie"`
	SessionSentinel   string `mapstructure:"session_sentinel"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type StorageConfig struct {
	Bucket  string `mapstructure:"bucket"`
	Region  string `mapstructure:"region"`
	BaseURL string `mapstructure:"base_url"`
}

type WorkerConfig struct {
	RepairInterval time.Duration `mapstructure:"repair_interval"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// envOverrides carries the settings that deployments inject through the
// environment rather than the config file, secrets mostly.
type envOverrides struct {
	DBHost             string `envconfig:"DB_HOST"`
	DBPort             int    `envconfig:"DB_PORT"`
	DBUser             string `envconfig:"DB_USER"`
	DBPassword         string `envconfig:"DB_PASSWORD"`
	DBName             string `envconfig:"DB_NAME"`
	IdentityURL        string `envconfig:"IDENTITY_URL"`
	IdentityServiceKey string `envconfig:"IDENTITY_SERVICE_KEY"`
	AdminPasswordHash  string `envconfig:"ADMIN_PASSWORD_HASH"`
	RedisURL           string `envconfig:"REDIS_URL"`
	SMTPPassword       string `envconfig:"SMTP_PASSWORD"`
	StorageBucket      string `envconfig:"STORAGE_BUCKET"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	applyOverrides(&config, &env)

	if config.Auth.SessionCookie == "" {
		config.Auth.SessionCookie = "admin_session"
	}
	if config.Auth.SessionSentinel == "" {
		config.Auth.SessionSentinel = "true"
	}

	return &config, nil
}

func applyOverrides(config *Config, env *envOverrides) {
	if env.DBHost != "" {
		config.Database.Host = env.DBHost
	}
	if env.DBPort != 0 {
		config.Database.Port = env.DBPort
	}
	if env.DBUser != "" {
		config.Database.User = env.DBUser
	}
	if env.DBPassword != "" {
		config.Database.Password = env.DBPassword
	}
	if env.DBName != "" {
		config.Database.Name = env.DBName
	}
	if env.IdentityURL != "" {
		config.Identity.URL = env.IdentityURL
	}
	if env.IdentityServiceKey != "" {
		config.Identity.ServiceKey = env.IdentityServiceKey
	}
	if env.AdminPasswordHash != "" {
		config.Auth.AdminPasswordHash = env.AdminPasswordHash
	}
	if env.RedisURL != "" {
		config.Redis.URL = env.RedisURL
	}
	if env.SMTPPassword != "" {
		config.SMTP.Password = env.SMTPPassword
	}
	if env.StorageBucket != "" {
		config.Storage.Bucket = env.StorageBucket
	}
}

// ToBrokerConfig converts Redis config to the broker package's shape.
func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}
