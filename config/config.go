package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Poller   PollerConfig   `mapstructure:"poller"`
	Guard    GuardConfig    `mapstructure:"guard"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Balance  BalanceConfig  `mapstructure:"balance"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// DatabaseConfig configures the settlement journal. The journal is skipped
// entirely when Enabled is false.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	PoolSize    int           `mapstructure:"pool_size"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LedgerConfig controls where pending settlements live and how long they stay valid.
type LedgerConfig struct {
	Backend       string        `mapstructure:"backend"` // redis, memory
	StorageKey    string        `mapstructure:"storage_key"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type PollerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// GuardConfig configures outbound calls to the wallet backend.
type GuardConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ProbeAddr    string        `mapstructure:"probe_addr"` // host:port dialled to decide reachability; empty = unknown
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	Breaker      BreakerConfig `mapstructure:"breaker"`
}

type BreakerConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures"`
	OpenTimeout         time.Duration `mapstructure:"open_timeout"`
}

type NotifyConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"` // empty = log-only notifications
	Secret     string        `mapstructure:"secret"`
	DedupTTL   time.Duration `mapstructure:"dedup_ttl"`
}

type BalanceConfig struct {
	Strategy string `mapstructure:"strategy"` // actual_only, optimistic
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: STL_.
// Nested keys use underscore: STL_REDIS_HOST, STL_POLLER_INTERVAL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "settlements")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("ledger.backend", "redis")
	v.SetDefault("ledger.storage_key", "pending_settlements")
	v.SetDefault("ledger.ttl", "30m")
	v.SetDefault("ledger.sweep_interval", "1m")
	v.SetDefault("poller.enabled", true)
	v.SetDefault("poller.interval", "5s")
	v.SetDefault("guard.base_url", "http://localhost:9000")
	v.SetDefault("guard.timeout", "15s")
	v.SetDefault("guard.probe_addr", "")
	v.SetDefault("guard.probe_timeout", "2s")
	v.SetDefault("guard.max_retries", 0)
	v.SetDefault("guard.breaker.enabled", true)
	v.SetDefault("guard.breaker.consecutive_failures", 5)
	v.SetDefault("guard.breaker.open_timeout", "30s")
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.secret", "")
	v.SetDefault("notify.dedup_ttl", "1h")
	v.SetDefault("balance.strategy", "actual_only")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: STL_POLLER_INTERVAL -> poller.interval
	v.SetEnvPrefix("STL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required; env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Ledger.Backend {
	case "redis", "memory":
	default:
		return fmt.Errorf("ledger.backend must be redis or memory, got %q", c.Ledger.Backend)
	}
	switch c.Balance.Strategy {
	case "actual_only", "optimistic":
	default:
		return fmt.Errorf("balance.strategy must be actual_only or optimistic, got %q", c.Balance.Strategy)
	}
	if c.Poller.Interval <= 0 {
		return fmt.Errorf("poller.interval must be positive")
	}
	if c.Ledger.TTL <= 0 {
		return fmt.Errorf("ledger.ttl must be positive")
	}
	return nil
}
