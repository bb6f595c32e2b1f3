// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. EVENSPLIT_PORT.
const EnvPrefix = "EVENSPLIT"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Port        string        `envconfig:"EVENSPLIT_PORT" default:"8080"`
	LogLevel    string        `envconfig:"EVENSPLIT_LOG_LEVEL" default:"info"`
	SaveTimeout time.Duration `envconfig:"EVENSPLIT_SAVE_TIMEOUT" default:"2s"`

	Store StoreConfig
	Redis RedisConfig
}

// StoreConfig selects and configures the snapshot store.
type StoreConfig struct {
	Driver string `envconfig:"EVENSPLIT_STORE_DRIVER" default:"sqlite"`
	DBPath string `envconfig:"EVENSPLIT_DB_PATH" default:"./data/evensplit.db"`
}

// RedisConfig configures the redis snapshot store.
type RedisConfig struct {
	URL          string        `envconfig:"EVENSPLIT_REDIS_URL"`
	Address      string        `envconfig:"EVENSPLIT_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"EVENSPLIT_REDIS_PASSWORD"`
	DB           int           `envconfig:"EVENSPLIT_REDIS_DB" default:"0"`
	KeyPrefix    string        `envconfig:"EVENSPLIT_REDIS_KEY_PREFIX" default:"evensplit"`
	PoolSize     int           `envconfig:"EVENSPLIT_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"EVENSPLIT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EVENSPLIT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"EVENSPLIT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Load reads configuration from EVENSPLIT_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Store.Driver = strings.ToLower(c.Store.Driver)
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Driver == DriverRedis && c.Redis.URL == "" && c.Redis.Address == "" {
		return fmt.Errorf("redis url or address is required")
	}
	return nil
}
