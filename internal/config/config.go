package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverBolt     = "bolt"
)

// Config is the configuration of the procgraph server.
type Config struct {
	Listen string      `yaml:"listen"`
	Log    LogConfig   `yaml:"log"`
	Store  StoreConfig `yaml:"store"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreConfig selects a store driver; only the matching section is read.
type StoreConfig struct {
	Driver   string         `yaml:"driver"`
	File     FileConfig     `yaml:"file"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Bolt     BoltConfig     `yaml:"bolt"`
}

// FileConfig configures the XML file store.
type FileConfig struct {
	Dir string `yaml:"dir"`
}

// PostgresConfig configures the PostgreSQL store.
type PostgresConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig configures the Redis store. An empty Prefix keeps the store default.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// BoltConfig configures the embedded bbolt store.
type BoltConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given: a file store
// in ./documents, listening on :3000.
func Default() Config {
	return Config{
		Listen: ":3000",
		Log:    LogConfig{Level: "info", Format: "json"},
		Store: StoreConfig{
			Driver: DriverFile,
			File:   FileConfig{Dir: "documents"},
			Redis:  RedisConfig{Addr: "localhost:6379"},
			Bolt:   BoltConfig{Path: "procgraph.db"},
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields the
// defaults. DATABASE_URL, when set, overrides store.postgres.url.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Store.Postgres.URL = url
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected store driver is configured.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile:
		if c.Store.File.Dir == "" {
			return errors.New("config: store.file.dir is required")
		}
	case DriverPostgres:
		if c.Store.Postgres.URL == "" {
			return errors.New("config: store.postgres.url or DATABASE_URL is required")
		}
	case DriverRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("config: store.redis.addr is required")
		}
	case DriverBolt:
		if c.Store.Bolt.Path == "" {
			return errors.New("config: store.bolt.path is required")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	return nil
}
