// Package config loads pipeloop settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/pipeloop/config.toml (falling back to
// ~/.config/pipeloop/config.toml). A missing file yields the defaults; any
// field left out of the file keeps its default value.
//
//	[log]
//	level = "debug"
//
//	[cache]
//	backend = "redis"      # "file", "redis" or "none"
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	store = "mongo"        # "memory" or "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "pipeloop"
//
// PIPELOOP_REDIS_ADDR and PIPELOOP_MONGO_URI override the file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pipeloop/pkg/errors"
)

const appName = "pipeloop"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Run stores.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Default values for Config.
const (
	DefaultLogLevel      = "info"
	DefaultCacheTTL      = 7 * 24 * time.Hour
	DefaultRedisAddr     = "localhost:6379"
	DefaultServerAddr    = ":8080"
	DefaultMongoURI      = "mongodb://localhost:27017"
	DefaultMongoDatabase = "pipeloop"
)

// Config is the root of config.toml.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"` // empty means the XDG cache dir
	TTL       time.Duration `toml:"ttl"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	Prefix    string        `toml:"prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	Store         string `toml:"store"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns a Config with every field set to its default.
func Default() Config {
	return Config{
		Log: LogConfig{Level: DefaultLogLevel},
		Cache: CacheConfig{
			Backend:   CacheFile,
			TTL:       DefaultCacheTTL,
			RedisAddr: DefaultRedisAddr,
		},
		Server: ServerConfig{
			Addr:          DefaultServerAddr,
			Store:         StoreMemory,
			MongoURI:      DefaultMongoURI,
			MongoDatabase: DefaultMongoDatabase,
		},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Code reports errors.ErrCodeInvalidConfig.
func (e ValidationError) Code() errors.Code { return errors.ErrCodeInvalidConfig }

// Load reads the config file at path. An empty path means DefaultPath.
// A missing file is not an error and yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			cfg := Default()
			applyEnv(&cfg)
			return &cfg, nil
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to read config file")
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config file %s", path)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that all config values are usable.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return ValidationError{Field: "log.level", Message: "must be debug, info, warn or error"}
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return ValidationError{Field: "cache.redis_addr", Message: "required when backend is redis"}
		}
	default:
		return ValidationError{Field: "cache.backend", Message: "must be file, redis or none"}
	}
	if c.Cache.TTL < 0 {
		return ValidationError{Field: "cache.ttl", Message: "must not be negative"}
	}

	if c.Server.Addr == "" {
		return ValidationError{Field: "server.addr", Message: "required field is empty"}
	}
	switch c.Server.Store {
	case StoreMemory:
	case StoreMongo:
		if c.Server.MongoURI == "" {
			return ValidationError{Field: "server.mongo_uri", Message: "required when store is mongo"}
		}
		if c.Server.MongoDatabase == "" {
			return ValidationError{Field: "server.mongo_database", Message: "required when store is mongo"}
		}
	default:
		return ValidationError{Field: "server.store", Message: "must be memory or mongo"}
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultPath returns the config file location following the XDG standard.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the file cache directory: the configured one, or
// $XDG_CACHE_HOME/pipeloop (~/.cache/pipeloop).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("PIPELOOP_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("PIPELOOP_MONGO_URI"); v != "" {
		c.Server.MongoURI = v
	}
}
