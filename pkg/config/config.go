// Package config loads hintlayout's TOML configuration.
//
// A config file may set any subset of keys; everything else keeps the value
// from [Default]. Unknown keys are rejected so typos do not silently fall
// back to defaults.
//
//	[planner]
//	reveal_ratio = 0.75
//	min_widget_width = 180
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "12h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hintlayout/pkg/cache"
	"github.com/matzehuels/hintlayout/pkg/errors"
	"github.com/matzehuels/hintlayout/pkg/placement"
)

// Config is the complete application configuration.
type Config struct {
	Planner placement.Options `toml:"planner"`
	Cache   CacheConfig       `toml:"cache"`
	Server  ServerConfig      `toml:"server"`
}

// CacheConfig selects the placement cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration is a time.Duration written as a Go duration string ("90s", "12h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Planner: placement.DefaultOptions(),
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     Duration{cache.TTLPlacement},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration{10 * time.Second},
		},
	}
}

// Load reads the TOML file at path on top of Default. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var backends = []string{cache.BackendNone, cache.BackendFile, cache.BackendRedis}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if err := c.Planner.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid [planner] section")
	}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q must be one of %s", c.Cache.Backend, strings.Join(backends, ", "))
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_addr")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Server.ShutdownTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server shutdown_timeout must not be negative")
	}
	return nil
}

// CacheOptions converts the cache section for cache.Open. dir is used when
// the config leaves the directory empty.
func (c CacheConfig) CacheOptions(dir string) cache.Options {
	if c.Dir != "" {
		dir = c.Dir
	}
	return cache.Options{Backend: c.Backend, Dir: dir, RedisAddr: c.RedisAddr}
}

// Encode writes cfg as TOML.
func Encode(cfg Config) (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}
