// Package config loads structviz settings from a TOML file.
//
// Every setting has a default, so a missing file is not an error. The file
// lives at $XDG_CONFIG_HOME/structviz/config.toml (or
// ~/.config/structviz/config.toml) unless a path is given explicitly.
//
// # Example
//
//	[backend]
//	load_delay = "250ms"
//
//	[backend.ready]
//	attempts = 50
//	interval = "100ms"
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//	prefix = "structviz"
//
//	[server]
//	addr = ":8080"
//
//	[theme]
//	primary = "#2e8b57"
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/cache"
	"github.com/matzehuels/structviz/pkg/canvas"
	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/session"
)

// AppName names the config and cache directories.
const AppName = "structviz"

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

var cacheBackends = []string{CacheNone, CacheFile, CacheRedis}

// Duration is a time.Duration written as a string such as "100ms" in TOML.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats d as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds every setting.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Session SessionConfig `toml:"session"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	Theme   canvas.Theme  `toml:"theme"`
}

// BackendConfig configures the structure backend and the readiness wait.
type BackendConfig struct {
	// LoadDelay simulates a backend that takes time to load.
	LoadDelay Duration    `toml:"load_delay"`
	Ready     ReadyConfig `toml:"ready"`
}

// ReadyConfig bounds the readiness polling loop.
type ReadyConfig struct {
	Attempts int      `toml:"attempts"`
	Interval Duration `toml:"interval"`
}

// SessionConfig configures sessions.
type SessionConfig struct {
	MessageLimit int `toml:"message_limit"`
	// IdleTTL expires unused sessions on the HTTP server.
	IdleTTL Duration `toml:"idle_ttl"`
}

// CacheConfig selects and configures the frame cache.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"` // file backend; empty uses the XDG cache dir
	TTL     Duration    `toml:"ttl"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			Ready: ReadyConfig{
				Attempts: backend.DefaultPolicy.Attempts,
				Interval: Duration(backend.DefaultPolicy.Interval),
			},
		},
		Session: SessionConfig{
			MessageLimit: session.DefaultMessageLimit,
			IdleTTL:      Duration(session.DefaultIdleTTL),
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration(cache.TTLFrame),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: AppName,
			},
		},
		Server: ServerConfig{Addr: ":8080"},
		Theme:  canvas.DefaultTheme(),
	}
}

// DefaultPath returns the config file location following the XDG
// convention.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads path on top of the defaults. An empty path uses DefaultPath,
// and a missing default file yields the defaults. Unknown keys are
// rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text on top of the defaults.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	cfg.Theme = cfg.Theme.Merge(canvas.DefaultTheme())
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Backend.Ready.Attempts < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "backend.ready.attempts must be at least 1")
	}
	if c.Backend.Ready.Interval <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "backend.ready.interval must be positive")
	}
	if c.Backend.LoadDelay < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "backend.load_delay cannot be negative")
	}
	if !slices.Contains(cacheBackends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q must be one of %s", c.Cache.Backend, strings.Join(cacheBackends, ", "))
	}
	return nil
}

// Policy returns the readiness policy.
func (c Config) Policy() backend.Policy {
	return backend.Policy{
		Attempts: c.Backend.Ready.Attempts,
		Interval: time.Duration(c.Backend.Ready.Interval),
	}
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// CacheDir returns the file cache directory: the configured one, or
// $XDG_CACHE_HOME/structviz (~/.cache/structviz).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// OpenCache creates the configured frame cache. A file cache whose
// directory cannot be determined falls back to no caching.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
			Prefix:   c.Cache.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case CacheFile:
		dir, err := c.CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
	return cache.NewNullCache(), nil
}
