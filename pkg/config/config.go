// Package config loads padviz configuration from a TOML file.
//
// Configuration is layered: built-in defaults, then the config file,
// then CLI flags (applied by the caller). The default file location is
// config.toml under the user config directory:
//
//	[render]
//	style = "sketch"
//	formats = ["svg", "png"]
//
//	[cache]
//	backend = "file"        # file, redis, none
//	dir = ""                # empty means the default cache dir
//
//	[redis]
//	addr = "localhost:6379"
//
//	[view]
//	state_path = ""         # empty means the default view state file
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full padviz configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	View   ViewConfig   `toml:"view"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds default rendering options.
type RenderConfig struct {
	Style   string   `toml:"style"`
	Formats []string `toml:"formats"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of file, redis, none.
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty means the default cache
	// directory.
	Dir string `toml:"dir"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ViewConfig configures the terminal viewer.
type ViewConfig struct {
	// StatePath is where pan/zoom state persists across sessions.
	// Empty means the default view state file.
	StatePath string `toml:"state_path"`
}

// ServerConfig configures the rendering service.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Style:   "simple",
			Formats: []string{"svg"},
		},
		Cache: CacheConfig{
			Backend: "file",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "padviz", "config.toml"), nil
}

// Load reads the config file at path, layered over [Default]. A missing
// file is not an error; an empty path uses [DefaultPath].
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
