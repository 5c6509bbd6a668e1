package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	apgerrors "github.com/matzehuels/apg/pkg/errors"
	"github.com/matzehuels/apg/pkg/render/nodelink"
)

// Config holds defaults read from the config file.
//
//	[render]
//	format = "svg"
//	crossings = true
//	labels = true
//	scale = 72.0
//
//	[cache]
//	redis = "redis://localhost:6379/0"
//	ttl = "168h"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig sets defaults for the render command.
type RenderConfig struct {
	Format    string  `toml:"format"`
	Crossings bool    `toml:"crossings"`
	Labels    bool    `toml:"labels"`
	Scale     float64 `toml:"scale"`
}

// CacheConfig selects and tunes the render cache.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Redis    string `toml:"redis"`
	TTL      string `toml:"ttl"`
}

func defaultConfig() Config {
	return Config{
		Render: RenderConfig{Format: nodelink.FormatSVG, Labels: true, Scale: nodelink.DefaultScale},
		Cache:  CacheConfig{TTL: "168h"},
	}
}

// ttl parses the configured cache TTL. An empty string means no expiry.
func (c CacheConfig) ttl() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, apgerrors.Wrap(apgerrors.ErrCodeInvalidInput, err, "cache ttl %q", c.TTL)
	}
	return d, nil
}

// loadConfig reads path over the defaults. An empty path means the default
// location, which may be missing; an explicit path must exist.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return defaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, apgerrors.New(apgerrors.ErrCodeInvalidInput, "config %s: unknown keys %v", path, undecoded)
	}
	if _, err := cfg.Cache.ttl(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
