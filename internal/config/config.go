// Package config holds process settings for the scene2video tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvWidth         = "SCENE2VIDEO_WIDTH"
	EnvHeight        = "SCENE2VIDEO_HEIGHT"
	EnvWorkers       = "SCENE2VIDEO_WORKERS"
	EnvCacheDB       = "SCENE2VIDEO_CACHE_DB"
	EnvPublishDir    = "SCENE2VIDEO_PUBLISH_DIR"
	EnvPublicBaseURL = "SCENE2VIDEO_PUBLIC_BASE_URL"
)

// Defaults.
const (
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultPublishDir = "output/published"
)

type Config struct {
	InputPath     string `yaml:"input,omitempty"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Workers       int    `yaml:"workers"`
	CacheDB       string `yaml:"cacheDb,omitempty"`
	PublishDir    string `yaml:"publishDir"`
	PublicBaseURL string `yaml:"publicBaseUrl,omitempty"`
	Strict        bool   `yaml:"strict,omitempty"`
	ShowStats     bool   `yaml:"showStats,omitempty"`
	BuildVersion  string `yaml:"-"`
}

// Default returns the built-in settings. workers is the worker count to use
// when nothing else sets one.
func Default(workers int) Config {
	if workers < 1 {
		workers = 1
	}
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Workers:    workers,
		PublishDir: DefaultPublishDir,
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; an empty path skips the file entirely.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads .env style files into the process environment. Variables
// that are already set win. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from SCENE2VIDEO_* variables.
func (c *Config) ApplyEnv() error {
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvWidth, &c.Width},
		{EnvHeight, &c.Height},
		{EnvWorkers, &c.Workers},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
		*v.dst = n
	}

	if v, ok := os.LookupEnv(EnvCacheDB); ok {
		c.CacheDB = v
	}
	if v, ok := os.LookupEnv(EnvPublishDir); ok && v != "" {
		c.PublishDir = v
	}
	if v, ok := os.LookupEnv(EnvPublicBaseURL); ok {
		c.PublicBaseURL = v
	}
	return nil
}

// Validate rejects settings the composer cannot work with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid output size %dx%d", c.Width, c.Height)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("invalid worker count %d", c.Workers)
	}
	return nil
}
