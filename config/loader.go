package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// DefaultPaths are tried in order when LoadAppConfig gets no paths
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

const (
	defaultLocale         = "en"
	defaultLoadTimeoutMS  = 2000
	defaultConcurrency    = 8
	defaultCacheSize      = 128
	defaultCacheTTL       = 300
	defaultReadIntervalMS = 60000
	defaultTimeoutMS      = 5000
	defaultLevel          = "info"
)

// LoadAppConfig loads and validates the first readable file of paths, or of
// DefaultPaths, into Config.
func LoadAppConfig(paths ...string) error {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes, validates and fills defaults. It does not touch Config.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("validate config: %w", err)
	}
	for _, c := range cfg.Coverage {
		for _, pat := range []string{c.IDPattern, c.TextPattern, c.Ignore} {
			if pat == "" {
				continue
			}
			if _, err := regexp.Compile(pat); err != nil {
				return AppConfig{}, fmt.Errorf("coverage %s: %w", c.StationID, err)
			}
		}
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Default returns the configuration of an empty file
func Default() AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Engine.DefaultLocale == "" {
		cfg.Engine.DefaultLocale = defaultLocale
	}
	if cfg.Engine.LoadTimeoutMS == 0 {
		cfg.Engine.LoadTimeoutMS = defaultLoadTimeoutMS
	}
	if cfg.Engine.Concurrency == 0 {
		cfg.Engine.Concurrency = defaultConcurrency
	}
	if cfg.Pain.HolidayMode == "" {
		cfg.Pain.HolidayMode = "per_edge"
	}
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = defaultCacheSize
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = defaultCacheTTL
	}
	if cfg.Realtime.ReadIntervalMS == 0 {
		cfg.Realtime.ReadIntervalMS = defaultReadIntervalMS
	}
	if cfg.Realtime.TimeoutMS == 0 {
		cfg.Realtime.TimeoutMS = defaultTimeoutMS
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLevel
	}
}
