package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestConfig_LoadFromFile tests loading the repository config.yml
func TestConfig_LoadFromFile(t *testing.T) {
	orig := Config
	defer func() { Config = orig }()

	if err := LoadAppConfig("../config.yml"); err != nil {
		t.Fatalf("Failed to load config.yml: %v", err)
	}

	if len(Config.Coverage) != 2 {
		t.Fatalf("coverage entries = %d, want 2", len(Config.Coverage))
	}
	if Config.Coverage[0].Names["ja"] != "上野" {
		t.Errorf("ueno ja name = %q", Config.Coverage[0].Names["ja"])
	}
	if Config.Pain.HolidayMode != "per_edge" {
		t.Errorf("holidayMode = %q", Config.Pain.HolidayMode)
	}
	if !Config.Topology.UseFixtures() {
		t.Error("fixtures should be enabled")
	}

	t.Logf("✓ Loaded config with %d covered stations", len(Config.Coverage))
}

// TestConfig_FallbackPaths tests that the first readable path wins
func TestConfig_FallbackPaths(t *testing.T) {
	orig := Config
	defer func() { Config = orig }()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("engine:\n  concurrency: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadAppConfig(filepath.Join(dir, "missing.yml"), path); err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if Config.Engine.Concurrency != 3 {
		t.Errorf("concurrency = %d, want 3", Config.Engine.Concurrency)
	}
}

// TestConfig_MissingFile tests error handling for missing config
func TestConfig_MissingFile(t *testing.T) {
	orig := Config
	defer func() { Config = orig }()

	err := LoadAppConfig(filepath.Join(t.TempDir(), "config.yml"))
	if err == nil {
		t.Error("Loading non-existent config should return error")
	}
	t.Logf("✓ Missing config returns error: %v", err)
}

// TestConfig_InvalidYAML tests error handling for invalid YAML
func TestConfig_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("invalid: yaml: content: [[[")); err == nil {
		t.Error("Parsing invalid YAML should return error")
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(empty): %v", err)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"locale", cfg.Engine.DefaultLocale, "en"},
		{"load timeout", cfg.Engine.LoadTimeoutMS, 2000},
		{"concurrency", cfg.Engine.Concurrency, 8},
		{"holiday mode", cfg.Pain.HolidayMode, "per_edge"},
		{"cache size", cfg.Cache.Size, 128},
		{"cache ttl", cfg.Cache.TTLSeconds, 300},
		{"read interval", cfg.Realtime.ReadIntervalMS, 60000},
		{"timeout", cfg.Realtime.TimeoutMS, 5000},
		{"level", cfg.Logging.Level, "info"},
		{"fixtures", cfg.Topology.UseFixtures(), true},
		{"hubs unset", cfg.Pain.Hubs == nil, true},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if d := Default(); d.Engine.Concurrency != cfg.Engine.Concurrency || d.Logging.Level != cfg.Logging.Level {
		t.Errorf("Default() differs from Parse(nil): %+v", d)
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"valid per_station", "pain:\n  holidayMode: per_station\n", false},
		{"bad holiday mode", "pain:\n  holidayMode: sometimes\n", true},
		{"negative concurrency", "engine:\n  concurrency: -1\n", true},
		{"negative timeout", "engine:\n  loadTimeoutMS: -5\n", true},
		{"bad alerts url", "realtime:\n  alertsURL: not a url\n", true},
		{"good alerts url", "realtime:\n  alertsURL: https://example.com/alerts.pb\n", false},
		{"bad level", "logging:\n  level: loud\n", true},
		{"coverage without name", "coverage:\n  - stationId: X\n", true},
		{"coverage bad regex", "coverage:\n  - stationId: X\n    name: X\n    textPattern: '(['\n", true},
		{"unknown field ignored", "server:\n  port: 80\n", false},
		{"fixtures off", "topology:\n  fixtures: false\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTopology_UseFixtures(t *testing.T) {
	cfg, err := Parse([]byte("topology:\n  fixtures: false\n  dir: ./stations\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Topology.UseFixtures() {
		t.Error("fixtures: false should disable the embedded hubs")
	}
	if cfg.Topology.Dir != "./stations" {
		t.Errorf("dir = %q", cfg.Topology.Dir)
	}
}
