package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.APIURL != "http://127.0.0.1:7072" {
		t.Fatalf("expected default API URL, got %q", cfg.APIURL)
	}
	if cfg.DBPath != "" {
		t.Fatalf("expected empty db path, got %q", cfg.DBPath)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(`api_url = "http://localhost:9999"
db_path = "/tmp/alt.db"
log_level = "warn"
`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:9999" {
		t.Fatalf("expected api_url 'http://localhost:9999', got %q", cfg.APIURL)
	}
	if cfg.DBPath != "/tmp/alt.db" {
		t.Fatalf("expected db_path '/tmp/alt.db', got %q", cfg.DBPath)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected log_level 'warn', got %q", cfg.LogLevel)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFile("/nonexistent/path/.tracker.toml", &cfg); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatal("defaults should be preserved")
	}
}

func TestIsAllowedKey(t *testing.T) {
	for _, key := range []string{"api_url", "db_path", "log_level"} {
		if !IsAllowedKey(key) {
			t.Fatalf("expected %q to be allowed", key)
		}
	}
	if IsAllowedKey("invalid") {
		t.Fatal("expected 'invalid' to not be allowed")
	}
}

func TestGetKey(t *testing.T) {
	cfg := Config{
		APIURL:   "http://test:1234",
		DBPath:   "/tmp/test.db",
		LogLevel: "warn",
	}

	val, err := cfg.Get("api_url")
	if err != nil || val != "http://test:1234" {
		t.Fatalf("expected api_url, got %q (err: %v)", val, err)
	}
	val, err = cfg.Get("db_path")
	if err != nil || val != "/tmp/test.db" {
		t.Fatalf("expected db_path, got %q (err: %v)", val, err)
	}
	val, err = cfg.Get("log_level")
	if err != nil || val != "warn" {
		t.Fatalf("expected log_level, got %q (err: %v)", val, err)
	}
	if _, err := cfg.Get("invalid"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestSetKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)

	if err := SetKey(path, "api_url", "http://set:8080"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := SetKey(path, "log_level", "debug"); err != nil {
		t.Fatalf("set second key: %v", err)
	}

	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		t.Fatalf("load back: %v", err)
	}
	if cfg.APIURL != "http://set:8080" {
		t.Fatalf("expected written api_url, got %q", cfg.APIURL)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected written log_level, got %q", cfg.LogLevel)
	}

	if err := SetKey(path, "bogus", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(configDirEnvKey, t.TempDir())
	t.Setenv("TRACKER_API_URL", "http://env:7777")
	t.Setenv("TRACKER_DB", "/tmp/env.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://env:7777" {
		t.Fatalf("expected env api_url, got %q", cfg.APIURL)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("expected env db_path, got %q", cfg.DBPath)
	}
}
