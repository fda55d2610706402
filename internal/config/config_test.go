package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. (Stand-in for t.Chdir, which
// requires Go 1.24.)
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

// writeConfig creates a config/{env}.yaml under a temp project root and
// chdirs into it for the duration of the test.
func writeConfig(t *testing.T, env, content string) {
	t.Helper()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "config", env+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, root)
}

// TestLoadDefaults verifies an empty file yields every documented default.
func TestLoadDefaults(t *testing.T) {
	writeConfig(t, "dev", "server: {}\n")
	t.Setenv("ENV_NAME", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.CacheCapacity != 1000 {
		t.Errorf("CacheCapacity = %d, want 1000", cfg.CacheCapacity)
	}
	if cfg.TTLToday != 24*time.Hour {
		t.Errorf("TTLToday = %v, want 24h", cfg.TTLToday)
	}
	if cfg.TTLFuture != 7*24*time.Hour {
		t.Errorf("TTLFuture = %v, want 168h", cfg.TTLFuture)
	}
	if cfg.TTLQibla != 30*24*time.Hour {
		t.Errorf("TTLQibla = %v, want 720h", cfg.TTLQibla)
	}
	if cfg.WarmCache {
		t.Error("WarmCache = true, want false by default")
	}
	if cfg.WarmCron != "0 0 * * *" {
		t.Errorf("WarmCron = %q, want daily midnight", cfg.WarmCron)
	}
	if cfg.PersistenceEnabled {
		t.Error("PersistenceEnabled = true, want false by default")
	}
}

// TestLoadFullFile verifies every section round-trips from YAML.
func TestLoadFullFile(t *testing.T) {
	writeConfig(t, "dev", `
server:
  port: "9090"
request:
  timeout: 2s
cache:
  capacity: 50
  ttl:
    today: 1h
    future: 2h
    past: 3h
    qibla: 4h
  warming:
    enabled: true
    cron: "30 2 * * *"
    locations:
      - latitude: 59.9139
        longitude: 10.7522
        country: norway
        city: oslo
        timezone_offset: 1
reliability:
  rate_limit_rps: 10
  rate_limit_burst: 20
shutdown:
  timeout: 9s
persistence:
  enabled: false
`)
	t.Setenv("ENV_NAME", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("RequestTimeout = %v, want 2s", cfg.RequestTimeout)
	}
	if cfg.CacheCapacity != 50 {
		t.Errorf("CacheCapacity = %d, want 50", cfg.CacheCapacity)
	}
	if cfg.TTLToday != time.Hour || cfg.TTLFuture != 2*time.Hour || cfg.TTLPast != 3*time.Hour || cfg.TTLQibla != 4*time.Hour {
		t.Errorf("TTLs = %v/%v/%v/%v", cfg.TTLToday, cfg.TTLFuture, cfg.TTLPast, cfg.TTLQibla)
	}
	if !cfg.WarmCache || cfg.WarmCron != "30 2 * * *" {
		t.Errorf("warming = %v %q", cfg.WarmCache, cfg.WarmCron)
	}
	if len(cfg.WarmLocations) != 1 || cfg.WarmLocations[0].City != "oslo" {
		t.Errorf("WarmLocations = %+v", cfg.WarmLocations)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Errorf("rate limit = %d/%d, want 10/20", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.ShutdownTimeout != 9*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 9s", cfg.ShutdownTimeout)
	}
}

// TestLoadEnvOverrides verifies PORT and DATABASE_URL beat the file values.
func TestLoadEnvOverrides(t *testing.T) {
	writeConfig(t, "dev", `
server:
  port: "9090"
persistence:
  enabled: true
  dsn: "postgres://file"
`)
	t.Setenv("ENV_NAME", "")
	t.Setenv("PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "7070" {
		t.Errorf("ServerPort = %q, want env override 7070", cfg.ServerPort)
	}
	if cfg.PostgresDSN != "postgres://env" {
		t.Errorf("PostgresDSN = %q, want env override", cfg.PostgresDSN)
	}
}

// TestLoadEnvName verifies ENV_NAME selects the config file.
func TestLoadEnvName(t *testing.T) {
	writeConfig(t, "staging", "server:\n  port: \"6060\"\n")
	t.Setenv("ENV_NAME", "staging")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "6060" {
		t.Errorf("ServerPort = %q, want 6060 from staging.yaml", cfg.ServerPort)
	}
}

// TestLoadMissingFile verifies a helpful error when the file is absent.
func TestLoadMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV_NAME", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded without a config file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("error = %v, want config file not found", err)
	}
}

// TestLoadValidation covers the cross-field rules.
func TestLoadValidation(t *testing.T) {
	t.Run("persistence without dsn", func(t *testing.T) {
		writeConfig(t, "dev", "persistence:\n  enabled: true\n")
		t.Setenv("ENV_NAME", "")
		t.Setenv("DATABASE_URL", "")

		if _, err := Load(); err == nil {
			t.Error("Load accepted persistence without a DSN")
		}
	})

	t.Run("warming without locations", func(t *testing.T) {
		writeConfig(t, "dev", "cache:\n  warming:\n    enabled: true\n")
		t.Setenv("ENV_NAME", "")
		t.Setenv("DATABASE_URL", "")

		if _, err := Load(); err == nil {
			t.Error("Load accepted warming without locations")
		}
	})
}

// TestParseDuration covers the fallback behavior.
func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{"empty uses default", "", time.Minute},
		{"valid", "90s", 90 * time.Second},
		{"garbage uses default", "soon", time.Minute},
		{"negative uses default", "-5s", time.Minute},
		{"zero uses default", "0s", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseDuration(tt.input, time.Minute); got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
