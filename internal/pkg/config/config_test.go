package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Storage.Backend != BackendFile {
		t.Errorf("unexpected defaults: port=%s backend=%s", cfg.Port, cfg.Storage.Backend)
	}
	if cfg.Storage.Path != "data/storage.json" || cfg.Storage.SQLitePath != "data/storage.db" {
		t.Errorf("unexpected storage paths: %+v", cfg.Storage)
	}
	if cfg.Storage.SaveTimeout != 5*time.Second {
		t.Errorf("expected 5s save timeout, got %s", cfg.Storage.SaveTimeout)
	}
	if cfg.Auth.PasswordScheme != "plaintext" || cfg.Auth.TokenLength != 32 {
		t.Errorf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Errorf("unexpected CORS origins: %v", cfg.HTTP.CORSOrigins)
	}
	if len(cfg.Storage.Mirrors) != 0 {
		t.Errorf("expected no mirrors, got %v", cfg.Storage.Mirrors)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development profile by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_BACKEND":  "sqlite",
		"SNAPSHOT_MIRRORS": "file, redis",
		"SAVE_TIMEOUT":     "750ms",
		"PASSWORD_SCHEME":  "bcrypt",
		"ENV":              "production",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected sqlite, got %s", cfg.Storage.Backend)
	}
	if len(cfg.Storage.Mirrors) != 2 || cfg.Storage.Mirrors[1] != BackendRedis {
		t.Errorf("unexpected mirrors %q", cfg.Storage.Mirrors)
	}
	if cfg.Storage.SaveTimeout != 750*time.Millisecond {
		t.Errorf("unexpected timeout %s", cfg.Storage.SaveTimeout)
	}
	if cfg.IsDevelopment() {
		t.Errorf("expected production profile")
	}
}

func TestLoadWith_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":   {"STORAGE_BACKEND": "postgres"},
		"unknown mirror":    {"SNAPSHOT_MIRRORS": "s3"},
		"mirror is primary": {"SNAPSHOT_MIRRORS": "file"},
		"bad timeout":       {"SAVE_TIMEOUT": "soon"},
		"zero timeout":      {"SAVE_TIMEOUT": "0s"},
		"bad token length":  {"TOKEN_LENGTH": "long"},
		"negative rate":     {"AUTH_RATE_LIMIT": "-1"},
	}
	for name, env := range cases {
		if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoad_PanicsOnInvalidEnv(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "tape")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Load()
}
