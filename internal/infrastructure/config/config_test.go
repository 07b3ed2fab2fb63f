package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "supersecret",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}

	if cfg.Port != "3001" {
		t.Errorf("expected default port 3001, got %q", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("expected default token ttl 1h, got %v", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected default bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if !cfg.SeedEnabled {
		t.Errorf("expected seed endpoint enabled by default")
	}
	if !cfg.UsesMongo() {
		t.Errorf("expected mongo as default store, got %q", cfg.Store.Driver)
	}
	if cfg.Mongo.MaxPoolSize != 50 || cfg.Mongo.SelectTimeout != 5*time.Second {
		t.Errorf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if cfg.Redis.OpTimeout != 500*time.Millisecond || cfg.Redis.PoolSize != 10 {
		t.Errorf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Redis.Enabled {
		t.Errorf("expected redis cache disabled by default")
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development env by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "supersecret",
		"PORT":            "8080",
		"ENV":             "production",
		"TOKEN_TTL":       "30m",
		"STORE_DRIVER":    "postgres",
		"SQL_DSN":         "postgres://u:p@db:5432/scoring",
		"REDIS_ENABLED":   "true",
		"SCORE_CACHE_TTL": "1h",
		"SEED_ENABLED":    "false",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}

	if cfg.Port != "8080" || cfg.TokenTTL != 30*time.Minute {
		t.Errorf("unexpected overrides: port=%q ttl=%v", cfg.Port, cfg.TokenTTL)
	}
	if cfg.UsesMongo() || cfg.Store.DSN != "postgres://u:p@db:5432/scoring" {
		t.Errorf("unexpected store config: %+v", cfg.Store)
	}
	if !cfg.Redis.Enabled || cfg.Redis.ScoreTTL != time.Hour {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.SeedEnabled || cfg.IsDevelopment() {
		t.Errorf("expected production without seeding")
	}
}

func TestLoadWith_RequiresSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}
