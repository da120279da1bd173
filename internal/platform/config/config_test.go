package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("EXTENSION_TTL_SECONDS", "")
	Load()

	if AppConfig.JWTExp != 7*24*time.Hour {
		t.Fatalf("expected 7 day token expiry, got %v", AppConfig.JWTExp)
	}
	if AppConfig.ExtensionTTL != 5*time.Minute {
		t.Fatalf("expected 5 minute extension ttl, got %v", AppConfig.ExtensionTTL)
	}
	if AppConfig.ProblemTTL != time.Hour || AppConfig.CatalogTTL != time.Hour {
		t.Fatalf("unexpected cache ttls: %v %v", AppConfig.ProblemTTL, AppConfig.CatalogTTL)
	}
	if AppConfig.DefaultMinDifficulty != 800 || AppConfig.DefaultMaxDifficulty != 1600 {
		t.Fatalf("unexpected default range: %d-%d", AppConfig.DefaultMinDifficulty, AppConfig.DefaultMaxDifficulty)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_BACKEND", CacheBackendMemory)
	Load()

	if AppConfig.APIPort != "9090" {
		t.Fatalf("unexpected port %q", AppConfig.APIPort)
	}
	if AppConfig.RedisDB != 3 {
		t.Fatalf("unexpected redis db %d", AppConfig.RedisDB)
	}
	if AppConfig.CacheBackend != CacheBackendMemory {
		t.Fatalf("unexpected cache backend %q", AppConfig.CacheBackend)
	}
}

func TestMigrationURL(t *testing.T) {
	c := &Config{DBUser: "quiz", DBPassword: "p@ss", DBHost: "db", DBPort: "5432", DBName: "guessr", DBSslMode: "disable"}
	got := c.MigrationURL()
	if !strings.HasPrefix(got, "postgres://quiz:p%40ss@db:5432/guessr") {
		t.Fatalf("unexpected url %q", got)
	}
	if !strings.HasSuffix(got, "sslmode=disable") {
		t.Fatalf("missing sslmode in %q", got)
	}
}
