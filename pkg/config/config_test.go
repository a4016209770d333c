package config

import (
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty (in-memory default)", cfg.RedisAddr)
	}
	if cfg.RedisKeyPrefix != "phishdetect:" {
		t.Errorf("RedisKeyPrefix = %q", cfg.RedisKeyPrefix)
	}
	if cfg.BlacklistTimeout != 3*time.Second {
		t.Errorf("BlacklistTimeout = %v, want 3s", cfg.BlacklistTimeout)
	}
	if cfg.MaxEnrichments < 1 {
		t.Errorf("MaxEnrichments = %d", cfg.MaxEnrichments)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PHISHDETECT_PORT", "9999")
	t.Setenv("PHISHDETECT_REDIS_ADDR", "localhost:6379")
	t.Setenv("PHISHDETECT_BLACKLIST_TIMEOUT_MS", "500")
	t.Setenv("PHISHDETECT_MAX_ENRICHMENTS", "1000") // above clamp ceiling

	cfg := NewDefaultConfig()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.BlacklistTimeout != 500*time.Millisecond {
		t.Errorf("BlacklistTimeout = %v, want 500ms", cfg.BlacklistTimeout)
	}
	if cfg.MaxEnrichments != 64 {
		t.Errorf("MaxEnrichments = %d, want clamped to 64", cfg.MaxEnrichments)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_FLOAT", "0.25")
	t.Setenv("TEST_SLICE", "a, b ,, c")
	t.Setenv("TEST_BAD_INT", "not-a-number")

	if got := GetEnv("TEST_STR", "d"); got != "value" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("TEST_MISSING", "d"); got != "d" {
		t.Errorf("GetEnv default = %q", got)
	}
	if got := GetEnvInt("TEST_INT", 0); got != 42 {
		t.Errorf("GetEnvInt = %d", got)
	}
	if got := GetEnvInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvInt bad value = %d, want default 7", got)
	}
	if got := GetEnvBool("TEST_BOOL", false); !got {
		t.Error("GetEnvBool = false, want true")
	}
	if got := GetEnvFloat("TEST_FLOAT", 0); got != 0.25 {
		t.Errorf("GetEnvFloat = %v", got)
	}
	got := GetEnvSlice("TEST_SLICE", nil)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("GetEnvSlice = %v", got)
	}
}
