package config

import (
	"testing"
	"time"
)

func TestBackendURL_Default(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	if got := BackendURL(); got != "http://localhost:8001" {
		t.Errorf("expected default backend URL, got %q", got)
	}
}

func TestBackendURL_Override(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://agents.internal:9000")
	if got := BackendURL(); got != "http://agents.internal:9000" {
		t.Errorf("expected override, got %q", got)
	}
}

func TestPollInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL_MS", "")
	if got := PollInterval(); got != 5*time.Second {
		t.Errorf("expected 5s default, got %v", got)
	}

	t.Setenv("POLL_INTERVAL_MS", "250")
	if got := PollInterval(); got != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", got)
	}

	t.Setenv("POLL_INTERVAL_MS", "-1")
	if got := PollInterval(); got != 5*time.Second {
		t.Errorf("expected default for invalid value, got %v", got)
	}
}

func TestBackendTimeout(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT_MS", "garbage")
	if got := BackendTimeout(); got != 10*time.Second {
		t.Errorf("expected 10s default, got %v", got)
	}

	t.Setenv("BACKEND_TIMEOUT_MS", "1500")
	if got := BackendTimeout(); got != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", got)
	}
}

func TestServerAddr(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	if got := ServerAddr(); got != ":8090" {
		t.Errorf("expected default addr, got %q", got)
	}

	t.Setenv("SERVER_PORT", "9191")
	if got := ServerAddr(); got != ":9191" {
		t.Errorf("expected :9191, got %q", got)
	}
}

func TestRevenueSlotsEnabled(t *testing.T) {
	t.Setenv("REVENUE_SLOTS_ENABLED", "")
	if !RevenueSlotsEnabled() {
		t.Error("revenue slots should default to enabled")
	}

	t.Setenv("REVENUE_SLOTS_ENABLED", "false")
	if RevenueSlotsEnabled() {
		t.Error("revenue slots should be disabled")
	}
}

func TestProductsSlotEnabled(t *testing.T) {
	t.Setenv("PRODUCTS_SLOT_ENABLED", "")
	if ProductsSlotEnabled() {
		t.Error("products slot should default to disabled")
	}

	t.Setenv("PRODUCTS_SLOT_ENABLED", "true")
	if !ProductsSlotEnabled() {
		t.Error("products slot should be enabled")
	}
}

func TestRateLimits(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("RATE_LIMIT_BURST", "")
	if got := RateLimitRPS(); got != 100 {
		t.Errorf("expected default rps 100, got %v", got)
	}
	if got := RateLimitBurst(); got != 20 {
		t.Errorf("expected default burst 20, got %v", got)
	}

	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	if got := RateLimitRPS(); got != 2.5 {
		t.Errorf("expected rps 2.5, got %v", got)
	}
	if got := RateLimitBurst(); got != 5 {
		t.Errorf("expected burst 5, got %v", got)
	}
}

func TestBackendRateLimitRPS(t *testing.T) {
	t.Setenv("BACKEND_RATE_LIMIT_RPS", "")
	if got := BackendRateLimitRPS(); got != 0 {
		t.Errorf("expected unlimited by default, got %v", got)
	}

	t.Setenv("BACKEND_RATE_LIMIT_RPS", "10")
	if got := BackendRateLimitRPS(); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
}

func TestLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	if got := LogLevel(); got != "info" {
		t.Errorf("expected info default, got %q", got)
	}

	t.Setenv("LOG_LEVEL", "debug")
	if got := LogLevel(); got != "debug" {
		t.Errorf("expected debug, got %q", got)
	}
}
