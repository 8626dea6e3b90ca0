package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by AGENTDECK_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("AGENTDECK_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

// BackendURL returns the base URL of the AI Agent Manager backend.
// Defaults to the local dev backend.
func BackendURL() string {
	u := os.Getenv("BACKEND_URL")
	if u == "" {
		return "http://localhost:8001"
	}
	return u
}

// PollInterval returns the background refresh interval.
// Defaults to 5000 ms.
func PollInterval() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("POLL_INTERVAL_MS"))
	if err != nil || ms <= 0 {
		return 5 * time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

// BackendTimeout returns the per-request timeout for backend calls.
// Defaults to 10000 ms.
func BackendTimeout() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("BACKEND_TIMEOUT_MS"))
	if err != nil || ms <= 0 {
		return 10 * time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8090
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// RevenueSlotsEnabled reports whether the revenue slots
// (revenue_stats, revenue_opportunities, next_actions) are registered.
// Defaults to true.
func RevenueSlotsEnabled() bool {
	return os.Getenv("REVENUE_SLOTS_ENABLED") != "false"
}

// ProductsSlotEnabled reports whether the products slot is registered.
// Defaults to false.
func ProductsSlotEnabled() bool {
	return os.Getenv("PRODUCTS_SLOT_ENABLED") == "true"
}

// RateLimitRPS returns requests per second limit for the local API.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// BackendRateLimitRPS caps outbound requests to the backend.
// Zero (the default) leaves the client unlimited.
func BackendRateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("BACKEND_RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 0
	}
	return rps
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
