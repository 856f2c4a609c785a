// Copyright 2025 Certen Protocol
//
// Environment-driven configuration, grounded on pkg/config.Config's
// Load/Validate/getEnv* shape: plain env lookups with typed defaults, and a
// Validate pass that accumulates every error before returning one.
package certconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings for the verification engine, asset router,
// and metrics/health surfaces.
type Config struct {
	// Verifier Configuration
	CanisterID          string
	RootKeyPath         string
	MaxClockSkew        time.Duration
	MinSupportedVersion uint16

	// Server Configuration
	ListenAddr  string
	MetricsAddr string
	HealthAddr  string

	// Asset Manifest Configuration
	ManifestPath string
	AssetsDir    string

	LogLevel string
}

// Load builds a Config from environment variables, applying the same
// defaults a freshly deployed instance should use.
func Load() (*Config, error) {
	cfg := &Config{
		CanisterID:          getEnv("CERTEN_CANISTER_ID", ""),
		RootKeyPath:         getEnv("CERTEN_ROOT_KEY_PATH", ""),
		MaxClockSkew:        getEnvDuration("CERTEN_MAX_CLOCK_SKEW", 5*time.Minute),
		MinSupportedVersion: uint16(getEnvInt("CERTEN_MIN_SUPPORTED_VERSION", 1)),

		ListenAddr:  getEnv("CERTEN_LISTEN_ADDR", "0.0.0.0:8443"),
		MetricsAddr: getEnv("CERTEN_METRICS_ADDR", "0.0.0.0:9090"),
		HealthAddr:  getEnv("CERTEN_HEALTH_ADDR", "0.0.0.0:8081"),

		ManifestPath: getEnv("CERTEN_MANIFEST_PATH", ""),
		AssetsDir:    getEnv("CERTEN_ASSETS_DIR", ""),

		LogLevel: getEnv("CERTEN_LOG_LEVEL", "info"),
	}
	return cfg, nil
}

// Validate checks that the configuration is complete enough to run the
// verification engine and asset router, accumulating every problem found
// rather than failing on the first.
func (c *Config) Validate() error {
	var problems []string

	if c.CanisterID == "" {
		problems = append(problems, "CERTEN_CANISTER_ID is required but not set")
	}
	if c.RootKeyPath == "" {
		problems = append(problems, "CERTEN_ROOT_KEY_PATH is required but not set")
	}
	if c.MaxClockSkew <= 0 {
		problems = append(problems, "CERTEN_MAX_CLOCK_SKEW must be positive")
	}
	if c.MinSupportedVersion == 0 {
		problems = append(problems, "CERTEN_MIN_SUPPORTED_VERSION must be at least 1")
	}
	if c.ManifestPath == "" && c.AssetsDir == "" {
		problems = append(problems, "one of CERTEN_MANIFEST_PATH or CERTEN_ASSETS_DIR must be set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// ValidateForDevelopment performs relaxed validation suitable for local
// development, where a root key and canister ID may be stand-ins.
func (c *Config) ValidateForDevelopment() error {
	if c.MaxClockSkew <= 0 {
		return errors.New("CERTEN_MAX_CLOCK_SKEW must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
