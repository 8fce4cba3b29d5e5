package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/portal/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envPrefix      = "PORTAL_"
	defaultEnvFile = ".env"
)

// parseEnv loads the dotenv file, then overlays cfg with PORTAL_*
// variables. An explicit -env file must exist; the default one is optional.
func parseEnv(cfg *Config, args []string) error {
	file := flagx.EnvFileFlag(args)
	explicit := file != ""
	if !explicit {
		file = defaultEnvFile
	}

	if err := godotenv.Load(file); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	cfg.GraphQLEndpoint = GetEnv(envPrefix+"GRAPHQL_ENDPOINT", cfg.GraphQLEndpoint)
	cfg.DatabasePath = GetEnv(envPrefix+"DATABASE_PATH", cfg.DatabasePath)
	cfg.RequestTimeout = GetDurationEnv(envPrefix+"REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.CacheFreshness = GetDurationEnv(envPrefix+"CACHE_FRESHNESS", cfg.CacheFreshness)
	cfg.ClampPages = GetBoolEnv(envPrefix+"CLAMP_PAGES", cfg.ClampPages)
	cfg.LogLevel = GetEnv(envPrefix+"LOG_LEVEL", cfg.LogLevel)
	cfg.LogBackend = GetEnv(envPrefix+"LOG_BACKEND", cfg.LogBackend)
	cfg.LogFile = GetEnv(envPrefix+"LOG_FILE", cfg.LogFile)
	cfg.TelemetryEnabled = GetBoolEnv(envPrefix+"TELEMETRY_ENABLED", cfg.TelemetryEnabled)
	cfg.TelemetryOutput = GetEnv(envPrefix+"TELEMETRY_OUTPUT", cfg.TelemetryOutput)
	return nil
}

// GetEnv returns the value of an environment variable or a default value if not set
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBoolEnv returns the boolean value of an environment variable or a default value if not set
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetDurationEnv accepts "15s" style values.
func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
