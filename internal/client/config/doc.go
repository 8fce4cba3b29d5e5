// Package config loads runtime configuration for the Portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config; the format
//     follows the file extension (.yaml/.yml, anything else is JSON).
//  3. A dotenv file (-env, or ./.env when present) and PORTAL_* environment
//     variables. Variables already set in the environment win over the file.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-e string       GraphQL endpoint URL
//	-d string       profile database path
//	-t duration     request timeout (e.g. 10s)
//	-f duration     cache freshness window
//	-clamp bool     clamp catalog pages past the last page
//	-l string       log level: debug, info, warn, error
//	-log-backend    slog or zap
//	-log-file       log destination (default stderr)
//	-trace bool     enable tracing
//	-trace-out      trace output file
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "graphql_endpoint": "https://rickandmortyapi.com/graphql",
//	  "database_path": "portal.db",
//	  "request_timeout": "15s",
//	  "cache_freshness": "30s",
//	  "clamp_pages": true,
//	  "log_level": "warn",
//	  "log_backend": "slog",
//	  "telemetry_enabled": false,
//	  "telemetry_output": "portal-traces.json"
//	}
//
// Environment variables carry the same names upper-cased with a PORTAL_
// prefix, e.g. PORTAL_GRAPHQL_ENDPOINT.
package config
