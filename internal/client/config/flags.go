package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/portal/internal/flagx"
)

var knownFlags = []string{
	"-e", "-d", "-t", "-f", "-clamp", "-l", "-log-backend", "-log-file", "-trace", "-trace-out",
}

// parseFlags populates Config fields from command-line flags.
//
// Only the flags listed in knownFlags are considered, using
// flagx.FilterArgs, so -c and -env do not trip the parser. Boolean flags
// take their value in the -flag=value form.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("portal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.GraphQLEndpoint, "e", cfg.GraphQLEndpoint, "GraphQL endpoint URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "profile database path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.DurationVar(&cfg.CacheFreshness, "f", cfg.CacheFreshness, "cache freshness window")
	fs.BoolVar(&cfg.ClampPages, "clamp", cfg.ClampPages, "clamp catalog pages past the last page")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "log backend: slog or zap")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file (default stderr)")
	fs.BoolVar(&cfg.TelemetryEnabled, "trace", cfg.TelemetryEnabled, "enable tracing")
	fs.StringVar(&cfg.TelemetryOutput, "trace-out", cfg.TelemetryOutput, "trace output file")

	return fs.Parse(args)
}
