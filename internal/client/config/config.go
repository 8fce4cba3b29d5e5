package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/portal/internal/common"
)

// Config holds runtime settings for the Portal CLI.
//
// Units: RequestTimeout and CacheFreshness are time.Duration values.
type Config struct {
	GraphQLEndpoint string
	DatabasePath    string
	RequestTimeout  time.Duration
	CacheFreshness  time.Duration
	// ClampPages sends catalog locations past the last page to the last
	// page once the service has reported the page count.
	ClampPages bool

	LogLevel   string
	LogBackend string
	// LogFile receives logs; empty means stderr.
	LogFile string

	TelemetryEnabled bool
	TelemetryOutput  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GraphQLEndpoint = common.DefaultGraphQLEndpoint
	c.DatabasePath = "portal.db"
	c.RequestTimeout = 15 * time.Second
	c.CacheFreshness = 30 * time.Second
	c.ClampPages = true
	c.LogLevel = "warn"
	c.LogBackend = "slog"
	c.LogFile = ""
	c.TelemetryEnabled = false
	c.TelemetryOutput = "portal-traces.json"
}

// Load builds a Config from args (without the program name). Later
// sources override earlier ones: defaults, config file, dotenv and
// environment, flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on invalid input.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
