package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/portal/internal/flagx"
	"github.com/dmitrijs2005/portal/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used for JSON and YAML decoding. Pointer fields tell
// "absent" from a zero value so a partial file only overrides what it sets.
type FileConfig struct {
	GraphQLEndpoint  *string         `json:"graphql_endpoint" yaml:"graphql_endpoint"`
	DatabasePath     *string         `json:"database_path" yaml:"database_path"`
	RequestTimeout   *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	CacheFreshness   *timex.Duration `json:"cache_freshness" yaml:"cache_freshness"`
	ClampPages       *bool           `json:"clamp_pages" yaml:"clamp_pages"`
	LogLevel         *string         `json:"log_level" yaml:"log_level"`
	LogBackend       *string         `json:"log_backend" yaml:"log_backend"`
	LogFile          *string         `json:"log_file" yaml:"log_file"`
	TelemetryEnabled *bool           `json:"telemetry_enabled" yaml:"telemetry_enabled"`
	TelemetryOutput  *string         `json:"telemetry_output" yaml:"telemetry_output"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setIf(&cfg.GraphQLEndpoint, fc.GraphQLEndpoint)
	setIf(&cfg.DatabasePath, fc.DatabasePath)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.CacheFreshness != nil {
		cfg.CacheFreshness = fc.CacheFreshness.Duration
	}
	setIf(&cfg.ClampPages, fc.ClampPages)
	setIf(&cfg.LogLevel, fc.LogLevel)
	setIf(&cfg.LogBackend, fc.LogBackend)
	setIf(&cfg.LogFile, fc.LogFile)
	setIf(&cfg.TelemetryEnabled, fc.TelemetryEnabled)
	setIf(&cfg.TelemetryOutput, fc.TelemetryOutput)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
