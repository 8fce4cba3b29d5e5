package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Options selects and tunes a Logger implementation.
type Options struct {
	Backend string // "slog" (default) or "zap"
	Level   string // debug, info, warn, error
	JSON    bool
	Output  io.Writer
}

// New builds a Logger according to opts. Output defaults to io.Discard so
// that a zero Options value never writes into the terminal UI.
func New(opts Options) (Logger, error) {
	out := opts.Output
	if out == nil {
		out = io.Discard
	}

	switch strings.ToLower(opts.Backend) {
	case "", BackendSlog:
		return newSlogBackend(out, orDefault(opts.Level, "info"), opts.JSON)

	case BackendZap:
		level, err := zapcore.ParseLevel(orDefault(opts.Level, "info"))
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		encCfg := zap.NewDevelopmentEncoderConfig()
		encoder := zapcore.NewConsoleEncoder(encCfg)
		if opts.JSON {
			encCfg = zap.NewProductionEncoderConfig()
			encoder = zapcore.NewJSONEncoder(encCfg)
		}
		core := zapcore.NewCore(encoder, zapcore.AddSync(out), zap.NewAtomicLevelAt(level))
		return NewZapLogger(zap.New(core)), nil

	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
