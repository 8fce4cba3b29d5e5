package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/portal/internal/buildinfo"
	"github.com/dmitrijs2005/portal/internal/client/cli"
	"github.com/dmitrijs2005/portal/internal/client/config"
	"github.com/dmitrijs2005/portal/internal/filex"
	"github.com/dmitrijs2005/portal/internal/logging"
	"github.com/dmitrijs2005/portal/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logOut, closeLog, err := logOutput(cfg.LogFile)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeLog()

	logger, err := logging.New(logging.Options{Backend: cfg.LogBackend, Level: cfg.LogLevel, Output: logOut})
	if err != nil {
		log.Fatalf("%v", err)
	}
	if s, ok := logger.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	shutdown, err := telemetry.Init(ctx, telemetry.Options{
		Enabled:     cfg.TelemetryEnabled,
		ServiceName: "portal",
		Version:     buildinfo.Version,
		OutputPath:  cfg.TelemetryOutput,
	}, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn(sctx, "telemetry shutdown", "error", err)
		}
	}()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "portal stopped", "error", err)
	}
}

func logOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
