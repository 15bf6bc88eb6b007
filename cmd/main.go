package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/angeloszaimis/kube-healthcheck/config"
	"github.com/angeloszaimis/kube-healthcheck/internal/healthcheck"
	"github.com/angeloszaimis/kube-healthcheck/internal/probe"
	"github.com/angeloszaimis/kube-healthcheck/internal/render"
	"github.com/angeloszaimis/kube-healthcheck/pkg/logger"
)

const (
	exitOK = iota
	exitInternal
	exitUsage
)

const name = "kube-healthcheck"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run blocks until ctx is done. The binary passes a context that is never
// cancelled, so it probes until the process is killed.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(name, args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		logger.New(stderr, config.LogLevelError, false, config.LogFormatText).
			Error("failed to load config", slog.Any("err", err))
		return exitUsage
	}

	log := logger.New(stderr, cfg.LogLevel, false, cfg.LogFormat)

	prober, err := probe.New(cfg.Target(), cfg.TimeoutDuration())
	if err != nil {
		log.Error("Failed to create HTTP client", slog.Any("err", err))
		return exitInternal
	}

	printer := render.NewPrinter(stdout, render.Mode(cfg.Color))

	loop := healthcheck.New(prober, printer, cfg.DelayDuration(), cfg.FailureThreshold, log)
	// Run only returns once ctx is done, which the binary never does.
	loop.Run(ctx)

	return exitOK
}
