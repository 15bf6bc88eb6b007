package healthcheck

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/angeloszaimis/kube-healthcheck/internal/probe"
	"github.com/angeloszaimis/kube-healthcheck/internal/render"
	"github.com/angeloszaimis/kube-healthcheck/internal/status"
)

type Prober interface {
	Probe(ctx context.Context) probe.Outcome
	Target() *url.URL
}

type Printer interface {
	Print(line render.Line) error
}

// SleepFunc blocks for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option customizes a Loop.
type Option func(*Loop)

// WithSleep replaces the delay between probes.
func WithSleep(fn SleepFunc) Option {
	return func(l *Loop) {
		l.sleep = fn
	}
}

// Loop runs probes one at a time. It is not safe for concurrent use.
type Loop struct {
	prober  Prober
	printer Printer
	tracker *status.Tracker
	delay   time.Duration
	logger  *slog.Logger
	sleep   SleepFunc
}

func New(
	prober Prober,
	printer Printer,
	delay time.Duration,
	failureThreshold int,
	logger *slog.Logger,
	opts ...Option,
) *Loop {
	l := &Loop{
		prober:  prober,
		printer: printer,
		tracker: status.NewTracker(failureThreshold),
		delay:   delay,
		logger:  logger,
		sleep:   Sleep,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Run probes until ctx is done and returns ctx.Err(). Probe failures never
// stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("Health check started",
		slog.String("url", l.prober.Target().String()),
		slog.Duration("delay", l.delay),
		slog.Int("failure_threshold", l.tracker.Threshold()))

	for {
		l.Tick(ctx)

		if err := l.sleep(ctx, l.delay); err != nil {
			l.logger.Info("Health check stopped",
				slog.String("url", l.prober.Target().String()))
			return err
		}
	}
}

// Tick runs a single iteration: probe, update the failure count, print.
func (l *Loop) Tick(ctx context.Context) render.Line {
	out := l.prober.Probe(ctx)
	previous := l.tracker.Label()
	label := l.tracker.Record(out.Failed)

	l.logger.Debug("Probe finished",
		slog.String("url", l.prober.Target().String()),
		slog.Bool("failed", out.Failed),
		slog.String("result", out.Description),
		slog.Duration("elapsed", out.Elapsed),
		slog.Int("failures", l.tracker.Failures()))

	if label != previous {
		l.logger.Info("Health changed",
			slog.String("from", previous.String()),
			slog.String("to", label.String()))
	}

	line := render.NewLine(label, l.prober.Target(), out)
	if err := l.printer.Print(line); err != nil {
		l.logger.Warn("Failed to write status line", slog.Any("err", err))
	}

	return line
}

// Failures reports the current consecutive failure count.
func (l *Loop) Failures() int {
	return l.tracker.Failures()
}

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
