package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"holdpress/internal/core/animation"
	"holdpress/internal/core/gesture"
	"holdpress/internal/core/holdloop"
	"holdpress/internal/feed"
	"holdpress/internal/logging"
	"holdpress/internal/storage"
	"holdpress/internal/ui/preferences"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "holdsim:", err)
		os.Exit(1)
	}
}

type pressResult struct {
	Press   time.Duration
	Outcome gesture.Outcome
	Elapsed time.Duration
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("holdsim", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: holdsim [flags] PRESS...")
		fmt.Fprintln(flags.Output(), "each PRESS is a duration (250ms, 1.2s) or a bare number of milliseconds")
		flags.PrintDefaults()
	}

	configPath := flags.String("config", "", "start from the settings in this YAML file")
	hold := flags.Duration("duration", 0, "hold threshold override")
	tap := flags.Duration("tap", 0, "tap threshold override")
	interval := flags.Duration("interval", 0, "tick interval override")
	grow := flags.Bool("grow", true, "enable the growth animation")
	ccw := flags.Bool("ccw", false, "sweep the progress ring counter-clockwise")
	manual := flags.Bool("manual", true, "drive the loop with a manual clock instead of sleeping")
	noTap := flags.Bool("no-tap", false, "run without a tap handler")
	feedAddress := flags.String("feed", "", "serve gesture events over websocket on this address")
	logLevel := flags.String("log-level", "", "log level: error, warn, info or debug")
	if err := flags.Parse(args); err != nil {
		return err
	}

	settings := preferences.DefaultSettings()
	if *configPath != "" {
		loaded, err := storage.LoadSettings(*configPath)
		if err != nil {
			return err
		}
		settings = loaded
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			settings.HoldDuration = *hold
		case "tap":
			settings.TapDuration = *tap
		case "interval":
			settings.TickInterval = *interval
		case "grow":
			settings.GrowEnabled = *grow
		case "ccw":
			settings.CounterClockwise = *ccw
		case "feed":
			settings.FeedAddress = *feedAddress
		case "log-level":
			settings.LogLevel = *logLevel
		}
	})

	level, err := logging.Parse(settings.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(level, stderr)

	presses, err := parsePresses(flags.Args())
	if err != nil {
		return err
	}
	if len(presses) == 0 {
		flags.Usage()
		return fmt.Errorf("no presses given")
	}

	var clock holdloop.Clock = holdloop.SystemClock
	advance := time.Sleep
	if *manual {
		manualClock := holdloop.NewManualClock(time.Now())
		clock = manualClock
		advance = manualClock.Advance
	}

	handlers := holdloop.Handlers{
		OnHeld: func() { logger.Info("held callback") },
	}
	if !*noTap {
		handlers.OnTapped = func() { logger.Info("tapped callback") }
	}

	controller, err := holdloop.New(settings.GestureConfig(), handlers, holdloop.Options{Clock: clock, Logger: logger})
	if err != nil {
		return err
	}
	defer controller.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	group, groupCtx := errgroup.WithContext(ctx)
	if settings.FeedAddress != "" {
		server := feed.NewServer(logger, feed.HubConfig{})
		events := controller.Subscribe(256)
		group.Go(func() error {
			return server.ListenAndServe(groupCtx, settings.FeedAddress)
		})
		group.Go(func() error {
			server.Pump(groupCtx, events)
			return nil
		})
	}

	results := simulate(controller, advance, controller.Subscribe(256), presses, logger)
	for _, result := range results {
		fmt.Fprintf(stdout, "press %-8s -> %-9s (elapsed %s)\n", result.Press, result.Outcome, result.Elapsed)
	}

	controller.Close()
	cancel()
	if err := group.Wait(); err != nil {
		return fmt.Errorf("feed: %w", err)
	}

	stats := controller.Stats()
	fmt.Fprintf(stdout, "held=%d tapped=%d cancelled=%d dismissed=%d\n", stats.Held, stats.Tapped, stats.Cancelled, stats.Dismissed)
	return nil
}

// drainSlice bounds how many ticks run between two drains of the event
// channel, so a long press never overflows the subscriber buffer.
const drainSlice = 64

// simulate replays each press and collects the outcome event it produced.
// advance moves time forward, either on a manual clock or by sleeping.
func simulate(controller *holdloop.Controller, advance func(time.Duration), events <-chan holdloop.Event, presses []time.Duration, logger *slog.Logger) []pressResult {
	step := controller.Config().TickInterval * drainSlice
	results := make([]pressResult, 0, len(presses))
	for _, press := range presses {
		result := pressResult{Press: press, Outcome: gesture.OutcomeNone}

		controller.PressBegan()
		for remaining := press; remaining > 0; remaining -= step {
			advance(minDuration(step, remaining))
			collect(events, &result, logger)
		}
		controller.PressEnded()

		advance(animation.ReleaseSpan)
		collect(events, &result, logger)
		results = append(results, result)
	}
	return results
}

func collect(events <-chan holdloop.Event, result *pressResult, logger *slog.Logger) {
	for {
		select {
		case event := <-events:
			switch event.Type {
			case holdloop.EventOutcome:
				result.Outcome = event.Outcome
				result.Elapsed = event.Elapsed
			case holdloop.EventGrowthStarted:
				logger.Debug("growth started", "elapsed", event.Elapsed)
			case holdloop.EventProgress:
				logger.Debug("progress", "elapsed", event.Elapsed, "phase", event.Phase, "value", event.Snapshot.Value, "scale", event.Snapshot.Scale)
			}
		default:
			return
		}
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func parsePresses(args []string) ([]time.Duration, error) {
	presses := make([]time.Duration, 0, len(args))
	for _, arg := range args {
		press, err := parsePress(arg)
		if err != nil {
			return nil, err
		}
		presses = append(presses, press)
	}
	return presses, nil
}

func parsePress(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if millis, err := strconv.Atoi(value); err == nil {
		if millis < 0 {
			return 0, fmt.Errorf("invalid press %q: negative duration", value)
		}
		return time.Duration(millis) * time.Millisecond, nil
	}
	press, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid press %q: %w", value, err)
	}
	if press < 0 {
		return 0, fmt.Errorf("invalid press %q: negative duration", value)
	}
	return press, nil
}
