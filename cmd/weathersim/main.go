package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/weather/internal/core/observability/log"
	"github.com/zeusync/weather/internal/core/scheduler"
	"github.com/zeusync/weather/internal/core/world"
	"github.com/zeusync/weather/internal/injector"
	"github.com/zeusync/weather/internal/server"
	"github.com/zeusync/weather/internal/weather"
)

type options struct {
	configPath string
	worldPath  string
	seed       int64
	logLevel   string
	feedAddr   string
	tick       time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "weather config yaml (defaults when empty)")
	flag.StringVar(&opts.worldPath, "world", "", "world layout yaml (generated forest when empty)")
	flag.Int64Var(&opts.seed, "seed", 0, "override the config seed when non-zero")
	flag.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&opts.feedAddr, "feed", "", "serve the notification feed on this address")
	flag.DurationVar(&opts.tick, "tick", 50*time.Millisecond, "wall time per scheduler tick")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "weathersim:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := injector.InitializeLogger(level)
	defer func() { _ = logger.Sync() }()

	cfg := weather.DefaultConfig()
	if opts.configPath != "" {
		if cfg, err = weather.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}

	var w *world.Memory
	if opts.worldPath != "" {
		layout, err := world.LoadLayout(opts.worldPath)
		if err != nil {
			return err
		}
		w = layout.Build()
	} else {
		w = generateWorld(uint64(cfg.Seed))
	}
	logger.Info("world ready", log.Int("actors", len(w.Actors())))

	eventBus := injector.InitializeBus()
	clock := scheduler.NewClock(logger.Named("clock"))
	mgr, err := weather.NewManager(cfg, w, clock,
		weather.WithNotifier(weather.NewBusNotifier(eventBus, logger.Named("notify"))),
		weather.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var feed *server.Server
	if opts.feedAddr != "" {
		fc := server.DefaultServerConfig()
		fc.ListenAddr = opts.feedAddr
		feed, err = server.NewServer(fc, eventBus, func() any { return mgr.Snapshot() }, logger)
		if err != nil {
			return err
		}
		if err := feed.Start(); err != nil {
			return err
		}
	}

	if err := mgr.Start(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scheduler.NewLoop(clock, opts.tick, logger).Run(gctx)
	})
	err = g.Wait()

	if stopErr := mgr.Stop(); stopErr != nil {
		logger.Warn("weather stop", log.Error(stopErr))
	}
	if feed != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if stopErr := feed.Stop(shutdownCtx); stopErr != nil {
			logger.Warn("feed stop", log.Error(stopErr))
		}
	}

	logger.Info("final snapshot", log.Any("snapshot", mgr.Snapshot()), log.Uint64("panics", clock.Panics()))
	return err
}
