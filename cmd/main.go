package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/okian/talentflow/internal/adapters/http/api"
	"github.com/okian/talentflow/internal/adapters/repository"
	app "github.com/okian/talentflow/internal/app"
	"github.com/okian/talentflow/internal/config"
	"github.com/okian/talentflow/internal/fault"
	"github.com/okian/talentflow/internal/seed"
	"github.com/okian/talentflow/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection; the custom registry carries
	// the service's own metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	storeOpts := []repository.MemOption{repository.WithLogger(log)}
	if cfg.SnapshotPath != "" {
		storeOpts = append(storeOpts, repository.WithSnapshotPath(cfg.SnapshotPath))
	}
	store, err := repository.NewMemStore(ctx, storeOpts...)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.Error(err))
		return
	}
	defer func() { _ = store.Close() }()

	if cfg.SeedOnStart {
		if err := seed.IfEmpty(ctx, store, log); err != nil {
			log.Error(ctx, "failed to seed store", logger.Error(err))
			return
		}
		if err := seed.Normalize(ctx, store); err != nil {
			log.Error(ctx, "failed to normalize store", logger.Error(err))
			return
		}
	}

	faultOpts := []fault.Option{
		fault.WithLatencyRange(
			time.Duration(cfg.LatencyMinMS)*time.Millisecond,
			time.Duration(cfg.LatencyMaxMS)*time.Millisecond,
		),
		fault.WithFailureRate(cfg.WriteFailureRate),
	}
	if cfg.FaultSeed != 0 {
		faultOpts = append(faultOpts, fault.WithSeed(cfg.FaultSeed))
	}

	svc := app.New(store,
		app.WithLogger(log),
		app.WithFaultPolicy(fault.New(faultOpts...)),
		app.WithMaxPageSize(cfg.MaxPageSize),
	)

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.Int("latency_min_ms", cfg.LatencyMinMS),
			logger.Int("latency_max_ms", cfg.LatencyMaxMS),
			logger.Float64("write_failure_rate", cfg.WriteFailureRate),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
