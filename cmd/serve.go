package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/UnknownOlympus/hydrosite/internal/metrics"
	"github.com/UnknownOlympus/hydrosite/internal/models"
	"github.com/UnknownOlympus/hydrosite/internal/repository"
	"github.com/UnknownOlympus/hydrosite/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// pinger is the part of the database pool used by health checks.
type pinger interface {
	Ping(ctx context.Context) error
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the site enrichment service with its monitoring server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	unit, err := models.ParseUnit(a.cfg.Elevation.Units)
	if err != nil {
		return fmt.Errorf("invalid elevation units: %w", err)
	}

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(ctx,
		a.cfg.Database.Host, a.cfg.Database.Port, a.cfg.Database.User, a.cfg.Database.Password, a.cfg.Database.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, a.log)

	elevationProvider, err := newElevationProvider(a.cfg.Elevation, a.log, appMetrics)
	if err != nil {
		return err
	}
	a.log.InfoContext(ctx, "Elevation provider initialized", "type", a.cfg.Elevation.Provider)

	watershedClient, err := newWatershedClient(a.cfg.Watershed, a.log)
	if err != nil {
		return err
	}

	enrichment := service.NewEnrichmentService(
		a.log,
		repo,
		elevationProvider,
		watershedClient,
		newCensusClient(a.cfg.Census, a.log),
		unit,
		appMetrics,
		a.cfg.Workers,
		a.cfg.Interval,
	)

	a.log.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	go startMonitoringServer(ctx, a.log, reg, dtb, a.cfg.Port)

	// Blocks until the context is canceled (e.g., by Ctrl+C) and the current batch is finished.
	runUntilStopped(ctx, a.log, enrichment.Run)

	a.log.InfoContext(ctx, "Application stopped gracefully.")

	return nil
}

// runUntilStopped runs run in its own goroutine and returns once ctx is
// canceled and run has returned.
func runUntilStopped(ctx context.Context, log *slog.Logger, run func(context.Context)) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		run(ctx)
	}()

	<-ctx.Done()
	log.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	wg.Wait()
}

// newMonitoringMux serves /healthz, backed by a database ping, and /metrics from reg.
func newMonitoringMux(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, dtb pinger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return mux
}

// startMonitoringServer listens on port until ctx is canceled.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb pinger,
	port int,
) {
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      newMonitoringMux(ctx, log, reg, dtb),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(readTimeout)*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}
