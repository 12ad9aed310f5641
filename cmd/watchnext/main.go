package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"

	"github.com/marco/watchNext/internal/catalog"
	"github.com/marco/watchNext/internal/config"
	"github.com/marco/watchNext/internal/discovery"
	"github.com/marco/watchNext/internal/logging"
	"github.com/marco/watchNext/internal/metrics"
)

var (
	configPath  = flag.String("config", "", "Path to configuration file (optional)")
	envFile     = flag.String("env-file", ".env", "Path to a .env file with TMDB_API_KEY")
	verbose     = flag.Bool("verbose", false, "Show detailed logging")
	logFormat   = flag.String("log-format", "", "Log format: console or json (overrides config)")
	metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: watchnext [flags] [command]\n\n")
	fmt.Fprintf(out, "Commands:\n")
	fmt.Fprintf(out, "  repl                   interactive session (default)\n")
	fmt.Fprintf(out, "  trending               this week's trending movies and TV\n")
	fmt.Fprintf(out, "  search <query>         search movies\n")
	fmt.Fprintf(out, "  recommend              discover titles matching the configured preferences\n")
	fmt.Fprintf(out, "  details <movie|tv> <id> show one title\n")
	fmt.Fprintf(out, "  watch <prefs.yaml>     re-run recommendations whenever the file changes\n\n")
	fmt.Fprintf(out, "Flags:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	fs := afero.NewOsFs()

	if err := config.LoadDotEnv(fs, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(fs, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	if *verbose {
		logCfg.Level = "debug"
	}
	if *logFormat != "" {
		logCfg.Format = *logFormat
	}
	logCloser := logging.Setup(logCfg)
	defer logCloser.Close()

	if *configPath != "" {
		slog.Debug("configuration loaded", "path", *configPath, "language", cfg.TMDB.Language)
	}
	if !cfg.HasAPIKey() {
		slog.Warn("no TMDB API key configured; requests will fail until TMDB_API_KEY is set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(reg)

	if *metricsAddr != "" {
		srv := startMetricsServer(*metricsAddr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("metrics server shutdown failed", "error", err)
			}
		}()
	}

	catalogCfg := cfg.CatalogConfig()
	catalogCfg.Metrics = recorder
	client := catalog.NewClientWithConfig(catalogCfg)

	orchestrator := discovery.New(client,
		discovery.WithStaleResponses(cfg.Discovery.AllowStaleResponses),
		discovery.WithMetrics(recorder),
		discovery.OnChange(func(s discovery.ViewState) {
			slog.Debug("view state changed",
				"view", s.CurrentView,
				"items", len(s.Items),
				"loading", s.IsLoading,
				"generation", s.Generation,
			)
		}),
	)

	a := &app{
		cfg:   cfg,
		fs:    fs,
		orch:  orchestrator,
		prefs: cfg.Preferences.Clone(),
		in:    os.Stdin,
		out:   os.Stdout,
	}

	if err := a.run(ctx, flag.Args()); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", discovery.Describe(err))
		}
		logCloser.Close()
		os.Exit(1)
	}
}

// startMetricsServer serves /metrics in the background
func startMetricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}
