package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "heating_panel/docs"
	"heating_panel/internal/config"
	"heating_panel/internal/device"
	"heating_panel/internal/handlers"
	"heating_panel/internal/logger"
	"heating_panel/internal/metrics"
	"heating_panel/internal/repository"
	"heating_panel/internal/server"
	"heating_panel/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        Heating Panel API
// @version      1.0
// @description  Local control panel for the boiler controller: power, central heating and hot water.
// @BasePath     /
func main() {
	configPath := flag.String("config", "", "path to config file (default configs/config.yml)")
	flag.Parse()

	// the level is only known after loading config, so early failures
	// initialize the singleton at info
	if err := config.LoadDotEnv(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading .env", "err", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel())
	defer func() { _ = log.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalw("invalid timezone", "timezone", cfg.View.Timezone, "err", err)
	}

	// wire dependencies
	m := metrics.New()
	dev, err := device.NewClient(cfg.Device.BaseURL,
		device.WithHTTPClient(&http.Client{Timeout: cfg.Device.RequestTimeout}),
		device.WithRateLimit(cfg.Device.RateLimit, cfg.Device.RateBurst),
		device.WithMetrics(m),
	)
	if err != nil {
		log.Fatalw("invalid device url", "base_url", cfg.Device.BaseURL, "err", err)
	}

	repos, err := repository.NewRepository(cfg.Testing, cfg.History.Size)
	if err != nil {
		log.Fatalw("failed to init state", "err", err)
	}
	services := service.NewService(repos, dev, service.Options{
		StatusInterval: cfg.Poll.StatusInterval,
		TankInterval:   cfg.Poll.TankInterval,
		RequestTimeout: cfg.Device.RequestTimeout,
		Bind: service.BindOptions{
			Location:      loc,
			OffTimeLayout: cfg.View.OffTimeLayout,
			Durations:     cfg.View.Durations,
		},
		Metrics: m,
		Log:     log,
	})

	hub := handlers.NewHub(services.Monitoring, log)
	services.Poller.AddListener(hub)
	apiHandler := handlers.NewHandler(services, hub, m, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services.Poller.Start(ctx)
	log.Infow("panel started",
		"device", cfg.Device.BaseURL,
		"testing", cfg.Testing,
		"status_interval", cfg.Poll.StatusInterval,
		"tank_interval", cfg.Poll.TankInterval,
	)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, services.Poller, srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then stops polling and drains HTTP.
func waitForShutdown(cancel context.CancelFunc, poller service.Poller, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// no poll timer or in-flight fetch survives this
	cancel()
	poller.Stop()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
