package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "cv-generator/internal/adapter/http"
	"cv-generator/internal/config"
	wiring "cv-generator/internal/infrastructure"
	"cv-generator/internal/usecase"
	infra "cv-generator/pkg/infrastructure"
	"cv-generator/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := cfg.Logging.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// infra setup
	store, closeStore, err := wiring.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	drafts, closeDrafts, err := wiring.OpenDrafts(ctx, cfg.Drafts, logger)
	if err != nil {
		log.Fatalf("drafts: %v", err)
	}
	defer closeDrafts()

	renderer := infra.NewChromedpRenderer(cfg.Render.ChromePath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)

	svc := usecase.NewService(store, drafts, renderer, logger)
	app := httpadapter.NewApp(httpadapter.AppConfig{
		MaxBodySize: cfg.Server.MaxBodySize,
		Gatherer:    reg,
	}, httpadapter.NewHandler(svc, logger))

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", cfg.Server.Addr())
	if err := app.Listen(cfg.Server.Addr()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
