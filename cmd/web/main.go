package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"product-dashboard/internal/config"
	"product-dashboard/internal/dashboard"
	"product-dashboard/internal/middleware"
	"product-dashboard/internal/observability"
	"product-dashboard/internal/salesapi"
	"product-dashboard/internal/server"
	"product-dashboard/internal/services"
	"product-dashboard/internal/ui/templates"
)

const (
	renderTimeout  = 10 * time.Second
	sweepInterval  = time.Minute
	dashboardTitle = "Product Dashboard"
	cacheMaxAge    = "public, max-age=300"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheMaxAge)
	if err := templates.Dashboard(dashboardTitle).Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func newHandler(cfg *config.Config, logger *slog.Logger, views *dashboard.Store) http.Handler {
	client := salesapi.NewClient(cfg.Dashboard.ProxyURL, cfg.Dashboard.RequestTimeout, logger)
	analytics := services.NewAnalytics(client, logger, cfg.Dashboard.FetchConcurrency)

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	srv := server.NewServer(analytics, views, cfg.Dashboard.PageSize, logger, templateHandlers)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
	)

	return middlewareChain(srv)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting dashboard",
		"version", "1.0.0",
		"proxy_url", cfg.Dashboard.ProxyURL,
		"config", cfg,
	)

	views := dashboard.NewStore(cfg.Dashboard.ViewTTL)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go views.Run(sweepCtx, min(sweepInterval, cfg.Dashboard.ViewTTL))

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, logger, views),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server.ShutdownTimeout)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("stopping view sweeper", "open_views", views.Len())
		stopSweep()
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("dashboard stopped gracefully")
}
