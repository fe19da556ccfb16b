package main

import (
	"log/slog"
	"net/http"
	"os"

	"product-dashboard/internal/config"
	"product-dashboard/internal/middleware"
	"product-dashboard/internal/observability"
	"product-dashboard/internal/salesapi"
	"product-dashboard/internal/server"
)

func newHandler(cfg *config.Config, logger *slog.Logger) http.Handler {
	client := salesapi.NewClient(cfg.Proxy.UpstreamURL, cfg.Proxy.UpstreamTimeout, logger)
	srv := server.NewProxyServer(client, logger)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
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

	logger.Info("starting proxy",
		"version", "1.0.0",
		"upstream", cfg.Proxy.UpstreamURL,
		"upstream_timeout", cfg.Proxy.UpstreamTimeout,
	)

	httpServer := &http.Server{
		Addr:         cfg.ProxyAddress(),
		Handler:      newHandler(cfg, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server.ShutdownTimeout)

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("proxy failed", "error", err)
		os.Exit(1)
	}

	logger.Info("proxy stopped gracefully")
}
