package server

import (
	"log/slog"
	"net/http"

	"product-dashboard/internal/dashboard"
	"product-dashboard/internal/handlers"
)

// Server routes requests for one of the two binaries.
type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

// NewServer builds the dashboard server.
func NewServer(products handlers.ProductService, views *dashboard.Store, pageSize int, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
	}
	s.setupRoutes(
		handlers.NewAPIHandlers(products, views, pageSize, logger),
		handlers.NewSSEHandlers(products, views, pageSize, logger),
		templateHandlers,
	)
	return s
}

// NewProxyServer builds the relay in front of the sales API.
func NewProxyServer(source handlers.RawSource, logger *slog.Logger) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
	}
	s.setupProxyRoutes(handlers.NewProxyHandlers(source, logger))
	return s
}

func (s *Server) setupRoutes(api *handlers.APIHandlers, sse *handlers.SSEHandlers, templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", api.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", api.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/products", api.HandleProducts)
	s.mux.HandleFunc("GET /api/products/{id}/analytics", api.HandleProductAnalytics)
	s.mux.HandleFunc("GET /api/products/{id}/chart", api.HandleProductChart)
	s.mux.HandleFunc("GET /api/", api.HandleNotFound)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/products", sse.HandleProducts)
	s.mux.HandleFunc("GET /sse/products/{id}", sse.HandleProduct)
	s.mux.HandleFunc("GET /sse/close", sse.HandleClose)
}

func (s *Server) setupProxyRoutes(proxy *handlers.ProxyHandlers) {
	s.mux.HandleFunc("GET /products", proxy.HandleProducts)
	s.mux.HandleFunc("GET /product-sales", proxy.HandleProductSales)
	s.mux.HandleFunc("GET /health", proxy.HandleHealth)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
