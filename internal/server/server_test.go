package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"product-dashboard/internal/dashboard"
	"product-dashboard/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubProducts struct{}

func (stubProducts) FetchAllProductsWithAnalytics(ctx context.Context) ([]models.EnrichedProduct, error) {
	desc := "Mug"
	return []models.EnrichedProduct{{Product: models.Product{ID: 1, Description: &desc}, TotalRevenue: decimal.Zero}}, nil
}

func (stubProducts) FetchProductAnalytics(ctx context.Context, productID int) models.Analytics {
	return models.Analytics{TotalRevenue: decimal.Zero}
}

func (stubProducts) ProductSales(ctx context.Context, productID int) ([]models.Sale, error) {
	return []models.Sale{}, nil
}

func (stubProducts) Stats() map[string]any { return map[string]any{} }

type stubRaw struct{}

func (stubRaw) ProductsRaw(ctx context.Context) ([]byte, error) { return []byte(`[]`), nil }

func (stubRaw) ProductSalesRaw(ctx context.Context, productID int) ([]byte, error) {
	return []byte(`[]`), nil
}

func newTestServer() *Server {
	templateHandlers := &TemplateHandlers{Dashboard: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}}
	return NewServer(stubProducts{}, dashboard.NewStore(time.Minute), 8, testLogger(), templateHandlers)
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/", http.StatusOK},
		{"GET", "/health", http.StatusOK},
		{"GET", "/admin/stats", http.StatusOK},
		{"GET", "/api/products", http.StatusOK},
		{"GET", "/api/products/1/analytics", http.StatusOK},
		{"GET", "/api/products/1/chart", http.StatusOK},
		{"GET", "/sse/products", http.StatusOK},
		{"GET", "/sse/products/1", http.StatusOK},
		{"GET", "/sse/close", http.StatusOK},
		{"GET", "/unknown", http.StatusNotFound},
		{"GET", "/api/unknown", http.StatusNotFound},
		{"POST", "/api/products", http.StatusMethodNotAllowed},
		{"PUT", "/", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestProxyServer_Routes(t *testing.T) {
	srv := NewProxyServer(stubRaw{}, testLogger())

	tests := []struct {
		path   string
		status int
	}{
		{"/products", http.StatusOK},
		{"/product-sales?Id=3", http.StatusOK},
		{"/product-sales", http.StatusBadRequest},
		{"/health", http.StatusOK},
		{"/sse/products", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status != http.StatusNotFound {
				var body any
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
					t.Errorf("invalid json: %v", err)
				}
			}
		})
	}
}

func TestGracefulServer_Serve(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	httpServer := &http.Server{Handler: newTestServer()}
	gs := NewGracefulServer(httpServer, testLogger(), 5*time.Second)

	var ran atomic.Int32
	gs.RegisterShutdownHook(func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	gs.RegisterShutdownHook(func(ctx context.Context) error {
		ran.Add(1)
		return fmt.Errorf("flush failed")
	})

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- gs.Serve(ctx, func() error { return httpServer.Serve(ln) })
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("server should be reachable: %v", err)
	}
	resp.Body.Close()

	cancel()

	select {
	case err := <-result:
		if err == nil || !strings.Contains(err.Error(), "flush failed") {
			t.Errorf("expected the failing hook to be reported, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if ran.Load() != 2 {
		t.Errorf("expected both hooks to run, got %d", ran.Load())
	}
}

func TestGracefulServer_ListenerFailure(t *testing.T) {
	gs := NewGracefulServer(&http.Server{}, testLogger(), time.Second)

	err := gs.Serve(context.Background(), func() error { return fmt.Errorf("address in use") })
	if err == nil || !strings.Contains(err.Error(), "address in use") {
		t.Errorf("expected listener error, got %v", err)
	}

	err = gs.Serve(context.Background(), func() error { return http.ErrServerClosed })
	if err != nil {
		t.Errorf("ErrServerClosed should not be an error, got %v", err)
	}
}
