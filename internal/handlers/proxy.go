package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"product-dashboard/internal/errors"
	"product-dashboard/internal/observability"
)

const (
	msgFetchProducts     = "Error fetching products"
	msgFetchProductSales = "Error fetching product sales"
	msgMissingProductID  = "Missing product Id"
	msgInvalidProductID  = "Invalid product Id. Id must be greater than 0."
)

// RawSource returns upstream response bodies untouched.
type RawSource interface {
	ProductsRaw(ctx context.Context) ([]byte, error)
	ProductSalesRaw(ctx context.Context, productID int) ([]byte, error)
}

// ProxyHandlers relay the sales API to browsers that cannot reach it directly.
type ProxyHandlers struct {
	source RawSource
	logger *slog.Logger
}

func NewProxyHandlers(source RawSource, logger *slog.Logger) *ProxyHandlers {
	return &ProxyHandlers{
		source: source,
		logger: logger,
	}
}

func (h *ProxyHandlers) HandleProducts(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	body, err := h.source.ProductsRaw(r.Context())
	if err != nil {
		errors.WriteRelayError(w, h.logger, errors.Upstream(err, msgFetchProducts), requestID)
		return
	}

	writeRaw(w, body)
}

func (h *ProxyHandlers) HandleProductSales(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	id, appErr := parseProductID(r.URL.Query().Get("Id"))
	if appErr != nil {
		errors.WriteRelayError(w, h.logger, appErr, requestID)
		return
	}

	body, err := h.source.ProductSalesRaw(r.Context(), id)
	if err != nil {
		errors.WriteRelayError(w, h.logger, errors.Upstream(err, msgFetchProductSales), requestID)
		return
	}

	writeRaw(w, body)
}

func (h *ProxyHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"service":   "proxy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// parseProductID accepts only positive integers.
func parseProductID(raw string) (int, *errors.AppError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.BadRequest(msgMissingProductID)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest(msgInvalidProductID)
	}
	return id, nil
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
