package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"product-dashboard/internal/dashboard"
	"product-dashboard/internal/errors"
	"product-dashboard/internal/models"
	"product-dashboard/internal/observability"
)

// ProductService is what the dashboard needs from the aggregation layer.
type ProductService interface {
	FetchAllProductsWithAnalytics(ctx context.Context) ([]models.EnrichedProduct, error)
	FetchProductAnalytics(ctx context.Context, productID int) models.Analytics
	ProductSales(ctx context.Context, productID int) ([]models.Sale, error)
	Stats() map[string]any
}

type APIHandlers struct {
	products ProductService
	views    *dashboard.Store
	pageSize int
	logger   *slog.Logger
}

func NewAPIHandlers(products ProductService, views *dashboard.Store, pageSize int, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		products: products,
		views:    views,
		pageSize: pageSize,
		logger:   logger,
	}
}

var noStore = map[string]string{
	"Cache-Control": "no-store",
}

// HandleProducts loads the catalogue afresh and returns one filtered page.
func (h *APIHandlers) HandleProducts(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	state, appErr := viewStateFromQuery(r, h.pageSize)
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, requestID)
		return
	}

	products, err := h.products.FetchAllProductsWithAnalytics(r.Context())
	if err != nil {
		errors.WriteError(w, h.logger, errors.Upstream(err, msgLoadFailed), requestID)
		return
	}

	errors.WriteSuccessWithHeaders(w, dashboard.BuildView(products, state), noStore)
}

type productAnalyticsResponse struct {
	ProductID int `json:"productId"`
	models.Analytics
}

func (h *APIHandlers) HandleProductAnalytics(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	id, appErr := parseProductID(r.PathValue("id"))
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, requestID)
		return
	}

	analytics := h.products.FetchProductAnalytics(r.Context(), id)
	errors.WriteSuccessWithHeaders(w, productAnalyticsResponse{ProductID: id, Analytics: analytics}, noStore)
}

func (h *APIHandlers) HandleProductChart(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	id, appErr := parseProductID(r.PathValue("id"))
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, requestID)
		return
	}

	sales, err := h.products.ProductSales(r.Context(), id)
	if err != nil {
		errors.WriteError(w, h.logger, errors.Upstream(err, "Failed to load sales data."), requestID)
		return
	}

	errors.WriteSuccessWithHeaders(w, dashboard.BuildChart(sales), noStore)
}

// HandleNotFound answers unknown API paths in the JSON error envelope.
func (h *APIHandlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())
	errors.WriteError(w, h.logger, errors.NotFound("No API endpoint at "+r.URL.Path), requestID)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.products.Stats()
	if h.views != nil {
		stats["open_views"] = h.views.Len()
	}

	errors.WriteSuccess(w, stats)
}

func viewStateFromQuery(r *http.Request, pageSize int) (dashboard.ViewState, *errors.AppError) {
	q := r.URL.Query()
	state := dashboard.ViewState{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return dashboard.ViewState{}, errors.Validation("page must be an integer")
		}
		state.Page = page
	}

	return state.Normalize(pageSize), nil
}
