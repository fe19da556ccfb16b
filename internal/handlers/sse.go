package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/starfederation/datastar-go/datastar"

	"product-dashboard/internal/dashboard"
	"product-dashboard/internal/models"
	"product-dashboard/internal/observability"
)

const (
	msgLoadFailed     = "Failed to load product data."
	msgNoSales        = "No sales data available for this product."
	msgProductMissing = "This product is no longer available."

	unnamedProduct   = "Unnamed Product"
	cardPlaceholder  = "https://via.placeholder.com/240x150"
	modalPlaceholder = "https://via.placeholder.com/400"
)

var categorySelectTemplate = template.Must(template.New("categorySelect").Parse(`
<select id="category-filter" class="category-filter" data-bind:category data-on:change="$page = 1; @get('/sse/products')">
{{range .Categories}}<option value="{{.}}"{{if eq . $.Selected}} selected{{end}}>{{.}}</option>
{{end}}</select>`))

var productGridTemplate = template.Must(template.New("productGrid").Parse(`
<div id="product-grid" class="product-grid">
{{range .}}<div class="product-card" data-on:click="@get('/sse/products/{{.ID}}')">
<div class="image-container"><img src="{{.Image}}" alt="{{.Title}}" class="product-image" loading="lazy"></div>
<div class="product-info">
<h2 class="product-title">{{.Title}}</h2>
<span class="product-category">{{.Category}}</span>
<p class="unit-price">Unit Price: {{.UnitPrice}}</p>
</div>
</div>
{{else}}<p class="empty-state">No products match your search.</p>
{{end}}</div>`))

var pagerTemplate = template.Must(template.New("pager").Parse(`
<nav id="pager" class="pagination">{{if gt .TotalPages 1}}
<button {{if not .HasPrev}}disabled{{end}} data-on:click="$page = {{.Prev}}; @get('/sse/products')">&laquo; Prev</button>
{{range .Numbers}}<button class="{{if eq . $.Number}}active{{end}}" data-on:click="$page = {{.}}; @get('/sse/products')">{{.}}</button>
{{end}}<button {{if not .HasNext}}disabled{{end}} data-on:click="$page = {{.Next}}; @get('/sse/products')">Next &raquo;</button>
{{end}}</nav>`))

var loadErrorTemplate = template.Must(template.New("loadError").Parse(`
<div id="product-grid" class="product-grid"><div class="error">{{.}}</div></div>`))

var modalTemplate = template.Must(template.New("modal").Parse(`
<div id="product-modal" class="modal" data-on:click="evt.target === el && @get('/sse/close')">
<div class="modal-content">
<span class="close" data-on:click="@get('/sse/close')">&times;</span>
<div class="modal-body">
<img src="{{.Image}}" alt="{{.Title}}" class="modal-image">
<div class="modal-details">
<h2>{{.Title}}</h2>
<p class="category">{{.Category}}</p>
<div class="analytics-cards">
<div class="analytics-card"><h3>Unit Price</h3><p>{{.UnitPrice}}</p></div>
<div class="analytics-card"><h3>Total Sold</h3><p>{{.TotalQty}}</p></div>
<div class="analytics-card"><h3>Total Revenue</h3><p>{{.TotalRevenue}}</p></div>
</div>
<div id="sales-chart" class="chart-container"><p>Loading chart...</p></div>
</div>
</div>
</div>
</div>`))

var chartTemplate = template.Must(template.New("chart").Parse(`
<div id="sales-chart" class="chart-container">{{if .HasSales}}<canvas id="sales-chart-canvas" data-effect="window.drawSalesChart && drawSalesChart(el, $chart)"></canvas>{{else}}<p>{{.Empty}}</p>{{end}}</div>`))

const emptyModal = `<div id="product-modal"></div>`

// dashboardSignals are the client signals every dashboard request carries.
type dashboardSignals struct {
	ViewID   string `json:"viewId"`
	Search   string `json:"search"`
	Category string `json:"category"`
	Page     int    `json:"page"`
}

type productCard struct {
	ID           int
	Title        string
	Category     string
	Image        string
	UnitPrice    string
	TotalQty     int
	TotalRevenue string
}

func newProductCard(p models.EnrichedProduct, placeholder string) productCard {
	image := placeholder
	if p.Image != nil && strings.TrimSpace(*p.Image) != "" {
		image = *p.Image
	}
	return productCard{
		ID:           p.ID,
		Title:        p.DescriptionOr(unnamedProduct),
		Category:     p.CategoryLabel(),
		Image:        image,
		UnitPrice:    formatRand(p.SalePrice.Decimal),
		TotalQty:     p.TotalQty,
		TotalRevenue: formatRand(p.TotalRevenue),
	}
}

// formatRand renders an amount in rand; an absent price is a zero decimal.
func formatRand(d decimal.Decimal) string {
	return "R" + d.StringFixed(2)
}

type pagerData struct {
	Number     int
	TotalPages int
	Numbers    []int
	HasPrev    bool
	HasNext    bool
	Prev       int
	Next       int
}

func newPagerData[T any](p dashboard.Page[T]) pagerData {
	return pagerData{
		Number:     p.Number,
		TotalPages: p.TotalPages,
		Numbers:    p.Numbers(),
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
		Prev:       max(p.Number-1, 1),
		Next:       min(p.Number+1, max(p.TotalPages, 1)),
	}
}

type SSEHandlers struct {
	products ProductService
	views    *dashboard.Store
	pageSize int
	logger   *slog.Logger
}

func NewSSEHandlers(products ProductService, views *dashboard.Store, pageSize int, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		products: products,
		views:    views,
		pageSize: pageSize,
		logger:   logger,
	}
}

func (h *SSEHandlers) readSignals(r *http.Request) dashboardSignals {
	var signals dashboardSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.logger.Warn("read dashboard signals",
			"error", err,
			"request_id", observability.GetRequestID(r.Context()),
		)
		return dashboardSignals{}
	}
	return signals
}

// loadProducts returns the products of viewID, fetching them and opening a
// new view when viewID is unknown or has expired.
func (h *SSEHandlers) loadProducts(r *http.Request, viewID string) ([]models.EnrichedProduct, string, error) {
	if products, ok := h.views.Get(viewID); ok {
		return products, viewID, nil
	}

	products, err := h.products.FetchAllProductsWithAnalytics(r.Context())
	if err != nil {
		return nil, "", err
	}
	return products, h.views.Put(products), nil
}

func (h *SSEHandlers) renderCategorySelect(categories []string, selected string) (string, error) {
	var buf strings.Builder
	err := categorySelectTemplate.Execute(&buf, struct {
		Categories []string
		Selected   string
	}{categories, selected})
	return buf.String(), err
}

func (h *SSEHandlers) renderProductGrid(products []models.EnrichedProduct) (string, error) {
	cards := make([]productCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, newProductCard(p, cardPlaceholder))
	}

	var buf strings.Builder
	err := productGridTemplate.Execute(&buf, cards)
	return buf.String(), err
}

func (h *SSEHandlers) renderPager(p pagerData) (string, error) {
	var buf strings.Builder
	err := pagerTemplate.Execute(&buf, p)
	return buf.String(), err
}

func (h *SSEHandlers) renderModal(p models.EnrichedProduct) (string, error) {
	var buf strings.Builder
	err := modalTemplate.Execute(&buf, newProductCard(p, modalPlaceholder))
	return buf.String(), err
}

func (h *SSEHandlers) renderChart(hasSales bool) (string, error) {
	var buf strings.Builder
	err := chartTemplate.Execute(&buf, struct {
		HasSales bool
		Empty    string
	}{hasSales, msgNoSales})
	return buf.String(), err
}

// HandleProducts renders the category filter, product grid and pager for the
// current signals. The first request of a view fetches the catalogue; later
// ones reuse that view's fetch.
func (h *SSEHandlers) HandleProducts(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())
	signals := h.readSignals(r)

	sse := datastar.NewSSE(w, r)

	products, viewID, err := h.loadProducts(r, signals.ViewID)
	if err != nil {
		h.logger.Error("load products",
			"error", err,
			"request_id", requestID,
		)
		h.patchLoadError(sse)
		return
	}

	if !h.patchView(sse, products, viewID, signals, requestID) {
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// patchView renders the filtered page for signals and pushes the category
// select, grid and pager along with the view signals.
func (h *SSEHandlers) patchView(sse *datastar.ServerSentEventGenerator, products []models.EnrichedProduct, viewID string, signals dashboardSignals, requestID string) bool {
	state := dashboard.ViewState{
		Search:   signals.Search,
		Category: signals.Category,
		Page:     signals.Page,
	}.Normalize(h.pageSize)
	view := dashboard.BuildView(products, state)

	selectHTML, err := h.renderCategorySelect(view.Categories, view.State.Category)
	if err != nil {
		h.logger.Error("render category select", "error", err, "request_id", requestID)
		return false
	}
	gridHTML, err := h.renderProductGrid(view.Page.Items)
	if err != nil {
		h.logger.Error("render product grid", "error", err, "request_id", requestID)
		return false
	}
	pagerHTML, err := h.renderPager(newPagerData(view.Page))
	if err != nil {
		h.logger.Error("render pager", "error", err, "request_id", requestID)
		return false
	}

	sse.MarshalAndPatchSignals(map[string]any{
		"viewId":   viewID,
		"category": view.State.Category,
		"page":     view.State.Page,
	})
	sse.PatchElements(selectHTML)
	sse.PatchElements(gridHTML)
	sse.PatchElements(pagerHTML)
	return true
}

func (h *SSEHandlers) patchLoadError(sse *datastar.ServerSentEventGenerator) {
	var buf strings.Builder
	if err := loadErrorTemplate.Execute(&buf, msgLoadFailed); err != nil {
		h.logger.Error("render load error", "error", err)
		return
	}
	sse.PatchElements(buf.String())
	sse.PatchElements(`<nav id="pager" class="pagination"></nav>`)
}

// HandleProduct opens the detail modal for one product and then streams its
// sales chart. When the client's view has expired the catalogue is reloaded
// and the grid re-rendered first. A failed sales fetch leaves the grid alone
// and shows an empty chart.
func (h *SSEHandlers) HandleProduct(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	id, appErr := parseProductID(r.PathValue("id"))
	if appErr != nil {
		http.Error(w, appErr.Message, appErr.StatusCode)
		return
	}

	signals := h.readSignals(r)
	sse := datastar.NewSSE(w, r)

	product, ok := h.views.Find(signals.ViewID, id)
	if !ok {
		products, viewID, err := h.loadProducts(r, "")
		if err != nil {
			h.logger.Error("load products for detail",
				"product_id", id,
				"error", err,
				"request_id", requestID,
			)
			h.patchLoadError(sse)
			return
		}
		// The old view is gone, so the grid must be rebuilt against the new one.
		if !h.patchView(sse, products, viewID, signals, requestID) {
			return
		}
		if product, ok = findProduct(products, id); !ok {
			h.logger.Warn("product not found", "product_id", id, "request_id", requestID)
			sse.PatchElements(`<div id="product-modal" class="modal-toast">` + template.HTMLEscapeString(msgProductMissing) + `</div>`)
			return
		}
	}

	modalHTML, err := h.renderModal(product)
	if err != nil {
		h.logger.Error("render modal", "error", err, "request_id", requestID)
		return
	}
	sse.MarshalAndPatchSignals(map[string]any{"chart": models.ChartSeries{Labels: []string{}, Values: []int{}}})
	sse.PatchElements(modalHTML)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	sales, err := h.products.ProductSales(r.Context(), id)
	if err != nil {
		h.logger.Warn("fetch sales for chart",
			"product_id", id,
			"error", err,
			"request_id", requestID,
		)
	}

	chart := dashboard.BuildChart(sales)
	chartHTML, err := h.renderChart(len(chart.Values) > 0)
	if err != nil {
		h.logger.Error("render chart", "error", err, "request_id", requestID)
		return
	}

	sse.MarshalAndPatchSignals(map[string]any{"chart": chart})
	sse.PatchElements(chartHTML)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleClose removes the detail modal.
func (h *SSEHandlers) HandleClose(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	sse.PatchElements(emptyModal)
	sse.MarshalAndPatchSignals(map[string]any{"chart": models.ChartSeries{Labels: []string{}, Values: []int{}}})

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func findProduct(products []models.EnrichedProduct, id int) (models.EnrichedProduct, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.EnrichedProduct{}, false
}
