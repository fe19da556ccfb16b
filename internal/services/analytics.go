package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"product-dashboard/internal/models"
)

const defaultMaxWorkers = 16

// SalesSource is the two-endpoint sales contract.
type SalesSource interface {
	Products(ctx context.Context) ([]models.Product, error)
	ProductSales(ctx context.Context, productID int) ([]models.Sale, error)
}

// LoadStats describes the most recent bulk load.
type LoadStats struct {
	Products    int           `json:"products"`
	FailedSales int64         `json:"failed_sales"`
	Duration    time.Duration `json:"duration"`
	CompletedAt time.Time     `json:"completed_at"`
}

// Analytics enriches products with their sales totals. It keeps no product
// data between calls; every load goes back to the source.
type Analytics struct {
	source     SalesSource
	logger     *slog.Logger
	maxWorkers int

	loads    atomic.Int64
	lastLoad atomic.Pointer[LoadStats]
}

func NewAnalytics(source SalesSource, logger *slog.Logger, maxWorkers int) *Analytics {
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{
		source:     source,
		logger:     logger,
		maxWorkers: maxWorkers,
	}
}

// FetchAllProductsWithAnalytics loads every product and its totals, in the
// order the source returned them. Only a failure to list products is
// returned; a product whose sales cannot be fetched gets zero totals.
func (a *Analytics) FetchAllProductsWithAnalytics(ctx context.Context) ([]models.EnrichedProduct, error) {
	start := time.Now()

	products, err := a.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	enriched := make([]models.EnrichedProduct, len(products))
	var failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(a.maxWorkers)

	for i, product := range products {
		g.Go(func() error {
			sales, err := a.source.ProductSales(ctx, product.ID)
			if err != nil {
				failed.Add(1)
				a.logger.Warn("fetch sales for product",
					"product_id", product.ID,
					"error", err,
				)
				enriched[i] = models.Enrich(product, zeroAnalytics())
				return nil
			}

			enriched[i] = models.Enrich(product, Summarize(sales, product.SalePrice))
			return nil
		})
	}

	// Tasks never return an error, so one failure cannot cancel its siblings.
	_ = g.Wait()

	stats := &LoadStats{
		Products:    len(enriched),
		FailedSales: failed.Load(),
		Duration:    time.Since(start),
		CompletedAt: time.Now(),
	}
	a.lastLoad.Store(stats)
	a.loads.Add(1)

	a.logger.Info("products enriched",
		"products", stats.Products,
		"failed_sales", stats.FailedSales,
		"duration", stats.Duration,
	)

	return enriched, nil
}

// FetchProductAnalytics returns the totals of one product. Any failure is
// logged and reported as zero totals. There is no product price to fall back
// on here, so sales without a price count for nothing.
func (a *Analytics) FetchProductAnalytics(ctx context.Context, productID int) models.Analytics {
	sales, err := a.source.ProductSales(ctx, productID)
	if err != nil {
		a.logger.Warn("fetch analytics for product",
			"product_id", productID,
			"error", err,
		)
		return zeroAnalytics()
	}
	return Summarize(sales, decimal.NullDecimal{})
}

// ProductSales returns the raw sales of one product.
func (a *Analytics) ProductSales(ctx context.Context, productID int) ([]models.Sale, error) {
	sales, err := a.source.ProductSales(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("fetch sales for product %d: %w", productID, err)
	}
	return sales, nil
}

// Summarize reduces sales to their totals. A sale without its own price is
// valued at productPrice, or at zero when that is absent too.
func Summarize(sales []models.Sale, productPrice decimal.NullDecimal) models.Analytics {
	result := zeroAnalytics()

	for _, sale := range sales {
		price := decimal.Zero
		switch {
		case sale.SalePrice.Valid:
			price = sale.SalePrice.Decimal
		case productPrice.Valid:
			price = productPrice.Decimal
		}

		result.TotalQty += sale.SaleQty
		result.TotalRevenue = result.TotalRevenue.Add(price.Mul(decimal.NewFromInt(int64(sale.SaleQty))))
	}

	return result
}

func zeroAnalytics() models.Analytics {
	return models.Analytics{TotalRevenue: decimal.Zero}
}

// Stats reports on the bulk loads served so far.
func (a *Analytics) Stats() map[string]any {
	stats := map[string]any{
		"loads":       a.loads.Load(),
		"max_workers": a.maxWorkers,
	}
	if last := a.lastLoad.Load(); last != nil {
		stats["last_load"] = last
	}
	return stats
}
