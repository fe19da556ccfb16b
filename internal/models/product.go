package models

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers on every surface of this system.
	decimal.MarshalJSONWithoutQuotes = true
}

// UncategorizedLabel stands in for a missing category wherever one is displayed
// or filtered on.
const UncategorizedLabel = "Uncategorized"

// Product is a catalogue entry as served by the sales API.
type Product struct {
	ID          int                 `json:"id"`
	Description *string             `json:"description"`
	Category    *string             `json:"category"`
	SalePrice   decimal.NullDecimal `json:"salePrice"`
	Image       *string             `json:"image"`
}

// CategoryLabel returns the product's category, or UncategorizedLabel when it has none.
func (p Product) CategoryLabel() string {
	if p.Category == nil || *p.Category == "" {
		return UncategorizedLabel
	}
	return *p.Category
}

func (p Product) DescriptionOr(fallback string) string {
	if p.Description == nil || *p.Description == "" {
		return fallback
	}
	return *p.Description
}

// Analytics are the per-product totals derived from its sales.
type Analytics struct {
	TotalQty     int             `json:"totalQty"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// EnrichedProduct is a Product carrying its sales totals.
type EnrichedProduct struct {
	Product
	TotalQty     int             `json:"totalQty"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

func Enrich(p Product, a Analytics) EnrichedProduct {
	return EnrichedProduct{
		Product:      p,
		TotalQty:     a.TotalQty,
		TotalRevenue: a.TotalRevenue,
	}
}

func (e EnrichedProduct) Analytics() Analytics {
	return Analytics{TotalQty: e.TotalQty, TotalRevenue: e.TotalRevenue}
}
