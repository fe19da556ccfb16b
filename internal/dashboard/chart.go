package dashboard

import (
	"slices"

	"product-dashboard/internal/models"
)

const (
	chartLabelLayout = "02 Jan"
	undatedLabel     = "n/a"
)

// BuildChart turns a product's sales into a units-sold series ordered by
// sale date. Undated sales come first, keeping their original order. Labels
// use each timestamp's own offset, so a sale keeps its local calendar day.
func BuildChart(sales []models.Sale) models.ChartSeries {
	sorted := slices.Clone(sales)
	slices.SortStableFunc(sorted, func(a, b models.Sale) int {
		switch {
		case a.SaleDate == nil && b.SaleDate == nil:
			return 0
		case a.SaleDate == nil:
			return -1
		case b.SaleDate == nil:
			return 1
		}
		return a.SaleDate.Time.Compare(b.SaleDate.Time)
	})

	series := models.ChartSeries{
		Labels: make([]string, 0, len(sorted)),
		Values: make([]int, 0, len(sorted)),
	}
	for _, s := range sorted {
		label := undatedLabel
		if s.SaleDate != nil {
			label = s.SaleDate.Time.Format(chartLabelLayout)
		}
		series.Labels = append(series.Labels, label)
		series.Values = append(series.Values, s.SaleQty)
	}
	return series
}
