// Package dashboard holds the dashboard's derived state: everything shown on
// screen is a pure function of the loaded products and a ViewState.
package dashboard

import (
	"strings"

	"golang.org/x/text/cases"

	"product-dashboard/internal/models"
)

// AllCategories is the category option that disables category filtering.
const AllCategories = "All"

const DefaultPageSize = 8

// ViewState is what the user has chosen on screen.
type ViewState struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// Normalize fills in defaults for zero or invalid fields.
func (s ViewState) Normalize(defaultPageSize int) ViewState {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if s.Category == "" {
		s.Category = AllCategories
	}
	if s.PageSize <= 0 {
		s.PageSize = defaultPageSize
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// Categories lists AllCategories followed by each product category once, in
// first-seen order. Missing categories appear as models.UncategorizedLabel.
func Categories(products []models.EnrichedProduct) []string {
	seen := map[string]bool{AllCategories: true}
	out := []string{AllCategories}
	for _, p := range products {
		label := p.CategoryLabel()
		if seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}

// FilterBySearch keeps products whose description contains search,
// ignoring case. Only the empty string keeps everything; whitespace is part
// of the term. A product without a description never matches a non-empty
// search.
func FilterBySearch(products []models.EnrichedProduct, search string) []models.EnrichedProduct {
	if search == "" {
		return keepAll(products)
	}

	folder := cases.Fold()
	needle := folder.String(search)

	out := make([]models.EnrichedProduct, 0, len(products))
	for _, p := range products {
		if p.Description == nil {
			continue
		}
		if strings.Contains(folder.String(*p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByCategory keeps products in category; AllCategories keeps everything.
func FilterByCategory(products []models.EnrichedProduct, category string) []models.EnrichedProduct {
	if category == "" || category == AllCategories {
		return keepAll(products)
	}

	out := make([]models.EnrichedProduct, 0, len(products))
	for _, p := range products {
		if p.CategoryLabel() == category {
			out = append(out, p)
		}
	}
	return out
}

// Filter applies both filters. They commute, so the order is irrelevant.
func Filter(products []models.EnrichedProduct, search, category string) []models.EnrichedProduct {
	return FilterByCategory(FilterBySearch(products, search), category)
}

func keepAll(products []models.EnrichedProduct) []models.EnrichedProduct {
	out := make([]models.EnrichedProduct, len(products))
	copy(out, products)
	return out
}

// Page is one window of a paginated list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	Size       int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate returns the 1-indexed page of items. A page outside
// [1, TotalPages] is clamped to the nearest valid page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(items)
	totalPages := (total + size - 1) / size

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:      window,
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }

func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Numbers lists every page number, for pager buttons.
func (p Page[T]) Numbers() []int {
	nums := make([]int, p.TotalPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// View is everything the product grid renders.
type View struct {
	State      ViewState                    `json:"state"`
	Categories []string                     `json:"categories"`
	Page       Page[models.EnrichedProduct] `json:"page"`
}

// BuildView derives the grid for state from the loaded products. The
// returned State carries the clamped page number.
func BuildView(products []models.EnrichedProduct, state ViewState) View {
	filtered := Filter(products, state.Search, state.Category)
	page := Paginate(filtered, state.Page, state.PageSize)
	state.Page = page.Number

	return View{
		State:      state,
		Categories: Categories(products),
		Page:       page,
	}
}
