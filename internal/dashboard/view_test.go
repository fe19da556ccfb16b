package dashboard

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"product-dashboard/internal/models"
)

func strPtr(s string) *string { return &s }

func product(id int, desc, category *string) models.EnrichedProduct {
	return models.EnrichedProduct{Product: models.Product{ID: id, Description: desc, Category: category}}
}

func ids(products []models.EnrichedProduct) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func catalogue() []models.EnrichedProduct {
	return []models.EnrichedProduct{
		product(1, strPtr("Red Mug"), strPtr("Kitchen")),
		product(2, strPtr("Blue Mug"), strPtr("Kitchen")),
		product(3, strPtr("Garden Hose"), strPtr("Garden")),
		product(4, nil, strPtr("Garden")),
		product(5, strPtr("MUG warmer"), nil),
		product(6, strPtr("Straße sign"), strPtr("Outdoor")),
	}
}

func TestCategories(t *testing.T) {
	got := Categories(catalogue())
	want := []string{"All", "Kitchen", "Garden", models.UncategorizedLabel, "Outdoor"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"All"}, Categories(nil)); diff != "" {
		t.Errorf("Categories(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterBySearch(t *testing.T) {
	tests := []struct {
		search string
		want   []int
	}{
		{"", []int{1, 2, 3, 4, 5, 6}},
		{" ", []int{1, 2, 3, 5, 6}},
		{"   ", []int{}},
		{"mug ", []int{5}},
		{" mug", []int{1, 2}},
		{"mug", []int{1, 2, 5}},
		{"MUG", []int{1, 2, 5}},
		{"hose", []int{3}},
		{"strasse", []int{6}},
		{"nothing", []int{}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.search), func(t *testing.T) {
			got := ids(FilterBySearch(catalogue(), tt.search))
			for _, id := range got {
				if id == 4 {
					t.Errorf("FilterBySearch(%q) kept the product without a description", tt.search)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterBySearch(%q) mismatch (-want +got):\n%s", tt.search, diff)
			}
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	tests := []struct {
		category string
		want     []int
	}{
		{"All", []int{1, 2, 3, 4, 5, 6}},
		{"", []int{1, 2, 3, 4, 5, 6}},
		{"Garden", []int{3, 4}},
		{models.UncategorizedLabel, []int{5}},
		{"garden", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := ids(FilterByCategory(catalogue(), tt.category))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterByCategory(%q) mismatch (-want +got):\n%s", tt.category, diff)
			}
		})
	}
}

func TestFilter_Commutes(t *testing.T) {
	searches := []string{"", "mug", "o", "hose", "zzz"}
	categories := []string{"All", "Kitchen", "Garden", models.UncategorizedLabel}

	for _, s := range searches {
		for _, c := range categories {
			searchFirst := ids(FilterByCategory(FilterBySearch(catalogue(), s), c))
			categoryFirst := ids(FilterBySearch(FilterByCategory(catalogue(), c), s))
			if diff := cmp.Diff(searchFirst, categoryFirst); diff != "" {
				t.Errorf("search=%q category=%q not commutative (-search first +category first):\n%s", s, c, diff)
			}
		}
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 17)
	for i := range items {
		items[i] = i + 1
	}

	tests := []struct {
		name      string
		items     []int
		page      int
		wantPage  int
		wantPages int
		wantItems []int
		wantPrev  bool
		wantNext  bool
	}{
		{"first", items, 1, 1, 3, []int{1, 2, 3, 4, 5, 6, 7, 8}, false, true},
		{"last holds remainder", items, 3, 3, 3, []int{17}, true, false},
		{"beyond last clamps", items, 9, 3, 3, []int{17}, true, false},
		{"below first clamps", items, 0, 1, 3, []int{1, 2, 3, 4, 5, 6, 7, 8}, false, true},
		{"empty", []int{}, 4, 1, 0, []int{}, false, false},
		{"exact multiple", items[:16], 2, 2, 2, []int{9, 10, 11, 12, 13, 14, 15, 16}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.items, tt.page, 8)
			if got.Number != tt.wantPage {
				t.Errorf("Number = %d, want %d", got.Number, tt.wantPage)
			}
			if got.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, tt.wantPages)
			}
			if diff := cmp.Diff(tt.wantItems, got.Items); diff != "" {
				t.Errorf("Items mismatch (-want +got):\n%s", diff)
			}
			if got.HasPrev() != tt.wantPrev || got.HasNext() != tt.wantNext {
				t.Errorf("HasPrev/HasNext = %v/%v, want %v/%v", got.HasPrev(), got.HasNext(), tt.wantPrev, tt.wantNext)
			}
			if len(got.Numbers()) != tt.wantPages {
				t.Errorf("Numbers() = %v", got.Numbers())
			}
		})
	}
}

func TestBuildView(t *testing.T) {
	state := ViewState{Search: "mug", Category: "Kitchen", Page: 5}.Normalize(1)

	view := BuildView(catalogue(), state)

	if view.State.Page != 2 {
		t.Errorf("page should clamp to 2, got %d", view.State.Page)
	}
	if diff := cmp.Diff([]int{2}, ids(view.Page.Items)); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if view.Page.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", view.Page.TotalItems)
	}
	if len(view.Categories) != 5 {
		t.Errorf("categories should come from the unfiltered list, got %v", view.Categories)
	}
}

func TestBuildView_Empty(t *testing.T) {
	view := BuildView(nil, ViewState{}.Normalize(8))

	if len(view.Page.Items) != 0 || view.Page.TotalPages != 0 {
		t.Errorf("empty input should give an empty page, got %+v", view.Page)
	}
	if view.State.Category != AllCategories {
		t.Errorf("default category = %q", view.State.Category)
	}
}

func TestViewState_Normalize(t *testing.T) {
	got := ViewState{Page: -3, PageSize: 0}.Normalize(0)
	want := ViewState{Category: AllCategories, Page: 1, PageSize: DefaultPageSize}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}
