package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeRawSource struct {
	products    []byte
	productsErr error
	sales       map[int][]byte
	salesErr    error
	requested   []int
}

func (f *fakeRawSource) ProductsRaw(ctx context.Context) ([]byte, error) {
	return f.products, f.productsErr
}

func (f *fakeRawSource) ProductSalesRaw(ctx context.Context, productID int) ([]byte, error) {
	f.requested = append(f.requested, productID)
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	return f.sales[productID], nil
}

func decodeRelayError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestProxyHandlers_HandleProducts(t *testing.T) {
	upstream := []byte(`[{"id":1,"description":"Mug","salePrice":12.5}]`)
	h := NewProxyHandlers(&fakeRawSource{products: upstream}, testLogger())

	w := httptest.NewRecorder()
	h.HandleProducts(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.String() != string(upstream) {
		t.Errorf("body should pass through untouched, got %s", w.Body.String())
	}
}

func TestProxyHandlers_HandleProducts_UpstreamFailure(t *testing.T) {
	h := NewProxyHandlers(&fakeRawSource{productsErr: fmt.Errorf("connection refused")}, testLogger())

	w := httptest.NewRecorder()
	h.HandleProducts(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := decodeRelayError(t, w)
	if body["message"] != "Error fetching products" {
		t.Errorf("message = %q", body["message"])
	}
	if body["error"] != "connection refused" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestProxyHandlers_HandleProductSales(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		salesErr    error
		wantStatus  int
		wantMessage string
		wantForward bool
	}{
		{"valid id", "?Id=7", nil, http.StatusOK, "", true},
		{"missing id", "", nil, http.StatusBadRequest, "Missing product Id", false},
		{"empty id", "?Id=", nil, http.StatusBadRequest, "Missing product Id", false},
		{"zero id", "?Id=0", nil, http.StatusBadRequest, "Invalid product Id. Id must be greater than 0.", false},
		{"negative id", "?Id=-3", nil, http.StatusBadRequest, "Invalid product Id. Id must be greater than 0.", false},
		{"non numeric id", "?Id=abc", nil, http.StatusBadRequest, "Invalid product Id. Id must be greater than 0.", false},
		{"upstream failure", "?Id=7", fmt.Errorf("timeout"), http.StatusInternalServerError, "Error fetching product sales", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeRawSource{
				sales:    map[int][]byte{7: []byte(`[{"id":1,"productId":7,"saleQty":2}]`)},
				salesErr: tt.salesErr,
			}
			h := NewProxyHandlers(source, testLogger())

			w := httptest.NewRecorder()
			h.HandleProductSales(w, httptest.NewRequest(http.MethodGet, "/product-sales"+tt.query, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if forwarded := len(source.requested) > 0; forwarded != tt.wantForward {
				t.Errorf("forwarded = %v, want %v", forwarded, tt.wantForward)
			}
			if tt.wantMessage == "" {
				if w.Body.String() != `[{"id":1,"productId":7,"saleQty":2}]` {
					t.Errorf("unexpected body %s", w.Body.String())
				}
				return
			}

			body := decodeRelayError(t, w)
			if body["message"] != tt.wantMessage {
				t.Errorf("message = %q, want %q", body["message"], tt.wantMessage)
			}
			if tt.wantStatus == http.StatusBadRequest && body["error"] != "" {
				t.Errorf("validation failures should carry no error text, got %q", body["error"])
			}
		})
	}
}

func TestProxyHandlers_HandleHealth(t *testing.T) {
	h := NewProxyHandlers(&fakeRawSource{}, testLogger())

	w := httptest.NewRecorder()
	h.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != true {
		t.Errorf("unexpected body %v", body)
	}
}
