// Package salesapi talks to any server speaking the two-endpoint sales
// contract: the external sales API itself, or the relay in front of it.
package salesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"product-dashboard/internal/models"
	"product-dashboard/internal/observability"
)

const (
	productsPath     = "/products"
	productSalesPath = "/product-sales"

	// maxBodyBytes bounds a single upstream response.
	maxBodyBytes = 32 << 20
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.URL, e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout}, logger)
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// ProductsRaw returns the /products body unchanged once it has been checked
// to be a JSON array. A null body comes back as [].
func (c *Client) ProductsRaw(ctx context.Context) ([]byte, error) {
	return c.get(ctx, productsPath, nil)
}

// ProductSalesRaw returns the /product-sales body for one product unchanged
// once it has been checked to be a JSON array.
func (c *Client) ProductSalesRaw(ctx context.Context, productID int) ([]byte, error) {
	q := url.Values{}
	q.Set("Id", strconv.Itoa(productID))
	return c.get(ctx, productSalesPath, q)
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	body, err := c.ProductsRaw(ctx)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (c *Client) ProductSales(ctx context.Context, productID int) ([]models.Sale, error) {
	body, err := c.ProductSalesRaw(ctx, productID)
	if err != nil {
		return nil, err
	}

	var sales []models.Sale
	if err := json.Unmarshal(body, &sales); err != nil {
		return nil, fmt.Errorf("decode sales for product %d: %w", productID, err)
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	return sales, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, span := observability.StartSpan(ctx, "GET "+path)
	span.SetTag("http.url", target)
	defer func() {
		span.Finish()
		c.logger.Debug("upstream call", "span", span)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID := observability.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	span.SetTag("http.status_code", strconv.Itoa(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		err := &StatusError{StatusCode: resp.StatusCode, URL: target}
		span.SetError(err)
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("read %s body: %w", path, err)
	}

	if err := checkArray(body); err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("malformed %s body: %w", path, err)
	}
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return []byte("[]"), nil
	}

	return body, nil
}

// checkArray accepts a JSON array (or null, which the API uses for "none").
func checkArray(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return fmt.Errorf("invalid json")
	}
	if bytes.Equal(trimmed, []byte("null")) || (len(trimmed) > 0 && trimmed[0] == '[') {
		return nil
	}
	return fmt.Errorf("expected a json array")
}
