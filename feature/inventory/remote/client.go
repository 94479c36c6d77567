package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Client is a typed client for the remote catalog/inventory API.
// All requests are bearer-token authenticated and scoped to one store.
type Client struct {
	httpClient *http.Client
	baseURL    string
	storeID    string
	token      string
	pageLimit  int
	logger     *zap.Logger
}

// NewClient creates a client from the configuration. Missing credentials are
// a fatal configuration error: no client is returned.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	storeID, token, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	pageLimit := cfg.PageLimit
	if pageLimit <= 0 {
		pageLimit = 100
	}

	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: timeoutDuration},
		baseURL:    cfg.BaseURL,
		storeID:    storeID,
		token:      token,
		pageLimit:  pageLimit,
		logger:     logger,
	}, nil
}

// PageLimit returns the configured catalog page size.
func (c *Client) PageLimit() int {
	return c.pageLimit
}

// FetchBySKU looks a product up by SKU, variants included.
// Any non-200 response is treated as not-found (nil, nil).
func (c *Client) FetchBySKU(ctx context.Context, sku string) (*Product, error) {
	q := url.Values{}
	q.Set("sku", sku)
	q.Set("showVariants", "true")

	resp, err := c.do(ctx, http.MethodGet, "/products", q, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var page ProductPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode product search for sku %s: %w", sku, err)
	}
	if len(page.Items) == 0 {
		return nil, nil
	}
	return &page.Items[0], nil
}

// FetchByID retrieves one product by its remote id, variants included.
// Any non-200 response yields (nil, nil).
func (c *Client) FetchByID(ctx context.Context, productID int64) (*Product, error) {
	q := url.Values{}
	q.Set("showVariants", "true")

	resp, err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(productID, 10), q, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var p Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode product %d: %w", productID, err)
	}
	return &p, nil
}

// CurrentQuantity reads the current remote stock of a product, or of one
// variant when combinationID is non-zero. An "unlimited" quantity reads as 0:
// unlimited stock cannot be deltaed meaningfully, so the engine treats it as
// empty rather than failing the record.
func (c *Client) CurrentQuantity(ctx context.Context, productID, combinationID int64) (float64, error) {
	path := "/products/" + strconv.FormatInt(productID, 10)
	if combinationID != 0 {
		path += "/combinations/" + strconv.FormatInt(combinationID, 10)
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quantity read failed: HTTP %d", resp.StatusCode)
	}

	var body quantityBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("quantity read failed: %w", err)
	}
	if body.Unlimited {
		return 0, nil
	}
	return body.Quantity, nil
}

// AdjustQuantity applies a relative stock adjustment to a product or variant.
// Only HTTP 200 counts as success; the response body of a failure is logged
// for diagnostics but the call is not retried.
func (c *Client) AdjustQuantity(ctx context.Context, productID, combinationID int64, delta float64) error {
	path := "/products/" + strconv.FormatInt(productID, 10)
	if combinationID != 0 {
		path += "/combinations/" + strconv.FormatInt(combinationID, 10)
	}
	path += "/inventory"

	payload, err := json.Marshal(adjustmentBody{QuantityDelta: delta})
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPut, path, nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn("Inventory adjustment rejected",
			zap.Int64("product_id", productID),
			zap.Int64("combination_id", combinationID),
			zap.Float64("delta", delta),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return fmt.Errorf("adjustment failed: HTTP %d", resp.StatusCode)
	}
	return nil
}

// ListPage fetches one catalog page, variants included.
func (c *Client) ListPage(ctx context.Context, limit, offset int) (*ProductPage, error) {
	q := url.Values{}
	q.Set("showVariants", "true")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	resp, err := c.do(ctx, http.MethodGet, "/products", q, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog page failed: HTTP %d", resp.StatusCode)
	}

	var page ProductPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("catalog page failed: %w", err)
	}
	return &page, nil
}

// EachProduct walks the entire catalog page by page, calling fn for every
// product until the reported total is reached.
func (c *Client) EachProduct(ctx context.Context, fn func(Product) error) error {
	offset := 0
	for {
		page, err := c.ListPage(ctx, c.pageLimit, offset)
		if err != nil {
			return err
		}
		for _, p := range page.Items {
			if err := fn(p); err != nil {
				return err
			}
		}

		offset += c.pageLimit
		if offset >= page.Total || len(page.Items) == 0 {
			return nil
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	u := c.baseURL + "/" + c.storeID + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote request %s %s failed: %w", method, path, err)
	}
	return resp, nil
}
