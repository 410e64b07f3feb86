package motor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pb33f/glam/motor/model"
)

const (
	// DefaultBaseURL is the public makeup catalog endpoint, without the ".json" suffix.
	DefaultBaseURL = "https://makeup-api.herokuapp.com/api/v1/products"

	// MaxCatalogBytes caps a catalog response body.
	MaxCatalogBytes = 64 * 1024 * 1024

	// MaxImageBytes caps a single image download.
	MaxImageBytes = 4 * 1024 * 1024

	defaultUserAgent = "glam/dev"
)

// CatalogClient is the boundary to the remote catalog API
type CatalogClient interface {
	// FetchAll retrieves the complete, unfiltered catalog
	FetchAll(ctx context.Context) ([]model.Product, error)

	// FetchFiltered retrieves the catalog filtered server-side by brand and/or product type.
	// Empty values are omitted from the query entirely.
	FetchFiltered(ctx context.Context, brand, productType string) ([]model.Product, error)

	// FetchImageBytes downloads raw image bytes. It never fails loudly: any problem,
	// including an empty url, reports false.
	FetchImageBytes(ctx context.Context, imageURL string) ([]byte, bool)
}

// ClientOptions configures an HTTPCatalogClient
type ClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string
	Logger     *slog.Logger
	Interner   *StringTable
}

func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		BaseURL:   DefaultBaseURL,
		Timeout:   30 * time.Second,
		UserAgent: defaultUserAgent,
	}
}

// HTTPCatalogClient talks to the catalog API over plain HTTP GETs. It never retries.
type HTTPCatalogClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	interner   *StringTable
}

var _ CatalogClient = (*HTTPCatalogClient)(nil)

func NewCatalogClient(opts ClientOptions) *HTTPCatalogClient {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(strings.TrimRight(baseURL, "/"), ".json")

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultClientOptions().Timeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interner := opts.Interner
	if interner == nil {
		interner = NewStringTable()
	}

	return &HTTPCatalogClient{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     logger,
		interner:   interner,
	}
}

// CatalogURL builds the request URL. Brand comes first; product_type uses "?" or "&"
// depending on whether a brand was present.
func (c *HTTPCatalogClient) CatalogURL(brand, productType string) string {
	var query strings.Builder

	if brand != "" {
		query.WriteString("?brand=")
		query.WriteString(escapeDataString(brand))
	}
	if productType != "" {
		if query.Len() == 0 {
			query.WriteString("?product_type=")
		} else {
			query.WriteString("&product_type=")
		}
		query.WriteString(escapeDataString(productType))
	}

	return c.baseURL + ".json" + query.String()
}

func (c *HTTPCatalogClient) FetchAll(ctx context.Context) ([]model.Product, error) {
	return c.fetchCatalog(ctx, "catalog", c.CatalogURL("", ""))
}

func (c *HTTPCatalogClient) FetchFiltered(ctx context.Context, brand, productType string) ([]model.Product, error) {
	return c.fetchCatalog(ctx, "filtered catalog", c.CatalogURL(brand, productType))
}

func (c *HTTPCatalogClient) fetchCatalog(ctx context.Context, operation, catalogURL string) ([]model.Product, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, catalogURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.DebugContext(ctx, "requesting catalog", "operation", operation, "url", catalogURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Operation: operation, URL: catalogURL, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxCatalogBytes))
	if err != nil {
		return nil, &TransportError{Operation: operation, URL: catalogURL, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{
			Operation:  operation,
			URL:        catalogURL,
			StatusCode: resp.StatusCode,
			Body:       truncateBody(strings.TrimSpace(string(body)), 256),
		}
	}

	products, stats, err := model.DecodeCatalog(body)
	if err != nil {
		return nil, &ParseError{Operation: operation, URL: catalogURL, Err: err}
	}

	if stats.Normalized() {
		c.logger.WarnContext(ctx, "catalog used variant keys, normalized to canonical schema",
			"operation", operation,
			"category_normalized", stats.CategoryNormalized,
			"image_normalized", stats.ImageNormalized)
	}

	c.interner.InternProducts(products)

	c.logger.InfoContext(ctx, "catalog received",
		"operation", operation,
		"products", len(products),
		"bytes", len(body),
		"duration", time.Since(start).Round(time.Millisecond))

	return products, nil
}

// FetchImageBytes swallows every failure, image problems must never disturb catalog browsing.
func (c *HTTPCatalogClient) FetchImageBytes(ctx context.Context, imageURL string) ([]byte, bool) {
	data, err := c.fetchImage(ctx, imageURL)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *HTTPCatalogClient) fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	target := model.NormalizeImageURL(imageURL)
	if target == "" {
		return nil, &ImageFetchError{URL: imageURL, Err: fmt.Errorf("empty url")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &ImageFetchError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ImageFetchError{URL: target, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, &ImageFetchError{URL: target, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, &ImageFetchError{URL: target, StatusCode: resp.StatusCode, Err: err}
	}
	if len(data) > MaxImageBytes {
		return nil, &ImageFetchError{URL: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("image exceeds %d bytes", MaxImageBytes)}
	}
	if len(data) == 0 {
		return nil, &ImageFetchError{URL: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("empty body")}
	}

	return data, nil
}

// escapeDataString percent-encodes everything outside the RFC 3986 unreserved set,
// so spaces become %20 rather than '+'.
func escapeDataString(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func truncateBody(content string, maxLen int) string {
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen] + "...[truncated]"
}
