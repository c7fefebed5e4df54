package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/cache"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

const (
	endpointCart        = "/cart"
	endpointProducts    = "/products"
	endpointCollections = "/collections"
	endpointPages       = "/pages"
	endpointMenu        = "/menu"
)

var (
	errBaseURLRequired = errors.New("upstream base url is required")
	errBusRequired     = errors.New("upstream tag bus is required")
	errLoggerRequired  = errors.New("upstream logger is required")
)

// StatusError reports a non-2xx response from the backend API.
type StatusError struct {
	endpoint string
	method   string
	status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s %s returned status %d", e.method, e.endpoint, e.status)
}

func (e *StatusError) StatusCode() int  { return e.status }
func (e *StatusError) Endpoint() string { return e.endpoint }

// Client talks to the commerce backend API with centralized base URL,
// timeouts, tag-cached reads, and error mapping.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.TagCache
	bus     cache.TagBus
	logger  *logger.Logger
	metrics *metrics.UpstreamMetrics
}

// NewClient wires the backend API client. Cache and metrics may be nil.
func NewClient(cfg config.UpstreamConfig, tagCache *cache.TagCache, bus cache.TagBus, logg *logger.Logger, m *metrics.UpstreamMetrics) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errBaseURLRequired
	}
	if bus == nil {
		return nil, errBusRequired
	}
	if logg == nil {
		return nil, errLoggerRequired
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		cache:   tagCache,
		bus:     bus,
		logger:  logg,
		metrics: m,
	}, nil
}

// GetProducts returns the full catalog, served from the tag cache when live.
func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, endpointProducts, []string{cache.TagProducts}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetCollections returns every collection, tag-cached.
func (c *Client) GetCollections(ctx context.Context) ([]Collection, error) {
	var collections []Collection
	if err := c.getJSON(ctx, endpointCollections, []string{cache.TagCollections}, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

// GetPages returns every content page, tag-cached.
func (c *Client) GetPages(ctx context.Context) ([]Page, error) {
	var pages []Page
	if err := c.getJSON(ctx, endpointPages, []string{cache.TagPages}, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// GetMenu returns the navigation menu, tag-cached.
func (c *Client) GetMenu(ctx context.Context) ([]types.MenuItem, error) {
	var menu []types.MenuItem
	if err := c.getJSON(ctx, endpointMenu, []string{cache.TagMenu}, &menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// GetCart reads the raw persisted cart. Cart reads are never cached.
func (c *Client) GetCart(ctx context.Context) (*CartSnapshot, error) {
	var snapshot CartSnapshot
	if err := c.getJSON(ctx, endpointCart, nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// PatchCart replaces the entire persisted line list in one write and bumps the
// cart tag so subsequent reads are fresh. The response body is not consumed.
// Calling it twice with the same lines is idempotent.
func (c *Client) PatchCart(ctx context.Context, lines []CartLine) error {
	if lines == nil {
		lines = []CartLine{}
	}
	totalQuantity := 0
	for _, line := range lines {
		totalQuantity += line.Quantity
	}

	body, err := json.Marshal(map[string]any{
		"lines":         lines,
		"totalQuantity": totalQuantity,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart payload")
	}

	if err := c.do(ctx, http.MethodPatch, endpointCart, bytes.NewReader(body), nil); err != nil {
		return err
	}

	if _, err := c.bus.Invalidate(ctx, cache.TagCart); err != nil {
		c.logger.Error(ctx, "upstream.cart_tag_invalidate_failed", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, tags []string, dest any) error {
	cacheable := len(tags) > 0 && c.cache != nil

	// The tag versions are snapshotted before the request goes out. An
	// invalidation racing the in-flight response then outversions the entry
	// instead of being absorbed into it.
	var versions map[string]uint64
	if cacheable {
		if payload, ok := c.cache.Get(ctx, endpoint); ok {
			return json.Unmarshal(payload, dest)
		}
		snapshot, err := c.cache.Snapshot(ctx, tags)
		if err != nil {
			c.logger.Error(ctx, "upstream.cache_snapshot_failed", err)
			cacheable = false
		}
		versions = snapshot
	}

	var payload []byte
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return err
	}

	if cacheable {
		c.cache.Set(endpoint, tags, payload, versions)
	}
	return json.Unmarshal(payload, dest)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, payload *[]byte) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building upstream request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	c.metrics.ObserveDuration(endpoint, method, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(endpoint, method)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("calling %s %s", method, endpoint))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		c.metrics.IncFailure(endpoint, method)
		cause := &StatusError{endpoint: endpoint, method: method, status: res.StatusCode}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, cause, fmt.Sprintf("calling %s %s", method, endpoint))
	}

	if payload == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.metrics.IncFailure(endpoint, method)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("reading %s %s response", method, endpoint))
	}
	*payload = raw
	return nil
}
