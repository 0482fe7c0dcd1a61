package mealdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/windoze95/mealquest-api/internal/metrics"
)

// ErrUpstreamStatus is returned when the upstream answers with a non-2xx status.
var ErrUpstreamStatus = errors.New("upstream returned non-success status")

// Endpoint labels used for metrics and logging.
const (
	EndpointSearch = "search"
	EndpointFilter = "filter"
	EndpointLookup = "lookup"
	EndpointList   = "list"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 8 << 20

// Client queries TheMealDB. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *revalidateCache
	breaker    *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for upstream calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRevalidate keeps successful responses for d before asking the upstream again.
func WithRevalidate(d time.Duration) Option {
	return func(c *Client) { c.cache = newRevalidateCache(d) }
}

// WithBreaker routes calls through cb. Clients sharing a breaker trip together.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		cache:      newRevalidateCache(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = NewBreaker(DefaultBreakerConfig())
	}
	return c
}

// SearchByName returns meals whose name matches term. An empty term returns
// the upstream's default listing.
func (c *Client) SearchByName(ctx context.Context, term string) ([]RawMeal, error) {
	return c.get(ctx, EndpointSearch, "search.php", url.Values{"s": {term}})
}

// FilterByIngredient returns summary records (id, name, thumbnail) of meals
// that use ingredient.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]RawMeal, error) {
	return c.get(ctx, EndpointFilter, "filter.php", url.Values{"i": {ingredient}})
}

// LookupByID returns the full record for id, or an empty slice.
func (c *Client) LookupByID(ctx context.Context, id string) ([]RawMeal, error) {
	return c.get(ctx, EndpointLookup, "lookup.php", url.Values{"i": {id}})
}

// ListAreas returns every area (cuisine) the upstream knows.
func (c *Client) ListAreas(ctx context.Context) ([]string, error) {
	meals, err := c.get(ctx, EndpointList, "list.php", url.Values{"a": {"list"}})
	if err != nil {
		return nil, err
	}
	return pluck(meals, "strArea"), nil
}

// ListCategories returns every category the upstream knows.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	meals, err := c.get(ctx, EndpointList, "list.php", url.Values{"c": {"list"}})
	if err != nil {
		return nil, err
	}
	return pluck(meals, "strCategory"), nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) ([]RawMeal, error) {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())

	if meals, ok := c.cache.get(reqURL); ok {
		metrics.RecordCacheHit(endpoint)
		return meals, nil
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, reqURL)
	})
	switch {
	case err == nil:
		metrics.RecordUpstreamCall(endpoint, metrics.OutcomeSuccess, time.Since(start))
	case isBreakerRejection(err):
		metrics.RecordUpstreamCall(endpoint, metrics.OutcomeOpen, time.Since(start))
		return nil, fmt.Errorf("%s call rejected: %w", endpoint, err)
	default:
		metrics.RecordUpstreamCall(endpoint, metrics.OutcomeError, time.Since(start))
		return nil, err
	}

	meals := result.([]RawMeal)
	c.cache.set(reqURL, meals)
	return meals, nil
}

func (c *Client) do(ctx context.Context, reqURL string) ([]RawMeal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	return decodeMeals(body)
}

// decodeMeals parses an upstream envelope. Anything other than an array in
// the meals field yields an empty slice; non-object elements are skipped.
func decodeMeals(body []byte) ([]RawMeal, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to parse upstream response: %w", err)
	}
	list, _ := env.Meals.([]any)
	meals := make([]RawMeal, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			meals = append(meals, RawMeal(m))
		}
	}
	return meals, nil
}

func pluck(meals []RawMeal, key string) []string {
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		if v, ok := m.String(key); ok && strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
