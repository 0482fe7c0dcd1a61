package browse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/windoze95/mealquest-api/internal/models"
)

var (
	// ErrStatus is returned for any non-2xx response.
	ErrStatus = errors.New("unexpected status")
	// ErrNotFound is returned when a recipe does not exist.
	ErrNotFound = errors.New("recipe not found")
)

// HTTPFetcher talks to the API server over HTTP.
type HTTPFetcher struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPFetcher creates a fetcher for the server at baseURL. A nil
// httpClient uses http.DefaultClient.
func NewHTTPFetcher(baseURL string, httpClient *http.Client) *HTTPFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPFetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchRecipes requests one page of search results.
func (f *HTTPFetcher) FetchRecipes(ctx context.Context, p Params) (*models.PageResult, error) {
	q := url.Values{}
	q.Set("search", p.Search)
	q.Set("area", p.Area)
	q.Set("category", p.Category)
	q.Set("page", strconv.Itoa(p.Page))

	var page models.PageResult
	if err := f.get(ctx, "/v1/recipes?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FetchRecipe requests the full recipe for id.
func (f *HTTPFetcher) FetchRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	var body struct {
		Recipe *models.Recipe `json:"recipe"`
	}
	if err := f.get(ctx, "/v1/recipes/"+url.PathEscape(id), &body); err != nil {
		return nil, err
	}
	if body.Recipe == nil {
		return nil, ErrNotFound
	}
	return body.Recipe, nil
}

// FetchFilters requests the area and category filter values.
func (f *HTTPFetcher) FetchFilters(ctx context.Context) (*models.FilterOptions, error) {
	var opts models.FilterOptions
	if err := f.get(ctx, "/v1/filters", &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

func (f *HTTPFetcher) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, ErrStatus)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
