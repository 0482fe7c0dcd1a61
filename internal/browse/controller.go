// Package browse drives a recipe browsing session against the API server.
package browse

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/windoze95/mealquest-api/internal/logger"
	"github.com/windoze95/mealquest-api/internal/models"
	"go.uber.org/zap"
)

// Status is the lifecycle state of the current request.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// fetchFailedMessage is shown for any non-2xx response.
const fetchFailedMessage = "Failed to fetch"

// Params is the full parameter set sent with every search request.
type Params struct {
	Search   string
	Area     string
	Category string
	Page     int
}

// State is a snapshot of the controller.
type State struct {
	Status Status
	Data   *models.PageResult
	Err    string
	Params Params
}

// Fetcher retrieves data from the API server.
type Fetcher interface {
	FetchRecipes(ctx context.Context, p Params) (*models.PageResult, error)
	FetchRecipe(ctx context.Context, id string) (*models.Recipe, error)
	FetchFilters(ctx context.Context) (*models.FilterOptions, error)
}

// Controller owns the search parameters of one browsing session. Every
// parameter change dispatches exactly one request; a response that settles
// after a newer request was dispatched is discarded.
type Controller struct {
	fetcher  Fetcher
	onChange func(State)

	mu    sync.Mutex
	state State
	seq   uint64

	// notifyMu serializes observer calls.
	notifyMu sync.Mutex

	wg sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithParams sets the parameters used by Start.
func WithParams(p Params) Option {
	return func(c *Controller) {
		c.state.Params = normalizeParams(p)
	}
}

// WithOnChange registers fn to be called after every state transition.
// fn may be called from the goroutine that settled a request. Calls are
// serialized, and a transition superseded by a newer request is not reported.
// fn may read State but must not change parameters synchronously.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// NewController creates a Controller in the Loading state with an empty
// search on page 1.
func NewController(fetcher Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher: fetcher,
		state:   State{Status: StatusLoading, Params: Params{Page: 1}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start issues the initial request.
func (c *Controller) Start(ctx context.Context) {
	c.update(ctx, func(p *Params) {})
}

// SetSearch changes the search term and returns to page 1.
func (c *Controller) SetSearch(ctx context.Context, term string) {
	c.update(ctx, func(p *Params) {
		p.Search = strings.TrimSpace(term)
		p.Page = 1
	})
}

// SetFilters changes the area and category filters and returns to page 1.
func (c *Controller) SetFilters(ctx context.Context, area, category string) {
	c.update(ctx, func(p *Params) {
		p.Area = area
		p.Category = category
		p.Page = 1
	})
}

// SetPage moves to page n, keeping the search and filters.
func (c *Controller) SetPage(ctx context.Context, n int) {
	c.update(ctx, func(p *Params) {
		p.Page = n
	})
}

// Refresh repeats the request for the current parameters.
func (c *Controller) Refresh(ctx context.Context) {
	c.update(ctx, func(p *Params) {})
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until every dispatched request has settled.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) update(ctx context.Context, change func(p *Params)) {
	c.mu.Lock()
	params := c.state.Params
	change(&params)
	params = normalizeParams(params)

	c.seq++
	seq := c.seq
	c.state = State{Status: StatusLoading, Data: c.state.Data, Params: params}
	loading := c.state
	c.mu.Unlock()

	c.notify(seq, loading)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		page, err := c.fetcher.FetchRecipes(ctx, params)
		c.settle(seq, page, err)
	}()
}

func (c *Controller) settle(seq uint64, page *models.PageResult, err error) {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		logger.Get().Debug("discarding stale response", zap.Uint64("seq", seq))
		return
	}
	if err != nil {
		c.state.Status = StatusError
		c.state.Err = errorMessage(err)
	} else {
		c.state.Status = StatusSuccess
		c.state.Data = page
		c.state.Err = ""
	}
	settled := c.state
	c.mu.Unlock()

	c.notify(seq, settled)
}

func (c *Controller) notify(seq uint64, s State) {
	if c.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	current := seq == c.seq
	c.mu.Unlock()
	if current {
		c.onChange(s)
	}
}

func normalizeParams(p Params) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

func errorMessage(err error) string {
	if errors.Is(err, ErrStatus) {
		return fetchFailedMessage
	}
	return err.Error()
}
