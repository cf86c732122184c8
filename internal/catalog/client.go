// Package catalog talks to the upstream event catalog.  It returns the
// read-only model projections used by the selection and cart packages and
// caches nothing itself.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/ticket-storefront/internal/model"
)

// ErrUpstream wraps transport failures and unexpected upstream statuses.
// They are retryable from the shopper's point of view.
var ErrUpstream = errors.New("catalog upstream error")

// ErrNotFound is returned when the upstream answers 404.
var ErrNotFound = errors.New("catalog entry not found")

// EventFilter narrows ListEvents.  Zero values are omitted from the query.
// Search is applied locally to the returned page by title, as the upstream
// has no text search.
type EventFilter struct {
	Page       int
	PageSize   int
	CategoryID int64
	Location   string
	Date       string
	Search     string
}

// CategoryFilter narrows ListCategories.
type CategoryFilter struct {
	Page     int
	PageSize int
	Name     string
}

// Source is the catalog collaborator consumed by the handlers.
type Source interface {
	ListEvents(ctx context.Context, f EventFilter) (model.EventPage, error)
	GetEvent(ctx context.Context, id int64) (model.Event, error)
	ListCategories(ctx context.Context, f CategoryFilter) (model.CategoryPage, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
}

// Client is the HTTP implementation of Source.
type Client struct {
	baseURL string
	client  *http.Client
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// ListEvents fetches one page of events.
func (c *Client) ListEvents(ctx context.Context, f EventFilter) (model.EventPage, error) {
	q := url.Values{}
	setInt(q, "page", f.Page)
	setInt(q, "pageSize", f.PageSize)
	if f.CategoryID > 0 {
		q.Set("categoryId", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}

	var resp eventsResponse
	if err := c.getJSON(ctx, "/events", q, &resp); err != nil {
		return model.EventPage{}, err
	}
	page := model.EventPage{Pagination: resp.Pagination.model()}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	for _, e := range resp.Data {
		if needle != "" && !strings.Contains(strings.ToLower(e.Title), needle) {
			continue
		}
		page.Events = append(page.Events, e.model())
	}
	return page, nil
}

// GetEvent fetches a single event with its performances.
func (c *Client) GetEvent(ctx context.Context, id int64) (model.Event, error) {
	var e eventJSON
	if err := c.getJSON(ctx, "/event/"+strconv.FormatInt(id, 10), nil, &e); err != nil {
		return model.Event{}, err
	}
	return e.model(), nil
}

// ListCategories fetches one page of categories.
func (c *Client) ListCategories(ctx context.Context, f CategoryFilter) (model.CategoryPage, error) {
	q := url.Values{}
	setInt(q, "page", f.Page)
	setInt(q, "pageSize", f.PageSize)
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	var resp categoriesResponse
	if err := c.getJSON(ctx, "/categories", q, &resp); err != nil {
		return model.CategoryPage{}, err
	}
	page := model.CategoryPage{Pagination: resp.Pagination.model()}
	for _, cat := range resp.Data {
		page.Categories = append(page.Categories, cat.model())
	}
	return page, nil
}

// GetCategory fetches a single category.
func (c *Client) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	var cat categoryJSON
	if err := c.getJSON(ctx, "/categories/"+strconv.FormatInt(id, 10), nil, &cat); err != nil {
		return model.Category{}, err
	}
	return cat.model(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: GET %s", ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: status %d", ErrUpstream, path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrUpstream, path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, path, err)
	}
	return nil
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}
