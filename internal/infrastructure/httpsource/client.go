package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"Newsdesk/internal/domain"
	"Newsdesk/internal/ports"
)

// Client reads articles from a remote Newsdesk API.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ ports.ArticleSource = (*Client)(nil)

// NewClient creates a reusable HTTP client; timeout defaults to 5s.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		http:     &http.Client{Timeout: timeout},
	}
}

type envelope[T any] struct {
	Data T `json:"data"`
}

// ListPublished calls GET /api/v1/articles. The API serves at most
// domain.MaxListLimit articles per request, so a zero (unbounded) or larger
// limit asks for that many.
func (c *Client) ListPublished(ctx context.Context, filter domain.PublishedFilter) ([]domain.Article, error) {
	if filter.Limit < 0 {
		return nil, fmt.Errorf("limit %d: %w", filter.Limit, domain.ErrInvalidFilter)
	}
	q := url.Values{}
	setBool(q, "featured", filter.Featured)
	setBool(q, "editorPick", filter.EditorPick)
	setBool(q, "breaking", filter.Breaking)
	if filter.Region != "" {
		q.Set("region", filter.Region)
	}
	setLimit(q, "limit", unbounded(filter.Limit), domain.MaxListLimit)

	var resp envelope[[]domain.Article]
	if err := c.get(ctx, "/api/v1/articles", q, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Data), nil
}

// ListEditorPicks calls GET /api/v1/articles/editor-picks. Limits follow
// ListPublished.
func (c *Client) ListEditorPicks(ctx context.Context, limit int) ([]domain.Article, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit %d: %w", limit, domain.ErrInvalidFilter)
	}
	q := url.Values{}
	setLimit(q, "limit", unbounded(limit), domain.MaxListLimit)

	var resp envelope[[]domain.Article]
	if err := c.get(ctx, "/api/v1/articles/editor-picks", q, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Data), nil
}

// ListTopHighlights calls GET /api/v1/articles/top-highlights. A zero limit
// leaves the server default in place.
func (c *Client) ListTopHighlights(ctx context.Context, limit int) ([]domain.Article, error) {
	q := url.Values{}
	setLimit(q, "limit", limit, domain.MaxListLimit)

	var resp envelope[[]domain.Article]
	if err := c.get(ctx, "/api/v1/articles/top-highlights", q, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Data), nil
}

// ListCategoryGrouped calls GET /api/v1/articles/by-category.
func (c *Client) ListCategoryGrouped(ctx context.Context, limitPerCategory int) ([]domain.CategoryBucket, error) {
	q := url.Values{}
	setLimit(q, "limitPerCategory", limitPerCategory, domain.MaxPerCategoryLimit)

	var resp envelope[[]domain.CategoryBucket]
	if err := c.get(ctx, "/api/v1/articles/by-category", q, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Data), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	if c.endpoint == "" {
		return fmt.Errorf("remote endpoint is not configured: %w", domain.ErrSourceUnavailable)
	}

	target := c.endpoint + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w: %w", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s: %s: %w", resp.Status, strings.TrimSpace(string(payload)), domain.ErrSourceUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}

// setLimit clamps v to the API ceiling; non-positive values are omitted.
func setLimit(q url.Values, key string, v, ceiling int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(min(v, ceiling)))
	}
}

func unbounded(limit int) int {
	if limit == 0 {
		return domain.MaxListLimit
	}
	return limit
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
