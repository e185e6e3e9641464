package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"Newsdesk/internal/domain"
	"Newsdesk/internal/ports"
	"Newsdesk/internal/ranking"
)

// Catalog implements ArticleSource over a store by running the ranking
// selectors application-side on the published list.
type Catalog struct {
	store  ports.ArticleStore
	logger *slog.Logger
}

var _ ports.ArticleSource = (*Catalog)(nil)

// NewCatalog wires the store adapter.
func NewCatalog(store ports.ArticleStore, logger *slog.Logger) *Catalog {
	return &Catalog{store: store, logger: logger}
}

// ListPublished returns published articles matching filter, newest first.
func (c *Catalog) ListPublished(ctx context.Context, filter domain.PublishedFilter) ([]domain.Article, error) {
	if filter.Limit < 0 {
		return nil, fmt.Errorf("limit %d: %w", filter.Limit, domain.ErrInvalidFilter)
	}
	articles, err := c.published(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list published: %w", err)
	}
	return articles, nil
}

// ListEditorPicks returns the newest articles flagged as editor picks.
func (c *Catalog) ListEditorPicks(ctx context.Context, limit int) ([]domain.Article, error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit %d: %w", limit, domain.ErrInvalidFilter)
	}
	pick := true
	articles, err := c.published(ctx, domain.PublishedFilter{EditorPick: &pick, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list editor picks: %w", err)
	}
	return articles, nil
}

// ListTopHighlights returns the latest article of the most recently updated categories.
func (c *Catalog) ListTopHighlights(ctx context.Context, limit int) ([]domain.Article, error) {
	articles, err := c.published(ctx, domain.PublishedFilter{})
	if err != nil {
		return nil, fmt.Errorf("list top highlights: %w", err)
	}
	highlights := ranking.SelectHighlights(articles, limit)
	c.debug("top highlights selected", "candidates", len(articles), "selected", len(highlights))
	return highlights, nil
}

// ListCategoryGrouped returns the newest articles of every category with content.
func (c *Catalog) ListCategoryGrouped(ctx context.Context, limitPerCategory int) ([]domain.CategoryBucket, error) {
	articles, err := c.published(ctx, domain.PublishedFilter{})
	if err != nil {
		return nil, fmt.Errorf("list category grouped: %w", err)
	}
	buckets := ranking.GroupByCategory(articles, limitPerCategory)
	c.debug("categories grouped", "candidates", len(articles), "categories", len(buckets))
	return buckets, nil
}

func (c *Catalog) published(ctx context.Context, filter domain.PublishedFilter) ([]domain.Article, error) {
	if c.store == nil {
		return nil, fmt.Errorf("article store is not configured: %w", domain.ErrSourceUnavailable)
	}
	articles, err := c.store.Published(ctx, filter)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return articles, nil
}

func (c *Catalog) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
