package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"Newsdesk/internal/domain"
	"Newsdesk/internal/feed"
	"Newsdesk/internal/metrics"
	"Newsdesk/internal/ports"
)

// Source labels used in logs and metrics.
const (
	sourceTopHighlights = "top_highlights"
	sourceTrending      = "trending"
	sourceLatest        = "latest"
	sourceEditorPicks   = "editor_picks"
	sourceCategories    = "categories"
)

// FetchLimits sizes the raw lists requested from the source.
type FetchLimits struct {
	TopHighlights    int
	Trending         int
	Latest           int
	EditorPicks      int
	LimitPerCategory int
	// Timeout bounds each fetch; zero disables the per-fetch deadline.
	Timeout time.Duration
}

// DefaultFetchLimits mirrors the homepage queries.
func DefaultFetchLimits() FetchLimits {
	return FetchLimits{
		TopHighlights:    10,
		Trending:         10,
		Latest:           20,
		EditorPicks:      10,
		LimitPerCategory: 5,
		Timeout:          3 * time.Second,
	}
}

// HomepageDeps wires the composition use case.
type HomepageDeps struct {
	Source ports.ArticleSource
	Policy feed.Policy
	Limits FetchLimits
	Logger *slog.Logger
}

// Homepage fetches the raw lists concurrently and folds them into slates.
type Homepage struct {
	source ports.ArticleSource
	policy feed.Policy
	limits FetchLimits
	logger *slog.Logger
}

// NewHomepage constructs the use case.
func NewHomepage(deps HomepageDeps) *Homepage {
	return &Homepage{
		source: deps.Source,
		policy: deps.Policy,
		limits: deps.Limits,
		logger: deps.Logger,
	}
}

// Build composes one homepage. It never fails: a source that errors or times
// out contributes an empty list.
func (h *Homepage) Build(ctx context.Context) feed.Homepage {
	started := time.Now()
	raw := h.FetchRaw(ctx)
	home := feed.Compose(raw, h.policy)

	for _, slate := range []feed.Slate{home.LatestArticles, home.EditorPicks} {
		if slate.Fallback {
			metrics.SlateFallbacks.WithLabelValues(string(slate.Section)).Inc()
			h.debug("slate filled without dedup", "section", slate.Section, "count", len(slate.Articles))
		}
	}
	metrics.CompositionDuration.Observe(time.Since(started).Seconds())

	h.debug("homepage composed",
		"top", len(home.TopHighlights.Articles),
		"sidebar", len(home.SidebarHighlights.Articles),
		"latest", len(home.LatestArticles.Articles),
		"editor_picks", len(home.EditorPicks.Articles),
		"categories", len(home.CategoryBlocks)+len(home.RemainingCategories),
	)
	return home
}

// FetchRaw issues the five source queries concurrently and waits for all of them.
func (h *Homepage) FetchRaw(ctx context.Context) feed.RawSlates {
	var raw feed.RawSlates
	if h.source == nil {
		return raw
	}

	featured := true
	// Goroutines always return nil so one failing source never cancels the others.
	var g errgroup.Group

	g.Go(func() error {
		raw.TopHighlights = fetchOrEmpty(ctx, h, sourceTopHighlights, func(ctx context.Context) ([]domain.Article, error) {
			return h.source.ListTopHighlights(ctx, h.limits.TopHighlights)
		})
		return nil
	})
	g.Go(func() error {
		raw.Trending = fetchOrEmpty(ctx, h, sourceTrending, func(ctx context.Context) ([]domain.Article, error) {
			return h.source.ListPublished(ctx, domain.PublishedFilter{Featured: &featured, Limit: h.limits.Trending})
		})
		return nil
	})
	g.Go(func() error {
		raw.Latest = fetchOrEmpty(ctx, h, sourceLatest, func(ctx context.Context) ([]domain.Article, error) {
			return h.source.ListPublished(ctx, domain.PublishedFilter{Limit: h.limits.Latest})
		})
		return nil
	})
	g.Go(func() error {
		raw.EditorPicks = fetchOrEmpty(ctx, h, sourceEditorPicks, func(ctx context.Context) ([]domain.Article, error) {
			return h.source.ListEditorPicks(ctx, h.limits.EditorPicks)
		})
		return nil
	})
	g.Go(func() error {
		raw.Categories = fetchOrEmpty(ctx, h, sourceCategories, func(ctx context.Context) ([]domain.CategoryBucket, error) {
			return h.source.ListCategoryGrouped(ctx, h.limits.LimitPerCategory)
		})
		return nil
	})

	_ = g.Wait()
	return raw
}

func fetchOrEmpty[T any](ctx context.Context, h *Homepage, source string, fetch func(context.Context) ([]T, error)) []T {
	if h.limits.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.limits.Timeout)
		defer cancel()
	}

	started := time.Now()
	items, err := fetch(ctx)
	metrics.RecordSourceFetch(source, started, err)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("source fetch failed, using empty list", "source", source, "error", err)
		}
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func (h *Homepage) debug(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}
