package ports

import (
	"context"

	"Newsdesk/internal/domain"
)

// ArticleSource exposes the read queries the homepage composition consumes.
// Implementations must be safe for concurrent use and return empty slices,
// not errors, when nothing matches.
type ArticleSource interface {
	ListPublished(ctx context.Context, filter domain.PublishedFilter) ([]domain.Article, error)
	ListEditorPicks(ctx context.Context, limit int) ([]domain.Article, error)
	ListTopHighlights(ctx context.Context, limit int) ([]domain.Article, error)
	ListCategoryGrouped(ctx context.Context, limitPerCategory int) ([]domain.CategoryBucket, error)
}

// ArticleStore is the persistence adapter behind the local ArticleSource.
// Published returns published articles ordered by publish time, newest first.
type ArticleStore interface {
	Published(ctx context.Context, filter domain.PublishedFilter) ([]domain.Article, error)
}

// ArticleWriter loads fixtures into the store.
type ArticleWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	SaveArticle(ctx context.Context, article domain.Article) error
}
