// Package ranking selects the "best" published articles per category.
//
// Both selectors run the same three stages over a fetched list: filter to
// published, stable sort by publish time (newest first), then group with a cap.
// Articles sharing a publish time keep their input order; callers that need a
// different tiebreak must order the input accordingly.
package ranking

import (
	"cmp"
	"slices"

	"Newsdesk/internal/domain"
)

const (
	// DefaultPerCategory caps each bucket of GroupByCategory.
	DefaultPerCategory = 5
	// DefaultHighlightLimit caps SelectHighlights.
	DefaultHighlightLimit = 10
)

// GroupByCategory returns one bucket per category holding its perCategory most
// recent published articles. Buckets are sorted by category name; categories
// without published articles are omitted.
func GroupByCategory(articles []domain.Article, perCategory int) []domain.CategoryBucket {
	if perCategory <= 0 {
		perCategory = DefaultPerCategory
	}

	buckets := make([]domain.CategoryBucket, 0)
	index := map[string]int{}
	for _, article := range newestFirst(articles) {
		pos, ok := index[article.CategoryID]
		if !ok {
			pos = len(buckets)
			index[article.CategoryID] = pos
			buckets = append(buckets, domain.CategoryBucket{
				CategoryID:          article.CategoryID,
				CategoryName:        article.Category.Name,
				CategoryDescription: article.Category.Description,
			})
		}
		if len(buckets[pos].Articles) < perCategory {
			buckets[pos].Articles = append(buckets[pos].Articles, article)
		}
	}

	slices.SortStableFunc(buckets, func(a, b domain.CategoryBucket) int {
		return cmp.Compare(a.CategoryName, b.CategoryName)
	})
	return buckets
}

// SelectHighlights returns the most recent published article of each category,
// newest first, keeping only the limit categories whose representative is most
// recent.
func SelectHighlights(articles []domain.Article, limit int) []domain.Article {
	if limit <= 0 {
		limit = DefaultHighlightLimit
	}

	seen := map[string]struct{}{}
	highlights := make([]domain.Article, 0, limit)
	// newestFirst means the first article met per category is its most recent
	// one, and representatives are appended already in recency order.
	for _, article := range newestFirst(articles) {
		if _, ok := seen[article.CategoryID]; ok {
			continue
		}
		seen[article.CategoryID] = struct{}{}
		highlights = append(highlights, article)
		if len(highlights) == limit {
			break
		}
	}
	return highlights
}

func newestFirst(articles []domain.Article) []domain.Article {
	published := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		if article.Published() {
			published = append(published, article)
		}
	}
	slices.SortStableFunc(published, func(a, b domain.Article) int {
		return b.PublishedTime().Compare(a.PublishedTime())
	})
	return published
}
