package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"Newsdesk/internal/domain"
	"Newsdesk/internal/feed"
)

type stubSource struct {
	published   func(domain.PublishedFilter) ([]domain.Article, error)
	editorPicks []domain.Article
	pickErr     error
	highlights  []domain.Article
	grouped     []domain.CategoryBucket
	groupErr    error
	block       bool
	calls       atomic.Int32
}

func (s *stubSource) ListPublished(ctx context.Context, filter domain.PublishedFilter) ([]domain.Article, error) {
	s.calls.Add(1)
	if s.published == nil {
		return nil, nil
	}
	return s.published(filter)
}

func (s *stubSource) ListEditorPicks(ctx context.Context, limit int) ([]domain.Article, error) {
	s.calls.Add(1)
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.editorPicks, s.pickErr
}

func (s *stubSource) ListTopHighlights(ctx context.Context, limit int) ([]domain.Article, error) {
	s.calls.Add(1)
	return s.highlights, nil
}

func (s *stubSource) ListCategoryGrouped(ctx context.Context, limitPerCategory int) ([]domain.CategoryBucket, error) {
	s.calls.Add(1)
	return s.grouped, s.groupErr
}

func stamped(id, categoryID string, hour int) domain.Article {
	at := time.Date(2025, time.November, 8, hour, 0, 0, 0, time.UTC)
	return domain.Article{ID: id, CategoryID: categoryID, Status: domain.StatusPublished, PublishedAt: &at}
}

func TestHomepageBuildRoutesSources(t *testing.T) {
	t.Parallel()

	a, b, c, d := stamped("A", "c1", 5), stamped("B", "c2", 4), stamped("C", "c3", 3), stamped("D", "c1", 1)
	src := &stubSource{
		published: func(f domain.PublishedFilter) ([]domain.Article, error) {
			if f.Featured != nil && *f.Featured {
				return []domain.Article{b, c}, nil
			}
			return []domain.Article{a, b, c, d}, nil
		},
		editorPicks: []domain.Article{d},
		highlights:  []domain.Article{a, b},
		grouped:     []domain.CategoryBucket{{CategoryID: "c1", Articles: []domain.Article{a, d}}},
	}

	uc := NewHomepage(HomepageDeps{Source: src, Policy: feed.DefaultPolicy(), Limits: DefaultFetchLimits()})
	home := uc.Build(context.Background())

	got := map[string][]string{
		"top":     home.TopHighlights.IDs(),
		"sidebar": home.SidebarHighlights.IDs(),
		"latest":  home.LatestArticles.IDs(),
		"picks":   home.EditorPicks.IDs(),
	}
	want := map[string][]string{
		"top":     {"A", "B"},
		"sidebar": {"C"},
		"latest":  {"D"},
		"picks":   {"D"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected slates (-want +got):\n%s", diff)
	}
	if len(home.CategoryBlocks) != 1 {
		t.Fatalf("expected 1 category block, got %d", len(home.CategoryBlocks))
	}
	if n := src.calls.Load(); n != 5 {
		t.Fatalf("expected 5 source calls, got %d", n)
	}
}

func TestHomepageBuildDegradesFailedSources(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		published: func(domain.PublishedFilter) ([]domain.Article, error) {
			return nil, domain.ErrSourceUnavailable
		},
		pickErr:    errors.New("boom"),
		highlights: []domain.Article{stamped("A", "c1", 5)},
		groupErr:   domain.ErrSourceUnavailable,
	}

	uc := NewHomepage(HomepageDeps{Source: src, Policy: feed.DefaultPolicy(), Limits: DefaultFetchLimits()})
	home := uc.Build(context.Background())

	if diff := cmp.Diff([]string{"A"}, home.TopHighlights.IDs()); diff != "" {
		t.Fatalf("healthy source must still be used (-want +got):\n%s", diff)
	}
	if len(home.LatestArticles.Articles) != 0 || len(home.EditorPicks.Articles) != 0 || len(home.SidebarHighlights.Articles) != 0 {
		t.Fatalf("failed sources must yield empty slates")
	}
	if home.BreakingSpotlight != nil {
		t.Fatalf("expected no spotlight")
	}
	if home.CategoryBlocks == nil || len(home.CategoryBlocks) != 0 {
		t.Fatalf("expected empty category blocks, got %#v", home.CategoryBlocks)
	}
}

func TestHomepageTimeoutTreatedAsFailure(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		block:      true,
		highlights: []domain.Article{stamped("A", "c1", 5)},
	}
	limits := DefaultFetchLimits()
	limits.Timeout = 20 * time.Millisecond

	uc := NewHomepage(HomepageDeps{Source: src, Policy: feed.DefaultPolicy(), Limits: limits})

	done := make(chan feed.Homepage, 1)
	go func() { done <- uc.Build(context.Background()) }()

	select {
	case home := <-done:
		if len(home.EditorPicks.Articles) != 0 {
			t.Fatalf("timed out source must be empty")
		}
		if len(home.TopHighlights.Articles) != 1 {
			t.Fatalf("other sources must survive a timeout")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("build did not honour the fetch timeout")
	}
}

func TestHomepageWithoutSource(t *testing.T) {
	t.Parallel()

	home := NewHomepage(HomepageDeps{Policy: feed.DefaultPolicy()}).Build(context.Background())
	if len(home.TopHighlights.Articles) != 0 || home.BreakingSpotlight != nil {
		t.Fatalf("expected an empty homepage, got %+v", home)
	}
}
