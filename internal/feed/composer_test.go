package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"Newsdesk/internal/domain"
)

func article(id, categoryID string, hour int) domain.Article {
	at := time.Date(2025, time.November, 8, hour, 0, 0, 0, time.UTC)
	return domain.Article{
		ID:          id,
		CategoryID:  categoryID,
		Status:      domain.StatusPublished,
		PublishedAt: &at,
	}
}

func series(prefix string, n int) []domain.Article {
	out := make([]domain.Article, n)
	for i := range out {
		out[i] = article(fmt.Sprintf("%s%d", prefix, i), "cat", 23-i)
	}
	return out
}

func TestComposeScenarioFallbackDuplicatesEditorPick(t *testing.T) {
	t.Parallel()

	a := article("A", "cat1", 5)
	b := article("B", "cat2", 4)
	c := article("C", "cat3", 3)
	d := article("D", "cat1", 1)

	home := Compose(RawSlates{
		TopHighlights: []domain.Article{a, b},
		Trending:      []domain.Article{b, c},
		Latest:        []domain.Article{a, b, c, d},
		EditorPicks:   []domain.Article{d},
	}, DefaultPolicy())

	checks := []struct {
		name     string
		slate    Slate
		want     []string
		fallback bool
	}{
		{"top", home.TopHighlights, []string{"A", "B"}, false},
		{"sidebar", home.SidebarHighlights, []string{"C"}, false},
		{"latest", home.LatestArticles, []string{"D"}, false},
		{"editor picks", home.EditorPicks, []string{"D"}, true},
	}
	for _, tc := range checks {
		if diff := cmp.Diff(tc.want, tc.slate.IDs()); diff != "" {
			t.Fatalf("%s slate (-want +got):\n%s", tc.name, diff)
		}
		if tc.slate.Fallback != tc.fallback {
			t.Fatalf("%s fallback = %v, want %v", tc.name, tc.slate.Fallback, tc.fallback)
		}
	}

	if home.BreakingSpotlight == nil || home.BreakingSpotlight.ID != "D" {
		t.Fatalf("expected spotlight D, got %+v", home.BreakingSpotlight)
	}
}

func TestComposeEmptyLatestHasNoSpotlight(t *testing.T) {
	t.Parallel()

	home := Compose(RawSlates{
		TopHighlights: series("t", 3),
		Latest:        nil,
	}, DefaultPolicy())

	if len(home.LatestArticles.Articles) != 0 {
		t.Fatalf("expected empty latest, got %v", home.LatestArticles.IDs())
	}
	if home.LatestArticles.Fallback {
		t.Fatalf("fallback must not apply to an empty raw source")
	}
	if home.BreakingSpotlight != nil {
		t.Fatalf("expected no spotlight, got %+v", home.BreakingSpotlight)
	}
}

func TestComposeLatestFallsBackWhenExhausted(t *testing.T) {
	t.Parallel()

	// Six articles in total: the five-wide top slate leaves latest with a
	// single candidate after dedup, and with none once that one is claimed.
	all := series("x", 6)
	home := Compose(RawSlates{
		TopHighlights: all[:5],
		Trending:      all[5:],
		Latest:        all,
		EditorPicks:   all[:2],
	}, DefaultPolicy())

	if diff := cmp.Diff([]string{"x0", "x1", "x2", "x3", "x4"}, home.LatestArticles.IDs()); diff != "" {
		t.Fatalf("latest slate (-want +got):\n%s", diff)
	}
	if !home.LatestArticles.Fallback {
		t.Fatalf("expected latest fallback")
	}
	if home.BreakingSpotlight == nil || home.BreakingSpotlight.ID != "x0" {
		t.Fatalf("spotlight must come from the final latest slate, got %+v", home.BreakingSpotlight)
	}
	if diff := cmp.Diff([]string{"x0", "x1"}, home.EditorPicks.IDs()); diff != "" {
		t.Fatalf("editor picks slate (-want +got):\n%s", diff)
	}
}

func TestComposeStrictPolicyAllowsEmptySlates(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()
	policy.EmptySlateFallback = false

	all := series("x", 5)
	home := Compose(RawSlates{TopHighlights: all, Latest: all, EditorPicks: all}, policy)

	if len(home.LatestArticles.Articles) != 0 || len(home.EditorPicks.Articles) != 0 {
		t.Fatalf("strict dedup must leave exhausted slates empty, got latest=%v picks=%v",
			home.LatestArticles.IDs(), home.EditorPicks.IDs())
	}
}

func TestComposeWidths(t *testing.T) {
	t.Parallel()

	home := Compose(RawSlates{
		TopHighlights: series("t", 10),
		Trending:      series("s", 10),
		Latest:        series("l", 10),
		EditorPicks:   series("e", 10),
	}, DefaultPolicy())

	got := []int{
		len(home.TopHighlights.Articles),
		len(home.SidebarHighlights.Articles),
		len(home.LatestArticles.Articles),
		len(home.EditorPicks.Articles),
	}
	if diff := cmp.Diff([]int{5, 4, 5, 4}, got); diff != "" {
		t.Fatalf("slate widths (-want +got):\n%s", diff)
	}
}

func TestComposeSlatesDisjointWithoutFallback(t *testing.T) {
	t.Parallel()

	pool := series("p", 12)
	inputs := []RawSlates{
		{TopHighlights: pool[:5], Trending: pool[2:8], Latest: pool, EditorPicks: pool[4:]},
		{TopHighlights: pool[3:6], Trending: pool[:4], Latest: pool[5:9], EditorPicks: pool[8:]},
		{TopHighlights: pool[:1], Trending: pool[:1], Latest: pool[:2], EditorPicks: pool},
	}

	for i, raw := range inputs {
		home := Compose(raw, DefaultPolicy())
		owner := map[string]Section{}
		for _, slate := range []Slate{home.TopHighlights, home.SidebarHighlights, home.LatestArticles, home.EditorPicks} {
			if slate.Fallback {
				continue
			}
			for _, id := range slate.IDs() {
				if prev, ok := owner[id]; ok {
					t.Fatalf("input %d: %s in both %s and %s", i, id, prev, slate.Section)
				}
				owner[id] = slate.Section
			}
		}
	}
}

func TestComposeNonEmptyUnderFallback(t *testing.T) {
	t.Parallel()

	pool := series("p", 4)
	for n := 1; n <= len(pool); n++ {
		home := Compose(RawSlates{
			TopHighlights: pool,
			Trending:      pool,
			Latest:        pool[:n],
			EditorPicks:   pool[len(pool)-n:],
		}, DefaultPolicy())

		if len(home.LatestArticles.Articles) == 0 {
			t.Fatalf("n=%d: latest empty despite non-empty raw", n)
		}
		if len(home.EditorPicks.Articles) == 0 {
			t.Fatalf("n=%d: editor picks empty despite non-empty raw", n)
		}
	}
}

func TestComposeIsIdempotent(t *testing.T) {
	t.Parallel()

	raw := RawSlates{
		TopHighlights: series("t", 6),
		Trending:      series("t", 9),
		Latest:        series("t", 12),
		EditorPicks:   series("e", 3),
		Categories: []domain.CategoryBucket{
			{CategoryID: "c1", CategoryName: "One", Articles: series("c", 2)},
		},
	}

	first := Compose(raw, DefaultPolicy())
	second := Compose(raw, DefaultPolicy())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("composition not idempotent (-first +second):\n%s", diff)
	}
}

func TestComposeSplitsCategoriesWithoutDedup(t *testing.T) {
	t.Parallel()

	top := series("t", 5)
	var buckets []domain.CategoryBucket
	for i := 0; i < 8; i++ {
		buckets = append(buckets, domain.CategoryBucket{
			CategoryID:   fmt.Sprintf("c%d", i),
			CategoryName: fmt.Sprintf("Category %d", i),
			Articles:     top[:1],
		})
	}

	home := Compose(RawSlates{TopHighlights: top, Categories: buckets}, DefaultPolicy())

	if len(home.CategoryBlocks) != 6 || len(home.RemainingCategories) != 2 {
		t.Fatalf("unexpected split: %d above, %d below", len(home.CategoryBlocks), len(home.RemainingCategories))
	}
	if home.RemainingCategories[0].CategoryID != "c6" {
		t.Fatalf("split must be positional, got %s first below", home.RemainingCategories[0].CategoryID)
	}
	if home.CategoryBlocks[0].Articles[0].ID != "t0" {
		t.Fatalf("category blocks must not be deduplicated against slates")
	}
}

func TestComposeFewCategories(t *testing.T) {
	t.Parallel()

	buckets := []domain.CategoryBucket{{CategoryID: "only"}}
	home := Compose(RawSlates{Categories: buckets}, DefaultPolicy())
	if len(home.CategoryBlocks) != 1 || len(home.RemainingCategories) != 0 {
		t.Fatalf("unexpected split: %d above, %d below", len(home.CategoryBlocks), len(home.RemainingCategories))
	}
}

func TestFoldReturnsExtendedSetWithoutMutatingInput(t *testing.T) {
	t.Parallel()

	shown := NewShownSet("a")
	next, slate := fold(shown, SectionLatest, []domain.Article{article("a", "c", 1), article("b", "c", 2)}, 5, true)

	if diff := cmp.Diff([]string{"b"}, slate.IDs()); diff != "" {
		t.Fatalf("fold slate (-want +got):\n%s", diff)
	}
	if shown.Has("b") || shown.Len() != 1 {
		t.Fatalf("input set mutated")
	}
	if !next.Has("a") || !next.Has("b") {
		t.Fatalf("returned set missing ids")
	}
}

func TestCategoryBlockSection(t *testing.T) {
	t.Parallel()

	if got := CategoryBlockSection(2); got != "categoryBlock[2]" {
		t.Fatalf("unexpected section name %q", got)
	}
}
