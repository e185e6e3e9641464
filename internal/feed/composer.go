// Package feed partitions ranked article lists into homepage slates.
package feed

import (
	"fmt"

	"Newsdesk/internal/domain"
)

// Section names a homepage region.
type Section string

const (
	SectionTopHighlights     Section = "topHighlights"
	SectionSidebarHighlights Section = "sidebarHighlights"
	SectionLatest            Section = "latest"
	SectionEditorPicks       Section = "editorPicks"
)

// CategoryBlockSection names the n-th category block.
func CategoryBlockSection(n int) Section {
	return Section(fmt.Sprintf("categoryBlock[%d]", n))
}

// Policy sets slate widths and the fallback rule.
type Policy struct {
	TopHighlights      int
	SidebarHighlights  int
	Latest             int
	EditorPicks        int
	CategoryBlockSplit int
	// EmptySlateFallback lets latest and editor picks ignore the shown set
	// when excluding it would leave them empty.
	EmptySlateFallback bool
}

// DefaultPolicy returns the homepage layout widths.
func DefaultPolicy() Policy {
	return Policy{
		TopHighlights:      5,
		SidebarHighlights:  4,
		Latest:             5,
		EditorPicks:        4,
		CategoryBlockSplit: 6,
		EmptySlateFallback: true,
	}
}

// RawSlates holds the independently fetched inputs of one composition.
type RawSlates struct {
	TopHighlights []domain.Article
	Trending      []domain.Article
	Latest        []domain.Article
	EditorPicks   []domain.Article
	Categories    []domain.CategoryBucket
}

// Slate is an ordered list destined for one section.
type Slate struct {
	Section  Section          `json:"section"`
	Articles []domain.Article `json:"articles"`
	// Fallback is set when the slate ignored the shown set.
	Fallback bool `json:"fallback"`
}

// IDs returns the article identifiers of the slate.
func (s Slate) IDs() []string {
	return domain.IDs(s.Articles)
}

// Homepage is the result of one composition.
type Homepage struct {
	TopHighlights       Slate                   `json:"topHighlights"`
	SidebarHighlights   Slate                   `json:"sidebarHighlights"`
	LatestArticles      Slate                   `json:"latestArticles"`
	EditorPicks         Slate                   `json:"editorPicks"`
	BreakingSpotlight   *domain.Article         `json:"breakingSpotlight"`
	CategoryBlocks      []domain.CategoryBucket `json:"categoryBlocks"`
	RemainingCategories []domain.CategoryBucket `json:"remainingCategories"`
}

// Compose folds raw lists into slates in a fixed order; each slate excludes
// articles claimed by the earlier ones. Compose is a pure function of its input.
func Compose(raw RawSlates, policy Policy) Homepage {
	var (
		home  Homepage
		shown ShownSet
	)

	shown, home.TopHighlights = fold(shown, SectionTopHighlights, raw.TopHighlights, policy.TopHighlights, false)
	shown, home.SidebarHighlights = fold(shown, SectionSidebarHighlights, raw.Trending, policy.SidebarHighlights, false)
	shown, home.LatestArticles = fold(shown, SectionLatest, raw.Latest, policy.Latest, policy.EmptySlateFallback)
	_, home.EditorPicks = fold(shown, SectionEditorPicks, raw.EditorPicks, policy.EditorPicks, policy.EmptySlateFallback)

	if len(home.LatestArticles.Articles) > 0 {
		spotlight := home.LatestArticles.Articles[0]
		home.BreakingSpotlight = &spotlight
	}

	home.CategoryBlocks, home.RemainingCategories = splitCategories(raw.Categories, policy.CategoryBlockSplit)
	return home
}

// fold takes the first width articles of raw not yet shown. With fallback
// enabled, an empty result over a non-empty raw list is replaced by the first
// width articles of raw regardless of the shown set.
func fold(shown ShownSet, section Section, raw []domain.Article, width int, fallback bool) (ShownSet, Slate) {
	slate := Slate{Section: section, Articles: take(raw, width, shown)}
	if fallback && len(slate.Articles) == 0 && len(raw) > 0 {
		slate.Articles = take(raw, width, ShownSet{})
		slate.Fallback = true
	}
	return shown.With(slate.IDs()...), slate
}

func take(raw []domain.Article, width int, exclude ShownSet) []domain.Article {
	out := make([]domain.Article, 0, max(width, 0))
	for _, article := range raw {
		if len(out) >= width {
			break
		}
		if exclude.Has(article.ID) {
			continue
		}
		out = append(out, article)
	}
	return out
}

func splitCategories(buckets []domain.CategoryBucket, at int) ([]domain.CategoryBucket, []domain.CategoryBucket) {
	at = min(max(at, 0), len(buckets))
	head := append([]domain.CategoryBucket{}, buckets[:at]...)
	tail := append([]domain.CategoryBucket{}, buckets[at:]...)
	return head, tail
}
