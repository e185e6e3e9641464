package api

import (
	"net/http"

	"Newsdesk/internal/domain"
	"Newsdesk/internal/feed"
	"Newsdesk/internal/ranking"
)

const (
	defaultPublishedLimit   = 20
	defaultEditorPicksLimit = 10
)

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListPublished handles GET /api/v1/articles.
func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	var (
		q   publishedQuery
		err error
	)
	if q.Featured, err = boolParam(r, "featured"); err != nil {
		h.respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return
	}
	if q.EditorPick, err = boolParam(r, "editorPick"); err != nil {
		h.respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return
	}
	if q.Breaking, err = boolParam(r, "breaking"); err != nil {
		h.respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return
	}
	if q.Limit, err = intParam(r, "limit", defaultPublishedLimit); err != nil {
		h.respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return
	}
	q.Region = r.URL.Query().Get("region")
	if err := validateQuery(&q); err != nil {
		h.respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return
	}

	articles, err := h.source.ListPublished(r.Context(), domain.PublishedFilter{
		Featured:   q.Featured,
		EditorPick: q.EditorPick,
		Breaking:   q.Breaking,
		Region:     q.Region,
		Limit:      q.Limit,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, codeSourceUnavailable, "failed to list articles", err)
		return
	}
	h.respondData(w, articles)
}

// ListEditorPicks handles GET /api/v1/articles/editor-picks.
func (h *Handler) ListEditorPicks(w http.ResponseWriter, r *http.Request) {
	q, ok := h.limitQuery(w, r, defaultEditorPicksLimit)
	if !ok {
		return
	}

	articles, err := h.source.ListEditorPicks(r.Context(), q.Limit)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, codeSourceUnavailable, "failed to list editor picks", err)
		return
	}
	h.respondData(w, articles)
}

// ListTopHighlights handles GET /api/v1/articles/top-highlights.
func (h *Handler) ListTopHighlights(w http.ResponseWriter, r *http.Request) {
	q, ok := h.limitQuery(w, r, ranking.DefaultHighlightLimit)
	if !ok {
		return
	}

	articles, err := h.source.ListTopHighlights(r.Context(), q.Limit)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, codeSourceUnavailable, "failed to list top highlights", err)
		return
	}
	h.respondData(w, articles)
}

// ListCategoryGrouped handles GET /api/v1/articles/by-category.
func (h *Handler) ListCategoryGrouped(w http.ResponseWriter, r *http.Request) {
	var (
		q   perCategoryQuery
		err error
	)
	if q.LimitPerCategory, err = intParam(r, "limitPerCategory", ranking.DefaultPerCategory); err != nil {
		h.respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return
	}
	if err := validateQuery(&q); err != nil {
		h.respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return
	}

	buckets, err := h.source.ListCategoryGrouped(r.Context(), q.LimitPerCategory)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, codeSourceUnavailable, "failed to list categories", err)
		return
	}
	h.respondData(w, buckets)
}

// Homepage handles GET /api/v1/homepage. It always answers 200: sources that
// fail only leave their sections emptier.
func (h *Handler) Homepage(w http.ResponseWriter, r *http.Request) {
	if h.homepage == nil {
		h.respondData(w, NewHomepageView(feed.Compose(feed.RawSlates{}, feed.DefaultPolicy())))
		return
	}
	h.respondData(w, NewHomepageView(h.homepage.Build(r.Context())))
}

func (h *Handler) limitQuery(w http.ResponseWriter, r *http.Request, defaultLimit int) (limitQuery, bool) {
	var (
		q   limitQuery
		err error
	)
	if q.Limit, err = intParam(r, "limit", defaultLimit); err != nil {
		h.respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return q, false
	}
	if err := validateQuery(&q); err != nil {
		h.respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return q, false
	}
	return q, true
}

// SlateView is one slate as rendered by the page: IDs for dedup checks,
// articles for display.
type SlateView struct {
	Section  feed.Section     `json:"section"`
	IDs      []string         `json:"ids"`
	Articles []domain.Article `json:"articles"`
	Fallback bool             `json:"fallback"`
}

// CategoryBlockView is a category bucket placed above the fold.
type CategoryBlockView struct {
	Section feed.Section `json:"section"`
	domain.CategoryBucket
}

// HomepageView is the JSON shape of a composition.
type HomepageView struct {
	TopHighlights       SlateView               `json:"topHighlights"`
	SidebarHighlights   SlateView               `json:"sidebarHighlights"`
	LatestArticles      SlateView               `json:"latestArticles"`
	EditorPicks         SlateView               `json:"editorPicks"`
	BreakingSpotlight   *domain.Article         `json:"breakingSpotlight"`
	CategoryBlocks      []CategoryBlockView     `json:"categoryBlocks"`
	RemainingCategories []domain.CategoryBucket `json:"remainingCategories"`
}

func newSlateView(s feed.Slate) SlateView {
	return SlateView{Section: s.Section, IDs: s.IDs(), Articles: s.Articles, Fallback: s.Fallback}
}

func newCategoryBlockViews(buckets []domain.CategoryBucket) []CategoryBlockView {
	views := make([]CategoryBlockView, len(buckets))
	for i, bucket := range buckets {
		views[i] = CategoryBlockView{Section: feed.CategoryBlockSection(i), CategoryBucket: bucket}
	}
	return views
}

// NewHomepageView converts a composition into its JSON shape.
func NewHomepageView(home feed.Homepage) HomepageView {
	return HomepageView{
		TopHighlights:       newSlateView(home.TopHighlights),
		SidebarHighlights:   newSlateView(home.SidebarHighlights),
		LatestArticles:      newSlateView(home.LatestArticles),
		EditorPicks:         newSlateView(home.EditorPicks),
		BreakingSpotlight:   home.BreakingSpotlight,
		CategoryBlocks:      newCategoryBlockViews(home.CategoryBlocks),
		RemainingCategories: home.RemainingCategories,
	}
}
