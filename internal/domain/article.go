package domain

import "time"

// Status enumerates the editorial lifecycle of an article.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Category groups articles; it carries no business rules beyond grouping.
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Author is the byline joined onto an article.
type Author struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Article is the read-only projection used to compose homepage sections.
type Article struct {
	ID           string     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Slug         string     `json:"slug" yaml:"slug"`
	Excerpt      string     `json:"excerpt,omitempty" yaml:"excerpt"`
	Content      string     `json:"-" yaml:"content"`
	ImageURL     string     `json:"imageUrl,omitempty" yaml:"imageUrl"`
	CategoryID   string     `json:"categoryId" yaml:"categoryId"`
	Category     Category   `json:"category" yaml:"-"`
	Author       Author     `json:"author" yaml:"author"`
	Region       string     `json:"region,omitempty" yaml:"region"`
	Status       Status     `json:"status" yaml:"status"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt"`
	IsFeatured   bool       `json:"isFeatured" yaml:"isFeatured"`
	IsEditorPick bool       `json:"isEditorPick" yaml:"isEditorPick"`
	IsBreaking   bool       `json:"isBreaking" yaml:"isBreaking"`
}

// Published reports whether the article is eligible for any slate.
func (a Article) Published() bool {
	return a.Status == StatusPublished && a.PublishedAt != nil
}

// PublishedTime returns the publish timestamp or the zero time.
func (a Article) PublishedTime() time.Time {
	if a.PublishedAt == nil {
		return time.Time{}
	}
	return *a.PublishedAt
}

// CategoryBucket is one category with its most recent published articles.
type CategoryBucket struct {
	CategoryID          string    `json:"categoryId"`
	CategoryName        string    `json:"categoryName"`
	CategoryDescription string    `json:"categoryDescription,omitempty"`
	Articles            []Article `json:"articles"`
}

// Largest page sizes served over the HTTP API.
const (
	MaxListLimit        = 100
	MaxPerCategoryLimit = 50
)

// PublishedFilter narrows ListPublished. Nil flags are not applied.
type PublishedFilter struct {
	Featured   *bool
	EditorPick *bool
	Breaking   *bool
	Region     string
	// Limit zero means no limit.
	Limit int
}

// IDs returns the identifiers of articles in order.
func IDs(articles []Article) []string {
	ids := make([]string, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	return ids
}
