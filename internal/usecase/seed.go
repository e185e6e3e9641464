package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"Newsdesk/internal/domain"
	"Newsdesk/internal/ports"
)

// Fixtures is the YAML document accepted by Seeder.
type Fixtures struct {
	Categories []domain.Category `yaml:"categories"`
	Articles   []domain.Article  `yaml:"articles"`
}

// ParseFixtures decodes a fixtures document.
func ParseFixtures(raw []byte) (Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return fx, nil
}

// Seeder loads fixtures into a writable store.
type Seeder struct {
	writer ports.ArticleWriter
	logger *slog.Logger
}

// NewSeeder wires the store writer.
func NewSeeder(writer ports.ArticleWriter, logger *slog.Logger) *Seeder {
	return &Seeder{writer: writer, logger: logger}
}

// Seed upserts categories first, then articles. Articles without an ID get a
// random one; published articles without a timestamp are rejected.
func (s *Seeder) Seed(ctx context.Context, fx Fixtures) (int, error) {
	if s.writer == nil {
		return 0, fmt.Errorf("seed: store is not writable")
	}

	for _, category := range fx.Categories {
		if category.ID == "" || category.Name == "" {
			return 0, fmt.Errorf("seed category %q: id and name are required", category.Name)
		}
		if err := s.writer.SaveCategory(ctx, category); err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
	}

	saved := 0
	for _, article := range fx.Articles {
		if article.ID == "" {
			article.ID = uuid.NewString()
		}
		if article.CategoryID == "" {
			return saved, fmt.Errorf("seed article %s: category is required", article.ID)
		}
		if article.Status == domain.StatusPublished && article.PublishedAt == nil {
			return saved, fmt.Errorf("seed article %s: published article needs publishedAt", article.ID)
		}
		if article.Status != domain.StatusPublished {
			article.PublishedAt = nil
		}
		if err := s.writer.SaveArticle(ctx, article); err != nil {
			return saved, fmt.Errorf("seed: %w", err)
		}
		saved++
	}

	if s.logger != nil {
		s.logger.Info("fixtures seeded", "categories", len(fx.Categories), "articles", saved)
	}
	return saved, nil
}
