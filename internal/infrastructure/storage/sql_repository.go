package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"Newsdesk/internal/domain"
	"Newsdesk/internal/infrastructure/parser"
	"Newsdesk/internal/metrics"
	"Newsdesk/internal/ports"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const excerptLength = 240

// SQLRepository reads published articles from SQLite or Postgres.
type SQLRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var (
	_ ports.ArticleStore  = (*SQLRepository)(nil)
	_ ports.ArticleWriter = (*SQLRepository)(nil)
)

// Open connects to the database and prepares the schema.
func Open(ctx context.Context, driver, dsn string) (*SQLRepository, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// One connection keeps in-memory databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	repo := NewSQLRepository(db, driver)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSQLRepository wires an existing sql.DB using the placeholder style of driver.
func NewSQLRepository(db *sql.DB, driver string) *SQLRepository {
	var placeholder sq.PlaceholderFormat = sq.Question
	if driver == DriverPostgres {
		placeholder = sq.Dollar
	}
	return &SQLRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Close releases the connection pool.
func (r *SQLRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate creates the tables the article projection reads from.
func (r *SQLRepository) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT NOT NULL DEFAULT '',
			excerpt TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			category_id TEXT NOT NULL REFERENCES categories(id),
			author_id TEXT NOT NULL DEFAULT '',
			region TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft',
			published_at TIMESTAMP NULL,
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			is_editor_pick BOOLEAN NOT NULL DEFAULT FALSE,
			is_breaking BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_status_published ON articles(status, published_at)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category_id)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Published returns published articles joined with category and author,
// newest first, narrowed by filter.
func (r *SQLRepository) Published(ctx context.Context, filter domain.PublishedFilter) ([]domain.Article, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database is not configured: %w", domain.ErrSourceUnavailable)
	}

	stmt, args, err := r.publishedQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build published query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("published").Inc()
		return nil, fmt.Errorf("query published: %w: %w", domain.ErrSourceUnavailable, err)
	}

	articles := make([]domain.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		metrics.StoreQueryErrors.WithLabelValues("published").Inc()
		return nil, fmt.Errorf("rows iteration: %w: %w", domain.ErrSourceUnavailable, rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return articles, nil
}

// publishedQuery builds the filtered projection. Equal publish times are
// ordered by id so repeated reads agree.
func (r *SQLRepository) publishedQuery(filter domain.PublishedFilter) sq.SelectBuilder {
	query := r.builder.
		Select(
			"a.id", "a.title", "a.slug", "a.excerpt", "a.content", "a.image_url",
			"a.category_id", "c.name", "c.description",
			"a.author_id", "COALESCE(u.name, '')",
			"a.region", "a.status", "a.published_at",
			"a.is_featured", "a.is_editor_pick", "a.is_breaking",
		).
		From("articles a").
		Join("categories c ON c.id = a.category_id").
		LeftJoin("authors u ON u.id = a.author_id").
		Where(sq.Eq{"a.status": string(domain.StatusPublished)}).
		Where(sq.NotEq{"a.published_at": nil}).
		OrderBy("a.published_at DESC", "a.id")

	if filter.Featured != nil {
		query = query.Where(sq.Eq{"a.is_featured": *filter.Featured})
	}
	if filter.EditorPick != nil {
		query = query.Where(sq.Eq{"a.is_editor_pick": *filter.EditorPick})
	}
	if filter.Breaking != nil {
		query = query.Where(sq.Eq{"a.is_breaking": *filter.Breaking})
	}
	if filter.Region != "" {
		query = query.Where(sq.Eq{"a.region": filter.Region})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	return query
}

func scanArticle(rows *sql.Rows) (domain.Article, error) {
	var (
		article     domain.Article
		status      string
		publishedAt sql.NullTime
	)
	err := rows.Scan(
		&article.ID, &article.Title, &article.Slug, &article.Excerpt, &article.Content, &article.ImageURL,
		&article.CategoryID, &article.Category.Name, &article.Category.Description,
		&article.Author.ID, &article.Author.Name,
		&article.Region, &status, &publishedAt,
		&article.IsFeatured, &article.IsEditorPick, &article.IsBreaking,
	)
	if err != nil {
		return domain.Article{}, err
	}

	article.Category.ID = article.CategoryID
	article.Status = domain.Status(status)
	if publishedAt.Valid {
		at := publishedAt.Time.UTC()
		article.PublishedAt = &at
	}
	if article.Excerpt == "" && article.Content != "" {
		article.Excerpt = parser.Excerpt(article.Content, excerptLength)
	}
	return article, nil
}

// SaveCategory upserts a category.
func (r *SQLRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	stmt, args, err := r.builder.
		Insert("categories").
		Columns("id", "name", "description").
		Values(category.ID, category.Name, category.Description).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description").
		ToSql()
	if err != nil {
		return fmt.Errorf("build category upsert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert category %s: %w", category.ID, err)
	}
	return nil
}

// SaveArticle upserts an article and its author.
func (r *SQLRepository) SaveArticle(ctx context.Context, article domain.Article) error {
	if article.Author.ID != "" {
		stmt, args, err := r.builder.
			Insert("authors").
			Columns("id", "name").
			Values(article.Author.ID, article.Author.Name).
			Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name").
			ToSql()
		if err != nil {
			return fmt.Errorf("build author upsert: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("upsert author %s: %w", article.Author.ID, err)
		}
	}

	var publishedAt any
	if article.PublishedAt != nil {
		publishedAt = article.PublishedAt.UTC().Truncate(time.Microsecond)
	}
	status := article.Status
	if status == "" {
		status = domain.StatusDraft
	}

	stmt, args, err := r.builder.
		Insert("articles").
		Columns(
			"id", "title", "slug", "excerpt", "content", "image_url", "category_id", "author_id",
			"region", "status", "published_at", "is_featured", "is_editor_pick", "is_breaking",
		).
		Values(
			article.ID, article.Title, article.Slug, article.Excerpt, article.Content, article.ImageURL,
			article.CategoryID, article.Author.ID, article.Region, string(status), publishedAt,
			article.IsFeatured, article.IsEditorPick, article.IsBreaking,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET title = EXCLUDED.title,
				slug = EXCLUDED.slug,
				excerpt = EXCLUDED.excerpt,
				content = EXCLUDED.content,
				image_url = EXCLUDED.image_url,
				category_id = EXCLUDED.category_id,
				author_id = EXCLUDED.author_id,
				region = EXCLUDED.region,
				status = EXCLUDED.status,
				published_at = EXCLUDED.published_at,
				is_featured = EXCLUDED.is_featured,
				is_editor_pick = EXCLUDED.is_editor_pick,
				is_breaking = EXCLUDED.is_breaking`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build article upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert article %s: %w", article.ID, err)
	}
	return nil
}
