package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"Newsdesk/internal/feed"
	"Newsdesk/internal/usecase"
)

const (
	configPathEnv     = "NEWSDESK_CONFIG"
	databaseDriverEnv = "DATABASE_DRIVER"
	databaseDSNEnv    = "DATABASE_DSN"
	httpAddrEnv       = "HTTP_ADDR"
	logLevelEnv       = "LOG_LEVEL"
	logFormatEnv      = "LOG_FORMAT"
	sourceURLEnv      = "ARTICLE_SOURCE_URL"
	fallbackEnv       = "FEED_EMPTY_SLATE_FALLBACK"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	Source   SourceConfig   `yaml:"source"`
	Feed     FeedConfig     `yaml:"feed"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig describes the article store connection.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// SourceConfig selects where the homepage reads articles from. An empty
// RemoteURL means the local store.
type SourceConfig struct {
	RemoteURL string        `yaml:"remoteUrl"`
	Timeout   time.Duration `yaml:"timeout"`
}

// FeedConfig sizes the homepage slates and the raw fetches behind them.
type FeedConfig struct {
	TopHighlights      int           `yaml:"topHighlights"`
	SidebarHighlights  int           `yaml:"sidebarHighlights"`
	Latest             int           `yaml:"latest"`
	EditorPicks        int           `yaml:"editorPicks"`
	CategoryBlockSplit int           `yaml:"categoryBlockSplit"`
	EmptySlateFallback *bool         `yaml:"emptySlateFallback"`
	FetchTopHighlights int           `yaml:"fetchTopHighlights"`
	FetchTrending      int           `yaml:"fetchTrending"`
	FetchLatest        int           `yaml:"fetchLatest"`
	FetchEditorPicks   int           `yaml:"fetchEditorPicks"`
	LimitPerCategory   int           `yaml:"limitPerCategory"`
	FetchTimeout       time.Duration `yaml:"fetchTimeout"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Policy converts the feed section into composer settings.
func (f FeedConfig) Policy() feed.Policy {
	fallback := true
	if f.EmptySlateFallback != nil {
		fallback = *f.EmptySlateFallback
	}
	return feed.Policy{
		TopHighlights:      f.TopHighlights,
		SidebarHighlights:  f.SidebarHighlights,
		Latest:             f.Latest,
		EditorPicks:        f.EditorPicks,
		CategoryBlockSplit: f.CategoryBlockSplit,
		EmptySlateFallback: fallback,
	}
}

// Limits converts the feed section into fetch sizes.
func (f FeedConfig) Limits() usecase.FetchLimits {
	return usecase.FetchLimits{
		TopHighlights:    f.FetchTopHighlights,
		Trending:         f.FetchTrending,
		Latest:           f.FetchLatest,
		EditorPicks:      f.FetchEditorPicks,
		LimitPerCategory: f.LimitPerCategory,
		Timeout:          f.FetchTimeout,
	}
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if fileCfg, err := Parse(raw); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Parse decodes a YAML document without applying defaults.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDriverEnv); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(httpAddrEnv); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(logFormatEnv); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(sourceURLEnv); v != "" {
		c.Source.RemoteURL = v
	}
	if v := os.Getenv(fallbackEnv); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Feed.EmptySlateFallback = &enabled
		} else {
			log.Printf("config: invalid %s=%q, keeping %v", fallbackEnv, v, c.Feed.Policy().EmptySlateFallback)
		}
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.Driver != "" {
		base.Database.Driver = override.Database.Driver
	}
	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.HTTP.Addr != "" {
		base.HTTP.Addr = override.HTTP.Addr
	}
	if override.HTTP.ReadTimeout > 0 {
		base.HTTP.ReadTimeout = override.HTTP.ReadTimeout
	}
	if override.HTTP.WriteTimeout > 0 {
		base.HTTP.WriteTimeout = override.HTTP.WriteTimeout
	}
	if override.HTTP.ShutdownTimeout > 0 {
		base.HTTP.ShutdownTimeout = override.HTTP.ShutdownTimeout
	}

	if override.Source.RemoteURL != "" {
		base.Source.RemoteURL = override.Source.RemoteURL
	}
	if override.Source.Timeout > 0 {
		base.Source.Timeout = override.Source.Timeout
	}

	base.Feed = mergeFeed(base.Feed, override.Feed)

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	return base
}

func mergeFeed(base, override FeedConfig) FeedConfig {
	positive := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	positive(&base.TopHighlights, override.TopHighlights)
	positive(&base.SidebarHighlights, override.SidebarHighlights)
	positive(&base.Latest, override.Latest)
	positive(&base.EditorPicks, override.EditorPicks)
	positive(&base.CategoryBlockSplit, override.CategoryBlockSplit)
	positive(&base.FetchTopHighlights, override.FetchTopHighlights)
	positive(&base.FetchTrending, override.FetchTrending)
	positive(&base.FetchLatest, override.FetchLatest)
	positive(&base.FetchEditorPicks, override.FetchEditorPicks)
	positive(&base.LimitPerCategory, override.LimitPerCategory)

	if override.EmptySlateFallback != nil {
		base.EmptySlateFallback = override.EmptySlateFallback
	}
	if override.FetchTimeout > 0 {
		base.FetchTimeout = override.FetchTimeout
	}
	return base
}

func defaultConfig() Config {
	policy := feed.DefaultPolicy()
	limits := usecase.DefaultFetchLimits()
	fallback := policy.EmptySlateFallback

	return Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: "file:newsdesk.db?_pragma=journal_mode(WAL)"},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Source: SourceConfig{Timeout: 5 * time.Second},
		Feed: FeedConfig{
			TopHighlights:      policy.TopHighlights,
			SidebarHighlights:  policy.SidebarHighlights,
			Latest:             policy.Latest,
			EditorPicks:        policy.EditorPicks,
			CategoryBlockSplit: policy.CategoryBlockSplit,
			EmptySlateFallback: &fallback,
			FetchTopHighlights: limits.TopHighlights,
			FetchTrending:      limits.Trending,
			FetchLatest:        limits.Latest,
			FetchEditorPicks:   limits.EditorPicks,
			LimitPerCategory:   limits.LimitPerCategory,
			FetchTimeout:       limits.Timeout,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}
