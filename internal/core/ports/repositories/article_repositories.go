package repositories

import (
	"context"

	"github.com/arkival/article_archiver_app/internal/core/domain"
)

// ArticleListFilter narrows article list queries.
type ArticleListFilter struct {
	CategoryID string
	Status     domain.ArticleStatus
	PublicOnly bool
	Limit      int
	Offset     int
}

// ArticleReader defines read operations for article data.
type ArticleReader interface {
	// FindArticleByID retrieves a specific article by its ID.
	FindArticleByID(ctx context.Context, articleID string) (*domain.Article, error)

	// FindArticleByURL retrieves an article by its unique URL.
	FindArticleByURL(ctx context.Context, url string) (*domain.Article, error)

	// FindArticles retrieves a filtered, paginated list of articles,
	// newest first by added date.
	FindArticles(ctx context.Context, filter ArticleListFilter) ([]domain.Article, error)

	// CountByCategoryID counts articles referencing the category. The stats
	// refresh excludes archived articles; the deletion guard includes them.
	CountByCategoryID(ctx context.Context, categoryID string, includeArchived bool) (int64, error)

	// GetArticleStats computes the aggregate statistics over all articles.
	GetArticleStats(ctx context.Context) (*domain.ArticleStats, error)
}

// ArticleWriter defines write operations for article data.
type ArticleWriter interface {
	// SaveArticle persists a new article.
	SaveArticle(ctx context.Context, article domain.Article) error

	// UpdateArticle updates an existing article.
	UpdateArticle(ctx context.Context, article domain.Article) error

	// DeleteArticle removes an article record.
	DeleteArticle(ctx context.Context, articleID string) error

	// IncrementViews atomically bumps the view counter.
	IncrementViews(ctx context.Context, articleID string) error

	// AdjustBookmarks atomically adjusts the bookmark counter by delta,
	// never going below zero.
	AdjustBookmarks(ctx context.Context, articleID string, delta int64) error
}

// ArticleRepositoryFacade combines all article-related repository interfaces.
type ArticleRepositoryFacade interface {
	ArticleReader
	ArticleWriter
}
