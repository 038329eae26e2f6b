package services

import (
	"context"

	"github.com/arkival/article_archiver_app/internal/core/domain"
	"github.com/arkival/article_archiver_app/internal/dto"
)

// ArticleReaderSvc defines read operations for article data.
type ArticleReaderSvc interface {
	// GetArticleByID retrieves an article by ID.
	GetArticleByID(ctx context.Context, articleID string) (*domain.Article, error)

	// GetArticleByURL retrieves an article by its unique URL.
	GetArticleByURL(ctx context.Context, url string) (*domain.Article, error)

	// ListArticles retrieves a filtered, paginated list of articles.
	ListArticles(ctx context.Context, params dto.ListArticlesParams) ([]domain.Article, error)

	// GetStats computes aggregate statistics over the article collection.
	GetStats(ctx context.Context) (*domain.ArticleStats, error)
}

// ArticleWriterSvc defines write operations for article data.
type ArticleWriterSvc interface {
	// CreateArticle archives a new article.
	CreateArticle(ctx context.Context, req dto.CreateArticleRequest, creatorUserID string) (*domain.Article, error)

	// UpdateArticle updates an existing article, stamping the update date.
	UpdateArticle(ctx context.Context, articleID string, req dto.UpdateArticleRequest, updaterUserID string) (*domain.Article, error)

	// DeleteArticle removes an article record.
	DeleteArticle(ctx context.Context, articleID string) error

	// RecordView bumps the article's view counter.
	RecordView(ctx context.Context, articleID string) error

	// AddBookmark bumps the article's bookmark counter.
	AddBookmark(ctx context.Context, articleID string) error

	// RemoveBookmark decrements the article's bookmark counter.
	RemoveBookmark(ctx context.Context, articleID string) error
}

// ArticleSvcFacade combines all article-related service interfaces.
type ArticleSvcFacade interface {
	ArticleReaderSvc
	ArticleWriterSvc
}
