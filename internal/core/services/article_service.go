package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/arkival/article_archiver_app/internal/apperrors"
	"github.com/arkival/article_archiver_app/internal/core/domain"
	portsrepo "github.com/arkival/article_archiver_app/internal/core/ports/repositories"
	portssvc "github.com/arkival/article_archiver_app/internal/core/ports/services"
	"github.com/arkival/article_archiver_app/internal/dto"
	"github.com/arkival/article_archiver_app/internal/validation"
	"github.com/google/uuid"
)

const defaultTrustScore = 50

// articleService owns article records and their engagement counters. It
// leans on the category service for stats refreshes and the user service
// for per-user counters.
type articleService struct {
	articleRepo portsrepo.ArticleRepositoryFacade
	categorySvc portssvc.CategoryWriterSvc
	userSvc     portssvc.UserWriterSvc
	logger      *slog.Logger
}

// NewArticleService creates a new article service.
func NewArticleService(articleRepo portsrepo.ArticleRepositoryFacade, categorySvc portssvc.CategoryWriterSvc, userSvc portssvc.UserWriterSvc, logger *slog.Logger) portssvc.ArticleSvcFacade {
	return &articleService{
		articleRepo: articleRepo,
		categorySvc: categorySvc,
		userSvc:     userSvc,
		logger:      logger,
	}
}

var _ portssvc.ArticleSvcFacade = (*articleService)(nil)

func (s *articleService) GetArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	return s.articleRepo.FindArticleByID(ctx, articleID)
}

func (s *articleService) GetArticleByURL(ctx context.Context, rawURL string) (*domain.Article, error) {
	return s.articleRepo.FindArticleByURL(ctx, rawURL)
}

func (s *articleService) ListArticles(ctx context.Context, params dto.ListArticlesParams) ([]domain.Article, error) {
	filter := portsrepo.ArticleListFilter{
		CategoryID: params.CategoryID,
		Status:     domain.ArticleStatus(params.Status),
		PublicOnly: params.PublicOnly,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	articles, err := s.articleRepo.FindArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

func (s *articleService) GetStats(ctx context.Context) (*domain.ArticleStats, error) {
	stats, err := s.articleRepo.GetArticleStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute article stats: %w", err)
	}
	return stats, nil
}

// CreateArticle archives a new article. The source is derived from the URL
// host; URL uniqueness is enforced by the record store.
func (s *articleService) CreateArticle(ctx context.Context, req dto.CreateArticleRequest, creatorUserID string) (*domain.Article, error) {
	if fieldErrs := validation.ValidateStruct(req); fieldErrs != nil {
		return nil, validationError(fieldErrs)
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: url must be a valid URL", apperrors.ErrValidation)
	}
	sourceDomain := strings.ToLower(strings.TrimPrefix(parsed.Host, "www."))
	siteName := req.SiteName
	if siteName == "" {
		siteName = sourceDomain
	}
	language := req.Language
	if language == "" {
		language = "en"
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	now := time.Now()
	article := domain.Article{
		ArticleID:   uuid.NewString(),
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		AddedDate:   now,
		UpdatedDate: now,
		Source: domain.ArticleSource{
			Domain:     sourceDomain,
			SiteName:   siteName,
			TrustScore: defaultTrustScore,
		},
		Content: domain.ArticleContent{
			RawHTML:  req.RawHTML,
			Language: strings.ToLower(language),
		},
		Metadata: domain.ArticleMetadata{
			Author:     req.Author,
			AuthorURL:  req.AuthorURL,
			Tags:       lowercaseAll(req.Tags),
			Categories: req.Categories,
			CustomTags: req.CustomTags,
		},
		Classification: domain.ArticleClassification{
			Sentiment: domain.Sentiment{Label: "neutral"},
			Quality:   50,
		},
		Scraping: domain.ArticleScraping{
			Method: "manual",
		},
		Status: domain.StatusPending,
		Flags: domain.ArticleFlags{
			IsPublic: isPublic,
		},
		CreatedBy: creatorUserID,
	}

	if err := s.articleRepo.SaveArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to save article: %w", err)
	}

	// Derived counters are eventually consistent; failures never undo the save.
	if creatorUserID != "" {
		if err := s.userSvc.RecordArticleAdded(ctx, creatorUserID); err != nil {
			s.logger.Warn("Failed to bump user article counter",
				slog.String("user_id", creatorUserID), slog.String("error", err.Error()))
		}
	}
	for _, categoryID := range article.Metadata.Categories {
		s.categorySvc.RefreshStats(ctx, categoryID)
	}

	return &article, nil
}

// UpdateArticle applies the provided fields, stamps the update time and
// refreshes stats for every category whose membership changed.
func (s *articleService) UpdateArticle(ctx context.Context, articleID string, req dto.UpdateArticleRequest, updaterUserID string) (*domain.Article, error) {
	if fieldErrs := validation.ValidateStruct(req); fieldErrs != nil {
		return nil, validationError(fieldErrs)
	}

	article, err := s.articleRepo.FindArticleByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	previousCategories := article.Metadata.Categories

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Tags != nil {
		article.Metadata.Tags = lowercaseAll(*req.Tags)
	}
	if req.Categories != nil {
		article.Metadata.Categories = *req.Categories
	}
	if req.CustomTags != nil {
		article.Metadata.CustomTags = *req.CustomTags
	}
	if req.Status != nil {
		article.Status = *req.Status
	}
	if req.IsPublic != nil {
		article.Flags.IsPublic = *req.IsPublic
	}
	if req.IsArchived != nil {
		article.Flags.IsArchived = *req.IsArchived
	}
	if req.NeedsReview != nil {
		article.Flags.NeedsReview = *req.NeedsReview
	}
	article.UpdatedDate = time.Now()
	article.UpdatedBy = updaterUserID

	if err := s.articleRepo.UpdateArticle(ctx, *article); err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	for _, categoryID := range unionOf(previousCategories, article.Metadata.Categories) {
		s.categorySvc.RefreshStats(ctx, categoryID)
	}
	return article, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, articleID string) error {
	article, err := s.articleRepo.FindArticleByID(ctx, articleID)
	if err != nil {
		return err
	}
	if err := s.articleRepo.DeleteArticle(ctx, articleID); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	for _, categoryID := range article.Metadata.Categories {
		s.categorySvc.RefreshStats(ctx, categoryID)
	}
	return nil
}

func (s *articleService) RecordView(ctx context.Context, articleID string) error {
	return s.articleRepo.IncrementViews(ctx, articleID)
}

func (s *articleService) AddBookmark(ctx context.Context, articleID string) error {
	return s.articleRepo.AdjustBookmarks(ctx, articleID, 1)
}

func (s *articleService) RemoveBookmark(ctx context.Context, articleID string) error {
	return s.articleRepo.AdjustBookmarks(ctx, articleID, -1)
}

func lowercaseAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

func unionOf(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
