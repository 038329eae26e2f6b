package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arkival/article_archiver_app/internal/apperrors"
	"github.com/arkival/article_archiver_app/internal/core/domain"
	portsrepo "github.com/arkival/article_archiver_app/internal/core/ports/repositories"
	portssvc "github.com/arkival/article_archiver_app/internal/core/ports/services"
	"github.com/arkival/article_archiver_app/internal/dto"
	"github.com/arkival/article_archiver_app/internal/utils"
	"github.com/arkival/article_archiver_app/internal/validation"
	"github.com/google/uuid"
)

const (
	defaultCategoryColor = "#3B82F6"
	defaultCategoryIcon  = "📂"
	topCategoriesLimit   = 10
)

// categoryService owns category records, the hierarchy builder, the
// denormalized stats cache and the deletion guard.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
	articleRepo  portsrepo.ArticleReader
	logger       *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, articleRepo portsrepo.ArticleReader, logger *slog.Logger) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		articleRepo:  articleRepo,
		logger:       logger,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryBySlug(ctx, slug)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.FindCategoriesSortedByName(ctx)
}

func (s *categoryService) GetTopCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.FindTopCategories(ctx, topCategoriesLimit)
}

// GetHierarchy converts the flat category set into an ordered forest.
// Records arrive sorted by name; the first pass builds an id→node map, the
// second links children in the same order, so every children list ends up
// name-sorted without a per-level re-sort. A category whose parent is
// missing from the set, or whose parent chain cycles back to itself, is
// promoted to a root: no category ever vanishes from the forest.
func (s *categoryService) GetHierarchy(ctx context.Context) ([]*domain.CategoryNode, error) {
	categories, err := s.categoryRepo.FindCategoriesSortedByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	nodes := make(map[string]*domain.CategoryNode, len(categories))
	parentOf := make(map[string]string, len(categories))
	for i := range categories {
		c := categories[i]
		nodes[c.CategoryID] = &domain.CategoryNode{
			Category: c,
			Children: []*domain.CategoryNode{},
		}
		parentOf[c.CategoryID] = c.ParentID
	}

	roots := make([]*domain.CategoryNode, 0)
	for i := range categories {
		c := categories[i]
		node := nodes[c.CategoryID]
		parent, ok := nodes[c.ParentID]
		if c.ParentID == "" || !ok || inOwnCycle(c.CategoryID, parentOf) {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots, nil
}

// inOwnCycle reports whether walking the parent chain from id returns to id.
// The visited set bounds the walk when the chain runs into a cycle that does
// not contain id itself.
func inOwnCycle(id string, parentOf map[string]string) bool {
	visited := make(map[string]bool)
	cur := parentOf[id]
	for cur != "" && !visited[cur] {
		if cur == id {
			return true
		}
		visited[cur] = true
		cur = parentOf[cur]
	}
	return false
}

// RefreshStats recomputes the denormalized article count for a category.
// This is an eventually-consistent cache of a derived value; failure must
// never fail the operation that triggered the refresh, so errors are logged
// and swallowed.
func (s *categoryService) RefreshStats(ctx context.Context, categoryID string) {
	count, err := s.articleRepo.CountByCategoryID(ctx, categoryID, false)
	if err != nil {
		s.logger.Warn("Failed to count articles for category stats",
			slog.String("category_id", categoryID), slog.String("error", err.Error()))
		return
	}
	if err := s.categoryRepo.UpdateCategoryStats(ctx, categoryID, count, time.Now()); err != nil {
		s.logger.Warn("Failed to update category stats",
			slog.String("category_id", categoryID), slog.String("error", err.Error()))
	}
}

// CreateCategory creates a new category, generating a slug from the name
// when none is supplied.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	if req.Slug == "" {
		req.Slug = utils.Slugify(req.Name)
		if req.Slug == "" {
			return nil, fmt.Errorf("%w: name %q yields an empty slug", apperrors.ErrValidation, req.Name)
		}
	}
	if fieldErrs := validation.ValidateStruct(req); fieldErrs != nil {
		return nil, validationError(fieldErrs)
	}

	color := req.Color
	if color == "" {
		color = defaultCategoryColor
	}
	icon := req.Icon
	if icon == "" {
		icon = defaultCategoryIcon
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       color,
		Icon:        icon,
		ParentID:    req.ParentID,
		Settings: domain.CategorySettings{
			AutoTag:     req.AutoTag,
			Keywords:    req.Keywords,
			DefaultTags: req.DefaultTags,
		},
		Stats: domain.CategoryStats{
			ArticlesCount: 0,
			LastUpdated:   now,
		},
		CreatedBy: creatorUserID,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	if fieldErrs := validation.ValidateStruct(req); fieldErrs != nil {
		return nil, validationError(fieldErrs)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.ParentID != nil {
		category.ParentID = *req.ParentID
	}
	if req.AutoTag != nil {
		category.Settings.AutoTag = *req.AutoTag
	}
	if req.Keywords != nil {
		category.Settings.Keywords = *req.Keywords
	}
	if req.DefaultTags != nil {
		category.Settings.DefaultTags = *req.DefaultTags
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category unless it still has subcategories or
// referencing articles. The checks are not transactional with the delete;
// the record store's own atomicity is all that applies.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
		return err
	}

	subcategories, err := s.categoryRepo.CountByParentID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to count subcategories: %w", err)
	}
	if subcategories > 0 {
		return fmt.Errorf("%w: cannot delete category with subcategories, delete or move subcategories first", apperrors.ErrConflict)
	}

	articles, err := s.articleRepo.CountByCategoryID(ctx, categoryID, true)
	if err != nil {
		return fmt.Errorf("failed to count category articles: %w", err)
	}
	if articles > 0 {
		return fmt.Errorf("%w: cannot delete category with articles, move or delete articles first", apperrors.ErrConflict)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
