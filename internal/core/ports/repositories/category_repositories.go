package repositories

import (
	"context"
	"time"

	"github.com/arkival/article_archiver_app/internal/core/domain"
)

// CategoryReader defines read operations for category data.
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its ID.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoryBySlug retrieves a category by its slug.
	FindCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// FindCategoriesSortedByName retrieves the full category set, sorted by
	// name ascending. The hierarchy builder depends on this ordering.
	FindCategoriesSortedByName(ctx context.Context) ([]domain.Category, error)

	// FindTopCategories retrieves root categories ordered by article count descending.
	FindTopCategories(ctx context.Context, limit int) ([]domain.Category, error)

	// CountByParentID counts categories whose parent is the given category.
	CountByParentID(ctx context.Context, parentID string) (int64, error)
}

// CategoryWriter defines write operations for category data.
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// UpdateCategoryStats writes the denormalized article count and stamp.
	UpdateCategoryStats(ctx context.Context, categoryID string, articlesCount int64, at time.Time) error

	// DeleteCategory removes a category record.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
