package services

import (
	"context"

	"github.com/arkival/article_archiver_app/internal/core/domain"
	"github.com/arkival/article_archiver_app/internal/dto"
)

// CategoryReaderSvc defines read operations for category data.
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a category by ID.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// GetCategoryBySlug retrieves a category by slug.
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// ListCategories retrieves all categories sorted by name ascending.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// GetHierarchy builds the nested category forest from the flat set.
	GetHierarchy(ctx context.Context) ([]*domain.CategoryNode, error)

	// GetTopCategories retrieves root categories with the most articles.
	GetTopCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data.
type CategoryWriterSvc interface {
	// CreateCategory creates a new category, generating a slug from the
	// name when none is supplied.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)

	// UpdateCategory updates an existing category.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category, rejecting the deletion while the
	// category still has subcategories or referencing articles.
	DeleteCategory(ctx context.Context, categoryID string) error

	// RefreshStats recomputes the category's denormalized article count.
	// Failures are logged and swallowed; it never fails the caller.
	RefreshStats(ctx context.Context, categoryID string)
}

// CategorySvcFacade combines all category-related service interfaces.
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
