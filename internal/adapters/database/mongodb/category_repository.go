package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arkival/article_archiver_app/internal/apperrors"
	"github.com/arkival/article_archiver_app/internal/core/domain"
	portsrepo "github.com/arkival/article_archiver_app/internal/core/ports/repositories"
	"github.com/arkival/article_archiver_app/pkg/database"
)

// CategoryRepository implements the category repository ports backed by MongoDB.
type CategoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{collection: db.Collection(database.CategoriesCollection)}
}

var _ portsrepo.CategoryRepositoryFacade = (*CategoryRepository)(nil)

// rootFilter matches categories without a parent. Root documents either
// omit the parentID field or carry an empty value.
func rootFilter() bson.M {
	return bson.M{"parentID": bson.M{"$in": bson.A{nil, ""}}}
}

func (r *CategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	var category domain.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category)
	if err != nil {
		return nil, mapFindError(err, "category")
	}
	return &category, nil
}

func (r *CategoryRepository) FindCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&category)
	if err != nil {
		return nil, mapFindError(err, "category")
	}
	return &category, nil
}

func (r *CategoryRepository) FindCategoriesSortedByName(ctx context.Context) ([]domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := make([]domain.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindTopCategories(ctx context.Context, limit int) ([]domain.Category, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "stats.articlesCount", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, rootFilter(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list top categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := make([]domain.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) CountByParentID(ctx context.Context, parentID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"parentID": parentID})
	if err != nil {
		return 0, fmt.Errorf("failed to count subcategories: %w", err)
	}
	return count, nil
}

func (r *CategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	_, err := r.collection.InsertOne(ctx, category)
	return mapWriteError(err, "category")
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": category.CategoryID}, category)
	if err != nil {
		return mapWriteError(err, "category")
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("category %s: %w", category.CategoryID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *CategoryRepository) UpdateCategoryStats(ctx context.Context, categoryID string, articlesCount int64, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"stats.articlesCount": articlesCount,
		"stats.lastUpdated":   at,
	}}
	result, err := r.collection.UpdateByID(ctx, categoryID, update)
	if err != nil {
		return fmt.Errorf("failed to update category stats: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": categoryID})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}
	return nil
}
