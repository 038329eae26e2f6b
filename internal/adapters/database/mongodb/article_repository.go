package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arkival/article_archiver_app/internal/apperrors"
	"github.com/arkival/article_archiver_app/internal/core/domain"
	portsrepo "github.com/arkival/article_archiver_app/internal/core/ports/repositories"
	"github.com/arkival/article_archiver_app/pkg/database"
)

// ArticleRepository implements the article repository ports backed by MongoDB.
type ArticleRepository struct {
	collection *mongo.Collection
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{collection: db.Collection(database.ArticlesCollection)}
}

var _ portsrepo.ArticleRepositoryFacade = (*ArticleRepository)(nil)

func (r *ArticleRepository) FindArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	var article domain.Article
	err := r.collection.FindOne(ctx, bson.M{"_id": articleID}).Decode(&article)
	if err != nil {
		return nil, mapFindError(err, "article")
	}
	return &article, nil
}

func (r *ArticleRepository) FindArticleByURL(ctx context.Context, url string) (*domain.Article, error) {
	var article domain.Article
	err := r.collection.FindOne(ctx, bson.M{"url": url}).Decode(&article)
	if err != nil {
		return nil, mapFindError(err, "article")
	}
	return &article, nil
}

func (r *ArticleRepository) FindArticles(ctx context.Context, filter portsrepo.ArticleListFilter) ([]domain.Article, error) {
	query := bson.M{}
	if filter.CategoryID != "" {
		query["metadata.categories"] = filter.CategoryID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.PublicOnly {
		query["flags.isPublic"] = true
		query["flags.isArchived"] = false
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "addedDate", Value: -1}}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64(filter.Offset))
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer cursor.Close(ctx)

	articles := make([]domain.Article, 0)
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	return articles, nil
}

func (r *ArticleRepository) CountByCategoryID(ctx context.Context, categoryID string, includeArchived bool) (int64, error) {
	query := bson.M{"metadata.categories": categoryID}
	if !includeArchived {
		query["flags.isArchived"] = false
	}
	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// articleStatsRow is the shape produced by the stats aggregation.
type articleStatsRow struct {
	Total          int64   `bson:"total"`
	Processed      int64   `bson:"processed"`
	Pending        int64   `bson:"pending"`
	Failed         int64   `bson:"failed"`
	AvgWordCount   float64 `bson:"avgWordCount"`
	AvgReadingTime float64 `bson:"avgReadingTime"`
}

func statusCount(status domain.ArticleStatus) bson.D {
	return bson.D{{Key: "$sum", Value: bson.D{
		{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$status", status}}}, 1, 0,
		}},
	}}}
}

// GetArticleStats computes the collection-wide aggregate in a single
// group stage. An empty collection yields the zero value.
func (r *ArticleRepository) GetArticleStats(ctx context.Context) (*domain.ArticleStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "processed", Value: statusCount(domain.StatusProcessed)},
			{Key: "pending", Value: statusCount(domain.StatusPending)},
			{Key: "failed", Value: statusCount(domain.StatusFailed)},
			{Key: "avgWordCount", Value: bson.D{{Key: "$avg", Value: "$content.wordCount"}}},
			{Key: "avgReadingTime", Value: bson.D{{Key: "$avg", Value: "$content.readingTime"}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate article stats: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []articleStatsRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode article stats: %w", err)
	}
	stats := &domain.ArticleStats{}
	if len(rows) > 0 {
		stats.Total = rows[0].Total
		stats.Processed = rows[0].Processed
		stats.Pending = rows[0].Pending
		stats.Failed = rows[0].Failed
		stats.AvgWordCount = rows[0].AvgWordCount
		stats.AvgReadingTime = rows[0].AvgReadingTime
	}
	return stats, nil
}

func (r *ArticleRepository) SaveArticle(ctx context.Context, article domain.Article) error {
	_, err := r.collection.InsertOne(ctx, article)
	return mapWriteError(err, "article")
}

func (r *ArticleRepository) UpdateArticle(ctx context.Context, article domain.Article) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": article.ArticleID}, article)
	if err != nil {
		return mapWriteError(err, "article")
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("article %s: %w", article.ArticleID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *ArticleRepository) DeleteArticle(ctx context.Context, articleID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": articleID})
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("article %s: %w", articleID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *ArticleRepository) IncrementViews(ctx context.Context, articleID string) error {
	result, err := r.collection.UpdateByID(ctx, articleID, bson.M{"$inc": bson.M{"analytics.views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("article %s: %w", articleID, apperrors.ErrNotFound)
	}
	return nil
}

// AdjustBookmarks bumps the bookmark counter. Decrements are guarded so the
// counter never drops below zero; a decrement at zero is a no-op.
func (r *ArticleRepository) AdjustBookmarks(ctx context.Context, articleID string, delta int64) error {
	filter := bson.M{"_id": articleID}
	if delta < 0 {
		filter["analytics.bookmarks"] = bson.M{"$gte": -delta}
	}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"analytics.bookmarks": delta}})
	if err != nil {
		return fmt.Errorf("failed to adjust bookmarks: %w", err)
	}
	if result.MatchedCount == 0 && delta >= 0 {
		return fmt.Errorf("article %s: %w", articleID, apperrors.ErrNotFound)
	}
	return nil
}
