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

// UserRepository implements the user repository ports backed by MongoDB.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(database.UsersCollection)}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return nil, mapFindError(err, "user")
	}
	return &user, nil
}

// FindUserByIdentifier matches the identifier against username or email and
// only ever returns active accounts.
func (r *UserRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"username": identifier},
			bson.M{"email": identifier},
		},
		"isActive": true,
	}
	var user domain.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, mapFindError(err, "user")
	}
	return &user, nil
}

func (r *UserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]domain.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	return mapWriteError(err, "user")
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.UserID}, user)
	if err != nil {
		return mapWriteError(err, "user")
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) IncrementArticlesAdded(ctx context.Context, userID string) error {
	update := bson.M{
		"$inc": bson.M{"stats.articlesAdded": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to increment articles added: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	update := bson.M{"$set": bson.M{"stats.lastLogin": at, "updatedAt": at}}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// tokenUpsertPipeline builds the aggregation-pipeline update that drops
// stored tokens of the new token's kind and appends the new token, leaving
// other kinds untouched.
func tokenUpsertPipeline(token domain.AuthToken) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "tokens", Value: bson.D{
				{Key: "$concatArrays", Value: bson.A{
					bson.D{{Key: "$filter", Value: bson.D{
						{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$tokens", bson.A{}}}}},
						{Key: "as", Value: "t"},
						{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$t.kind", token.Kind}}}},
					}}},
					bson.A{token},
				}},
			}},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	}
}

// UpsertAuthToken replaces any stored token of the same kind in a single
// update, so concurrent upserts of different kinds never lose each other.
func (r *UserRepository) UpsertAuthToken(ctx context.Context, userID string, token domain.AuthToken) error {
	result, err := r.collection.UpdateByID(ctx, userID, tokenUpsertPipeline(token))
	if err != nil {
		return fmt.Errorf("failed to upsert auth token: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) RemoveAuthToken(ctx context.Context, userID string, token string) error {
	update := bson.M{
		"$pull": bson.M{"tokens": bson.M{"token": token}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to remove auth token: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) DeactivateUser(ctx context.Context, userID string) error {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
