package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the application.
const (
	UsersCollection      = "users"
	CategoriesCollection = "categories"
	ArticlesCollection   = "articles"
)

// NewMongoDatabase connects to MongoDB, verifies the connection and ensures
// the unique indexes the application relies on.
func NewMongoDatabase(ctx context.Context, uri string, dbName string) (*mongo.Client, *mongo.Database, error) {
	if uri == "" {
		return nil, nil, fmt.Errorf("mongo URI cannot be empty")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	if err := createIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Successfully connected to MongoDB.")
	return client, db, nil
}

// CloseMongo disconnects the client, logging any error.
func CloseMongo(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v\n", err)
		return
	}
	log.Println("MongoDB connection closed.")
}

// createIndexes ensures the uniqueness constraints enforced by the record store:
// users.username, users.email, categories.name, categories.slug, articles.url.
// Secondary lookup indexes mirror the read paths of the repositories.
func createIndexes(ctx context.Context, db *mongo.Database) error {
	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	ascending := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
	}

	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			unique("username"),
			unique("email"),
			ascending("role"),
			ascending("isActive"),
		},
		CategoriesCollection: {
			unique("name"),
			unique("slug"),
			ascending("parentID"),
		},
		ArticlesCollection: {
			unique("url"),
			ascending("source.domain"),
			ascending("metadata.categories"),
			ascending("metadata.tags"),
			ascending("status"),
			ascending("flags.isPublic"),
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(indexCtx, models); err != nil {
			return fmt.Errorf("collection %s: %w", collection, err)
		}
	}
	return nil
}
