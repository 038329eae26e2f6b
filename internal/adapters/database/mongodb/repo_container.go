package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	portsrepo "github.com/arkival/article_archiver_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the MongoDB-backed repositories into the
// provider consumed by the service container.
func NewRepositoryProvider(db *mongo.Database) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:     NewUserRepository(db),
		CategoryRepo: NewCategoryRepository(db),
		ArticleRepo:  NewArticleRepository(db),
	}
}
