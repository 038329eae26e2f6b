package services

import (
	"log/slog"

	portsrepo "github.com/arkival/article_archiver_app/internal/core/ports/repositories"
	portssvc "github.com/arkival/article_archiver_app/internal/core/ports/services"
	"github.com/arkival/article_archiver_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, cfg.BcryptCost)
	container.Token = NewTokenService(cfg)

	// The category service reads article counts for its stats cache and
	// deletion guard; the article service triggers category stats refreshes.
	container.Category = NewCategoryService(repos.CategoryRepo, repos.ArticleRepo, logger)
	container.Article = NewArticleService(repos.ArticleRepo, container.Category, container.User, logger)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.UserSvcFacade     = (*userService)(nil)
	_ portssvc.TokenSvcFacade    = (*tokenService)(nil)
	_ portssvc.CategorySvcFacade = (*categoryService)(nil)
	_ portssvc.ArticleSvcFacade  = (*articleService)(nil)
)
