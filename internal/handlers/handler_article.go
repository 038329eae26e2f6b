package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/arkival/article_archiver_app/internal/core/ports/services"
	"github.com/arkival/article_archiver_app/internal/dto"
	"github.com/arkival/article_archiver_app/internal/middleware"
)

// articleHandler handles HTTP requests related to articles.
type articleHandler struct {
	articleService portssvc.ArticleSvcFacade
}

func newArticleHandler(as portssvc.ArticleSvcFacade) *articleHandler {
	return &articleHandler{articleService: as}
}

// registerArticleRoutes registers all article-related routes.
func registerArticleRoutes(rg *gin.RouterGroup, articleService portssvc.ArticleSvcFacade) {
	h := newArticleHandler(articleService)

	articles := rg.Group("/articles")
	{
		articles.GET("", h.listArticles)
		articles.GET("/stats", h.getStats)
		articles.GET("/:id", h.getArticle)
		articles.POST("", h.createArticle)
		articles.PUT("/:id", h.updateArticle)
		articles.DELETE("/:id", h.deleteArticle)
		articles.POST("/:id/view", h.recordView)
		articles.POST("/:id/bookmark", h.addBookmark)
		articles.DELETE("/:id/bookmark", h.removeBookmark)
	}
}

// listArticles godoc
// @Summary List articles
// @Description Retrieves a filtered, paginated article list, newest first.
// @Tags articles
// @Produce json
// @Param categoryID query string false "Filter by category ID"
// @Param status query string false "Filter by status"
// @Param publicOnly query bool false "Only public, non-archived articles"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} domain.Article
// @Security BearerAuth
// @Router /articles [get]
func (h *articleHandler) listArticles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListArticlesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	articles, err := h.articleService.ListArticles(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list articles")
		return
	}
	c.JSON(http.StatusOK, articles)
}

// getStats godoc
// @Summary Get article statistics
// @Description Computes collection-wide counters and averages.
// @Tags articles
// @Produce json
// @Success 200 {object} domain.ArticleStats
// @Security BearerAuth
// @Router /articles/stats [get]
func (h *articleHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stats, err := h.articleService.GetStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute article stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// getArticle godoc
// @Summary Get article by ID
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} domain.Article
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /articles/{id} [get]
func (h *articleHandler) getArticle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	article, err := h.articleService.GetArticleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to fetch article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// createArticle godoc
// @Summary Archive an article
// @Description Archives a new article. The source domain is derived from the URL.
// @Tags articles
// @Accept json
// @Produce json
// @Param article body dto.CreateArticleRequest true "Article details"
// @Success 201 {object} domain.Article
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "URL already archived"
// @Security BearerAuth
// @Router /articles [post]
func (h *articleHandler) createArticle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create article")
		return
	}
	c.JSON(http.StatusCreated, article)
}

// updateArticle godoc
// @Summary Update article
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param article body dto.UpdateArticleRequest true "Fields to update"
// @Success 200 {object} domain.Article
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /articles/{id} [put]
func (h *articleHandler) updateArticle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), c.Param("id"), req, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// deleteArticle godoc
// @Summary Delete article
// @Tags articles
// @Param id path string true "Article ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /articles/{id} [delete]
func (h *articleHandler) deleteArticle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.articleService.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete article")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordView godoc
// @Summary Record a view
// @Tags articles
// @Param id path string true "Article ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /articles/{id}/view [post]
func (h *articleHandler) recordView(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.articleService.RecordView(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to record view")
		return
	}
	c.Status(http.StatusNoContent)
}

// addBookmark godoc
// @Summary Bookmark article
// @Tags articles
// @Param id path string true "Article ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /articles/{id}/bookmark [post]
func (h *articleHandler) addBookmark(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.articleService.AddBookmark(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to add bookmark")
		return
	}
	c.Status(http.StatusNoContent)
}

// removeBookmark godoc
// @Summary Remove bookmark
// @Description Decrements the bookmark counter, never below zero.
// @Tags articles
// @Param id path string true "Article ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /articles/{id}/bookmark [delete]
func (h *articleHandler) removeBookmark(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.articleService.RemoveBookmark(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to remove bookmark")
		return
	}
	c.Status(http.StatusNoContent)
}
