package dto

import "github.com/arkival/article_archiver_app/internal/core/domain"

// CreateArticleRequest carries the data needed to archive an article.
// The source domain is derived from the URL host when not supplied.
type CreateArticleRequest struct {
	URL         string   `json:"url" validate:"required,url"`
	Title       string   `json:"title" validate:"required,max=500"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	SiteName    string   `json:"siteName"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
	CustomTags  []string `json:"customTags"`
	Author      string   `json:"author"`
	AuthorURL   string   `json:"authorUrl" validate:"omitempty,url"`
	RawHTML     string   `json:"rawHtml"`
	Language    string   `json:"language"`
	IsPublic    *bool    `json:"isPublic"`
}

// UpdateArticleRequest defines the data allowed for updating an article.
type UpdateArticleRequest struct {
	Title       *string               `json:"title" validate:"omitempty,max=500"`
	Description *string               `json:"description" validate:"omitempty,max=2000"`
	Tags        *[]string             `json:"tags"`
	Categories  *[]string             `json:"categories"`
	CustomTags  *[]string             `json:"customTags"`
	Status      *domain.ArticleStatus `json:"status" validate:"omitempty,oneof=pending processing processed failed archived"`
	IsPublic    *bool                 `json:"isPublic"`
	IsArchived  *bool                 `json:"isArchived"`
	NeedsReview *bool                 `json:"needsReview"`
}

// ListArticlesParams defines query parameters for listing articles.
type ListArticlesParams struct {
	CategoryID string `form:"categoryID"`
	Status     string `form:"status"`
	PublicOnly bool   `form:"publicOnly"`
	Limit      int    `form:"limit,default=20"`
	Offset     int    `form:"offset,default=0"`
}
