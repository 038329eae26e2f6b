package domain

import "time"

// ArticleStatus enumerates processing states of an archived article.
type ArticleStatus string

const (
	StatusPending    ArticleStatus = "pending"
	StatusProcessing ArticleStatus = "processing"
	StatusProcessed  ArticleStatus = "processed"
	StatusFailed     ArticleStatus = "failed"
	StatusArchived   ArticleStatus = "archived"
)

// ArticleSource describes where an article was archived from.
type ArticleSource struct {
	Domain     string `json:"domain" bson:"domain"`
	SiteName   string `json:"siteName" bson:"siteName"`
	Favicon    string `json:"favicon,omitempty" bson:"favicon,omitempty"`
	TrustScore int    `json:"trustScore" bson:"trustScore"`
}

// ArticleImage is an image extracted from article content.
type ArticleImage struct {
	URL     string `json:"url" bson:"url"`
	Alt     string `json:"alt,omitempty" bson:"alt,omitempty"`
	Caption string `json:"caption,omitempty" bson:"caption,omitempty"`
}

// ArticleContent holds the extracted content of an article.
type ArticleContent struct {
	RawHTML       string         `json:"rawHtml,omitempty" bson:"rawHtml,omitempty"`
	ExtractedText string         `json:"extractedText,omitempty" bson:"extractedText,omitempty"`
	CleanText     string         `json:"cleanText,omitempty" bson:"cleanText,omitempty"`
	Images        []ArticleImage `json:"images,omitempty" bson:"images,omitempty"`
	Videos        []string       `json:"videos,omitempty" bson:"videos,omitempty"`
	WordCount     int            `json:"wordCount" bson:"wordCount"`
	ReadingTime   int            `json:"readingTime" bson:"readingTime"`
	Language      string         `json:"language" bson:"language"`
}

// ArticleMetadata holds authorship and tagging metadata.
type ArticleMetadata struct {
	Author     string   `json:"author,omitempty" bson:"author,omitempty"`
	AuthorURL  string   `json:"authorUrl,omitempty" bson:"authorUrl,omitempty"`
	Tags       []string `json:"tags,omitempty" bson:"tags,omitempty"`
	Categories []string `json:"categories,omitempty" bson:"categories,omitempty"` // Category IDs
	CustomTags []string `json:"customTags,omitempty" bson:"customTags,omitempty"`
	ExternalID string   `json:"externalId,omitempty" bson:"externalId,omitempty"`
}

// ClassifiedEntity is a named entity recognized in article content.
type ClassifiedEntity struct {
	Name       string  `json:"name" bson:"name"`
	Type       string  `json:"type" bson:"type"` // person | organization | location | other
	Confidence float64 `json:"confidence" bson:"confidence"`
}

// Sentiment is the overall sentiment of an article.
type Sentiment struct {
	Score float64 `json:"score" bson:"score"` // -1..1
	Label string  `json:"label" bson:"label"` // positive | negative | neutral
}

// ArticleClassification holds derived classification data.
type ArticleClassification struct {
	Topics     []string           `json:"topics,omitempty" bson:"topics,omitempty"`
	Keywords   []string           `json:"keywords,omitempty" bson:"keywords,omitempty"`
	Entities   []ClassifiedEntity `json:"entities,omitempty" bson:"entities,omitempty"`
	Sentiment  Sentiment          `json:"sentiment" bson:"sentiment"`
	Difficulty string             `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	Quality    int                `json:"quality" bson:"quality"`
}

// ArticleScraping records scraping provenance.
type ArticleScraping struct {
	Method      string     `json:"method" bson:"method"` // manual | bulk | scheduled
	Attempts    int        `json:"attempts" bson:"attempts"`
	LastAttempt *time.Time `json:"lastAttempt,omitempty" bson:"lastAttempt,omitempty"`
	Errors      []string   `json:"errors,omitempty" bson:"errors,omitempty"`
}

// ArticleAnalytics holds engagement counters.
type ArticleAnalytics struct {
	Views     int64   `json:"views" bson:"views"`
	Bookmarks int64   `json:"bookmarks" bson:"bookmarks"`
	Shares    int64   `json:"shares" bson:"shares"`
	Rating    float64 `json:"rating" bson:"rating"`
}

// ArticleFlags holds boolean state flags.
type ArticleFlags struct {
	IsDuplicate bool `json:"isDuplicate" bson:"isDuplicate"`
	IsArchived  bool `json:"isArchived" bson:"isArchived"`
	IsPublic    bool `json:"isPublic" bson:"isPublic"`
	NeedsReview bool `json:"needsReview" bson:"needsReview"`
}

// Article represents an archived web article.
type Article struct {
	ArticleID      string                `json:"id" bson:"_id"`
	URL            string                `json:"url" bson:"url"`
	Title          string                `json:"title" bson:"title"`
	Description    string                `json:"description,omitempty" bson:"description,omitempty"`
	PublishDate    *time.Time            `json:"publishDate,omitempty" bson:"publishDate,omitempty"`
	AddedDate      time.Time             `json:"addedDate" bson:"addedDate"`
	UpdatedDate    time.Time             `json:"updatedDate" bson:"updatedDate"`
	Source         ArticleSource         `json:"source" bson:"source"`
	Content        ArticleContent        `json:"content" bson:"content"`
	Metadata       ArticleMetadata       `json:"metadata" bson:"metadata"`
	Classification ArticleClassification `json:"classification" bson:"classification"`
	Scraping       ArticleScraping       `json:"scraping" bson:"scraping"`
	Analytics      ArticleAnalytics      `json:"analytics" bson:"analytics"`
	Status         ArticleStatus         `json:"status" bson:"status"`
	Flags          ArticleFlags          `json:"flags" bson:"flags"`
	CreatedBy      string                `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	UpdatedBy      string                `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
}

// ArticleStats is the fixed-shape aggregate over the article collection.
type ArticleStats struct {
	Total          int64   `json:"total"`
	Processed      int64   `json:"processed"`
	Pending        int64   `json:"pending"`
	Failed         int64   `json:"failed"`
	AvgWordCount   float64 `json:"avgWordCount"`
	AvgReadingTime float64 `json:"avgReadingTime"`
}
