package domain

import "time"

// CategorySettings holds per-category tagging behavior.
type CategorySettings struct {
	AutoTag     bool     `json:"autoTag" bson:"autoTag"`
	Keywords    []string `json:"keywords,omitempty" bson:"keywords,omitempty"`
	DefaultTags []string `json:"defaultTags,omitempty" bson:"defaultTags,omitempty"`
}

// CategoryStats is an eventually-consistent cache of derived counts.
type CategoryStats struct {
	ArticlesCount int64     `json:"articlesCount" bson:"articlesCount"`
	LastUpdated   time.Time `json:"lastUpdated" bson:"lastUpdated"`
}

// Category represents a category record. ParentID is empty for root
// categories; a non-empty ParentID referencing a missing category is
// treated as a root (orphan rule).
type Category struct {
	CategoryID  string           `json:"id" bson:"_id"`
	Name        string           `json:"name" bson:"name"`
	Slug        string           `json:"slug" bson:"slug"`
	Description string           `json:"description,omitempty" bson:"description,omitempty"`
	Color       string           `json:"color" bson:"color"`
	Icon        string           `json:"icon,omitempty" bson:"icon,omitempty"`
	ParentID    string           `json:"parentID,omitempty" bson:"parentID,omitempty"`
	Settings    CategorySettings `json:"settings" bson:"settings"`
	Stats       CategoryStats    `json:"stats" bson:"stats"`
	CreatedBy   string           `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	Timestamps  `bson:",inline"`
}

// CategoryNode is a category together with its nested children, as
// produced by the hierarchy builder.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}
