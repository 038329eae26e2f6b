package dto

// CreateCategoryRequest carries the data needed to create a category.
// Slug is optional; when absent it is generated from the name.
type CreateCategoryRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Slug        string   `json:"slug" validate:"omitempty,slug"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Color       string   `json:"color" validate:"omitempty,hexcolor"`
	Icon        string   `json:"icon"`
	ParentID    string   `json:"parentID"`
	AutoTag     bool     `json:"autoTag"`
	Keywords    []string `json:"keywords"`
	DefaultTags []string `json:"defaultTags"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=100"`
	Slug        *string   `json:"slug" validate:"omitempty,slug"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
	Color       *string   `json:"color" validate:"omitempty,hexcolor"`
	Icon        *string   `json:"icon"`
	ParentID    *string   `json:"parentID"`
	AutoTag     *bool     `json:"autoTag"`
	Keywords    *[]string `json:"keywords"`
	DefaultTags *[]string `json:"defaultTags"`
}
