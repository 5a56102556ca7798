package model

// Category is a named grouping of terms. Terms reference categories by
// name, not by id.
type Category struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
}

func (Category) TableName() string {
	return "categories"
}

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest is a partial category update (admin rename).
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
}

// LearningPath is a named curriculum subset of terms. The per-term
// positions live on Term.LearningPaths keyed by this path's ID.
type LearningPath struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}
