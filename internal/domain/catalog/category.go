package catalog

import (
	"time"

	"github.com/gestock/backend/internal/domain/shared"
)

// Category groups products for display and reporting
type Category struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if name == "" {
		return nil, shared.NewValidationError("Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewValidationError("Category name cannot exceed 100 characters")
	}

	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Rename updates the category name
func (c *Category) Rename(name string) error {
	if name == "" {
		return shared.NewValidationError("Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}
