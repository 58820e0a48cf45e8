// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a simple taxonomy entity for posts.  Slug is derived from the
// name on write when not provided.  PostsCount is denormalized and maintained
// by the engagement engine whenever post/category links change.
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"unique;not null" json:"name"`
	Slug        string         `gorm:"unique;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Color       string         `json:"color,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	PostsCount  int            `gorm:"not null;default:0" json:"posts_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
