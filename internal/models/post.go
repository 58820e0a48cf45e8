// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PostType selects between a short feed-style update and a long article.
type PostType string

const (
	PostTypeShort PostType = "short"
	PostTypeLong  PostType = "long"
)

// Valid reports whether t is one of the known post types.
func (t PostType) Valid() bool {
	return t == PostTypeShort || t == PostTypeLong
}

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// Valid reports whether s is one of the known post statuses.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished || s == PostStatusArchived
}

// GalleryItem is one image of a post gallery.
type GalleryItem struct {
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption,omitempty"`
}

// Post is a candidate's publication.
//
// LikesCount and CommentsCount are denormalized: they are recomputed from the
// live reaction/comment rows by the engagement engine after every relevant
// mutation and must never be written through the API.
type Post struct {
	ID               uint                             `gorm:"primaryKey" json:"id"`
	Title            string                           `gorm:"not null" json:"title"`
	Type             PostType                         `gorm:"type:varchar(8);not null;default:short" json:"type"`
	Content          string                           `gorm:"type:text;not null" json:"content"`
	Excerpt          string                           `gorm:"type:text" json:"excerpt,omitempty"`
	FeaturedImageURL string                           `json:"featured_image_url,omitempty"`
	Gallery          datatypes.JSONSlice[GalleryItem] `json:"gallery,omitempty"`
	AuthorID         uint                             `gorm:"not null;index" json:"author_id"`
	Author           User                             `gorm:"foreignKey:AuthorID" json:"author"`
	Categories       []Category                       `gorm:"many2many:post_categories" json:"categories,omitempty"`
	Tags             datatypes.JSONSlice[string]      `json:"tags,omitempty"`
	Status           PostStatus                       `gorm:"type:varchar(12);not null;default:draft;index" json:"status"`
	PublishedAt      *time.Time                       `json:"published_at,omitempty"`
	AllowComments    bool                             `gorm:"not null;default:true" json:"allow_comments"`
	IsPinned         bool                             `gorm:"not null;default:false" json:"is_pinned"`
	LikesCount       int                              `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount    int                              `gorm:"not null;default:0" json:"comments_count"`
	ViewsCount       int                              `gorm:"not null;default:0" json:"views_count"`
	CreatedAt        time.Time                        `json:"created_at"`
	UpdatedAt        time.Time                        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt                   `gorm:"index" json:"-"`
}
