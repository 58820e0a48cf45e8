// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentStatusPublic   CommentStatus = "public"
	CommentStatusHidden   CommentStatus = "hidden"
	CommentStatusReported CommentStatus = "reported"
)

// Comment is a reader's response to a post.  One level of threading is
// supported through ParentCommentID.
//
// LikesCount and RepliesCount are denormalized and owned by the engagement
// engine; authors cannot write them.
type Comment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Content         string         `gorm:"type:text;not null" json:"content"`
	AuthorID        uint           `gorm:"not null;index" json:"author_id"`
	Author          User           `gorm:"foreignKey:AuthorID" json:"author"`
	PostID          uint           `gorm:"not null;index" json:"post_id"`
	ParentCommentID *uint          `gorm:"index" json:"parent_comment_id,omitempty"`
	IsEdited        bool           `gorm:"not null;default:false" json:"is_edited"`
	EditedAt        *time.Time     `json:"edited_at,omitempty"`
	Status          CommentStatus  `gorm:"type:varchar(12);not null;default:public;index" json:"status"`
	LikesCount      int            `gorm:"not null;default:0" json:"likes_count"`
	RepliesCount    int            `gorm:"not null;default:0" json:"replies_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
