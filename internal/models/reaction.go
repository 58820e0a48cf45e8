// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// ReactionType is the kind of reaction a user leaves on a target.
type ReactionType string

const (
	ReactionLike       ReactionType = "like"
	ReactionLove       ReactionType = "love"
	ReactionSupport    ReactionType = "support"
	ReactionCelebrate  ReactionType = "celebrate"
	ReactionInsightful ReactionType = "insightful"
)

// Valid reports whether t is one of the known reaction types.
func (t ReactionType) Valid() bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionSupport, ReactionCelebrate, ReactionInsightful:
		return true
	}
	return false
}

// TargetType discriminates what a reaction points at.
type TargetType string

const (
	TargetTypePost    TargetType = "post"
	TargetTypeComment TargetType = "comment"
)

// Valid reports whether t is one of the known target types.
func (t TargetType) Valid() bool {
	return t == TargetTypePost || t == TargetTypeComment
}

// Reaction records one user's reaction on a post or a comment.  The target is
// a weak (TargetType, TargetID) pointer, not a typed relation; the engagement
// resolver is the single place that dereferences it.
// A user can hold at most one reaction per target.  Rows are hard-deleted so
// the unique index never blocks re-reacting.
type Reaction struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Type       ReactionType `gorm:"type:varchar(16);not null;default:like" json:"type"`
	UserID     uint         `gorm:"not null;uniqueIndex:idx_user_target" json:"user_id"`
	User       User         `gorm:"foreignKey:UserID" json:"user"`
	TargetType TargetType   `gorm:"type:varchar(8);not null;uniqueIndex:idx_user_target;index:idx_target" json:"target_type"`
	TargetID   uint         `gorm:"not null;uniqueIndex:idx_user_target;index:idx_target" json:"target_id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
