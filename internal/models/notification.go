// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// NotificationType is the kind of event a notification describes.
type NotificationType string

const (
	NotificationNewCommentOnPost      NotificationType = "new_comment_on_post"
	NotificationReplyToComment        NotificationType = "reply_to_comment"
	NotificationLikeOnPost            NotificationType = "like_on_post"
	NotificationLikeOnComment         NotificationType = "like_on_comment"
	NotificationMentionInPost         NotificationType = "mention_in_post"
	NotificationMentionInComment      NotificationType = "mention_in_comment"
	NotificationNewFollower           NotificationType = "new_follower"
	NotificationFollowedCandidatePost NotificationType = "followed_candidate_post"
	NotificationSystem                NotificationType = "system"
)

// Notification is created exclusively by the engagement engine.  The message
// text is rendered once, at creation time, with the sender's name at that
// instant; it is never recomputed.  Recipients may flip Read and delete their
// own notifications, nothing else.
type Notification struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Type             NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	RecipientID      uint             `gorm:"not null;index" json:"recipient_id"`
	Recipient        User             `gorm:"foreignKey:RecipientID" json:"-"`
	SenderID         *uint            `gorm:"index" json:"sender_id,omitempty"`
	Sender           *User            `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Message          string           `gorm:"not null" json:"message"`
	Read             bool             `gorm:"not null;default:false;index" json:"read"`
	ReadAt           *time.Time       `json:"read_at,omitempty"`
	RelatedPostID    *uint            `json:"related_post_id,omitempty"`
	RelatedCommentID *uint            `json:"related_comment_id,omitempty"`
	ActionURL        string           `json:"action_url,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
