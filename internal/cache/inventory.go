package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	PostKeyPrefix        = "post:%d"
	PostsPageKeyPrefix   = "posts:page:%d:%d"
	CandidatesKey        = "candidates"
	UnreadCountKeyPrefix = "notifications:unread:%d"
)

const (
	UserTTL        = 5 * time.Minute
	PostTTL        = 30 * time.Minute
	PostsPageTTL   = 1 * time.Minute
	CandidatesTTL  = 10 * time.Minute
	UnreadCountTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func PostsPageKey(limit, offset int) string {
	return fmt.Sprintf(PostsPageKeyPrefix, limit, offset)
}

func UnreadCountKey(userID uint) string {
	return fmt.Sprintf(UnreadCountKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, CandidatesKey)
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	InvalidatePostsList(ctx)
}

// InvalidatePostsList drops every cached posts page.  Pages are keyed by
// limit/offset, so a pattern scan is required.
func InvalidatePostsList(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "posts:page:*", 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

func InvalidateUnreadCount(ctx context.Context, userID uint) {
	Invalidate(ctx, UnreadCountKey(userID))
}
