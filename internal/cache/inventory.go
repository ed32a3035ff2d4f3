package cache

import (
	"context"
	"fmt"
	"time"
)

// Feed and recommendation results are never cached; both are assembled
// fresh per request. The cache holds the user row, the per-post liked-by
// summary and the unread notification counter.
const (
	UserKeyPrefix   = "user:%d"
	LikesKeyPrefix  = "post_likes:%d"
	UnreadKeyPrefix = "unread:%d"
)

const (
	UserTTL   = 5 * time.Minute
	LikesTTL  = time.Minute
	UnreadTTL = 15 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func LikesKey(postID uint) string {
	return fmt.Sprintf(LikesKeyPrefix, postID)
}

func UnreadKey(userID uint) string {
	return fmt.Sprintf(UnreadKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateLikes(ctx context.Context, postID uint) {
	Invalidate(ctx, LikesKey(postID))
}
