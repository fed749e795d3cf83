package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%s"
	PostKeyPrefix     = "post:%s"
	PostListPrefix    = "posts:%s:v%d:p%d:s%d"
	PostListVerKey    = "posts:list:ver"
	FlaggedPostsKey   = "reports:flagged"
	SanctionKeyPrefix = "sanction:%s"
)

const (
	UserTTL        = 5 * time.Minute
	PostTTL        = 30 * time.Minute
	PostListTTL    = 2 * time.Minute
	FlaggedTTL     = 1 * time.Minute
	SanctionTTL    = 5 * time.Minute
	versionFetchTO = 500 * time.Millisecond
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID string) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func SanctionKey(userID string) string {
	return fmt.Sprintf(SanctionKeyPrefix, userID)
}

// PostListKey builds a list cache key scoped to the current list version, so
// that bumping the version implicitly invalidates every cached page.
func PostListKey(ctx context.Context, postType string, page, size int) string {
	var ver int64
	if client != nil {
		vctx, cancel := context.WithTimeout(ctx, versionFetchTO)
		defer cancel()
		ver, _ = client.Get(vctx, PostListVerKey).Int64()
	}
	return fmt.Sprintf(PostListPrefix, postType, ver, page, size)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID string) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateSanction(ctx context.Context, userID string) {
	Invalidate(ctx, SanctionKey(userID))
}

// InvalidatePostsList bumps the list version; stale pages expire via TTL.
func InvalidatePostsList(ctx context.Context) {
	if client != nil {
		client.Incr(ctx, PostListVerKey)
	}
}

func InvalidateFlaggedPosts(ctx context.Context) {
	Invalidate(ctx, FlaggedPostsKey)
}
