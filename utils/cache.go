package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges cached event responses after mutations. A nil
// redis client turns every purge into a no-op.
type CacheInvalidator struct {
	rdb *redis.Client
}

// NewCacheInvalidator creates an invalidator around the shared redis client
func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator {
	return &CacheInvalidator{rdb: rdb}
}

// PurgeEventLists drops every cached event listing page
func (ci *CacheInvalidator) PurgeEventLists(ctx context.Context) {
	ci.purge(ctx, "cache:events:list:*")
}

// PurgeEventItems drops every cached single-event response. Item keys embed
// a hash of the id, so the purge is by prefix rather than exact key.
func (ci *CacheInvalidator) PurgeEventItems(ctx context.Context) {
	ci.purge(ctx, "cache:events:item:*")
}

func (ci *CacheInvalidator) purge(ctx context.Context, pattern string) {
	if ci == nil || ci.rdb == nil {
		return
	}
	iter := ci.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}
