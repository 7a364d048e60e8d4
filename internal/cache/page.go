// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed full-page HTML cache. When a public
// page is rendered, the resulting HTML is stored in Valkey so subsequent
// requests skip the DB queries and template execution entirely. Post
// mutations invalidate the affected keys explicitly; the TTL is only a
// backstop.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix namespaces cached pages in Valkey.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages full-page HTML caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a page key. Returns false on miss.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single page from the cache by its key.
func (pc *PageCache) Invalidate(ctx context.Context, key string) error {
	if err := pc.client.Del(ctx, pageKeyPrefix+key).Err(); err != nil {
		return err
	}
	slog.Debug("page cache invalidated", "key", key)
	return nil
}

// HomepageKey returns the cache key for the homepage.
func HomepageKey() string {
	return "_homepage"
}

// AdminKey returns the cache key for the admin post listing. The admin
// pages themselves are rendered live; mutations still emit this key so
// the invalidation log captures the full set of affected paths.
func AdminKey() string {
	return "_admin"
}

// SlugKey returns the cache key for a post's public page. The prefix
// keeps admin-entered slugs like "_homepage" or "category:x" from
// aliasing the reserved keys.
func SlugKey(slug string) string {
	return "post:" + slug
}

// CategoryKey returns the cache key for a category listing page.
func CategoryKey(slug string) string {
	return "category:" + slug
}
