// Package cache provides read caches backed by Redis or process memory.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mindsacademy/backend/internal/domain/content"
	"github.com/redis/go-redis/v9"
)

const articleKeyPrefix = "content:article:"

// ArticleCache caches published articles by slug to keep the public
// article endpoints off the database. A nil article with nil error
// means cache miss.
type ArticleCache interface {
	Get(ctx context.Context, slug string) (*content.Article, error)
	Set(ctx context.Context, slug string, article *content.Article, ttl time.Duration) error
	Invalidate(ctx context.Context, slug string) error
}

// RedisArticleCache implements ArticleCache using Redis
type RedisArticleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisArticleCache creates a cache with an existing Redis client
func NewRedisArticleCache(client *redis.Client, defaultTTL time.Duration) *RedisArticleCache {
	if defaultTTL == 0 {
		defaultTTL = 5 * time.Minute
	}
	return &RedisArticleCache{
		client: client,
		ttl:    defaultTTL,
	}
}

// Get retrieves an article from cache
func (c *RedisArticleCache) Get(ctx context.Context, slug string) (*content.Article, error) {
	data, err := c.client.Get(ctx, articleKeyPrefix+slug).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read article from cache: %w", err)
	}

	var article content.Article
	if err := json.Unmarshal(data, &article); err != nil {
		// Corrupt entry, treat as a miss and drop it
		c.client.Del(ctx, articleKeyPrefix+slug)
		return nil, nil
	}
	return &article, nil
}

// Set stores an article in cache
func (c *RedisArticleCache) Set(ctx context.Context, slug string, article *content.Article, ttl time.Duration) error {
	if article == nil {
		return nil
	}
	if ttl == 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("failed to serialize article: %w", err)
	}

	if err := c.client.Set(ctx, articleKeyPrefix+slug, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache article: %w", err)
	}
	return nil
}

// Invalidate removes an article from cache, called when an article is
// updated, unpublished or deleted
func (c *RedisArticleCache) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, articleKeyPrefix+slug).Err(); err != nil {
		return fmt.Errorf("failed to invalidate article cache: %w", err)
	}
	return nil
}

// Interface guard
var _ ArticleCache = (*RedisArticleCache)(nil)
