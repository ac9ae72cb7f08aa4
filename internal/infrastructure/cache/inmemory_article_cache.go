package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mindsacademy/backend/internal/domain/content"
)

const cleanupInterval = 30 * time.Second

// InMemoryArticleCache implements ArticleCache using process memory.
// Used in development and in single-instance deployments where Redis
// is not available.
type InMemoryArticleCache struct {
	entries sync.Map // map[string]*articleEntry
	ttl     time.Duration
	stopCh  chan struct{}
	stopped atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
}

type articleEntry struct {
	article   *content.Article
	expiresAt time.Time
}

func (e *articleEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryArticleCache creates a new in-memory article cache
func NewInMemoryArticleCache(defaultTTL time.Duration) *InMemoryArticleCache {
	if defaultTTL == 0 {
		defaultTTL = 5 * time.Minute
	}
	cache := &InMemoryArticleCache{
		ttl:    defaultTTL,
		stopCh: make(chan struct{}),
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves an article from cache
func (c *InMemoryArticleCache) Get(ctx context.Context, slug string) (*content.Article, error) {
	if value, ok := c.entries.Load(slug); ok {
		entry := value.(*articleEntry)
		if !entry.isExpired() {
			c.hits.Add(1)
			return entry.article, nil
		}
		c.entries.Delete(slug)
	}

	c.misses.Add(1)
	return nil, nil
}

// Set stores an article in cache
func (c *InMemoryArticleCache) Set(ctx context.Context, slug string, article *content.Article, ttl time.Duration) error {
	if article == nil {
		return nil
	}
	if ttl == 0 {
		ttl = c.ttl
	}

	c.entries.Store(slug, &articleEntry{
		article:   article,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Invalidate removes an article from cache
func (c *InMemoryArticleCache) Invalidate(ctx context.Context, slug string) error {
	c.entries.Delete(slug)
	return nil
}

// Stats returns hit and miss counters
func (c *InMemoryArticleCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Stop terminates the background cleanup goroutine
func (c *InMemoryArticleCache) Stop() {
	if c.stopped.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
}

func (c *InMemoryArticleCache) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*articleEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		case <-c.stopCh:
			return
		}
	}
}

// Interface guard
var _ ArticleCache = (*InMemoryArticleCache)(nil)
