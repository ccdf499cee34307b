package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/ffj-site/internal/store"
)

// Key prefixes for the cached content families. Invalidation works on the
// whole family so a write never leaves a stale variant behind.
const (
	PrefixProjects = "projects"
	PrefixNews     = "news"
	PrefixPages    = "pages"
	PrefixAlbums   = "albums"
)

// Content caches serialized public responses keyed by entity family.
type Content struct {
	cache Cacher
	ttl   time.Duration
}

// NewContent creates a content cache over the given backend.
func NewContent(cache Cacher, ttl time.Duration) *Content {
	return &Content{cache: cache, ttl: ttl}
}

// NewsListKey builds a deterministic cache key for a news listing filter.
func NewsListKey(f store.NewsFilter) string {
	parts := []string{PrefixNews, "list",
		"status=" + f.Status,
		"q=" + strings.ToLower(f.Search),
		"category=" + f.Category,
		"year=" + strconv.Itoa(f.Year),
		"tags=" + strings.Join(f.Tags, ","),
		"limit=" + strconv.Itoa(f.Limit),
	}
	return strings.Join(parts, ":")
}

// ProjectListKey is the cache key for the full project listing.
func ProjectListKey() string {
	return PrefixProjects + ":list"
}

// PageKey is the cache key for a single page by slug.
func PageKey(slug string) string {
	return PrefixPages + ":slug:" + slug
}

// AlbumKey is the cache key for a single album with photos.
func AlbumKey(id string) string {
	return PrefixAlbums + ":id:" + id
}

// Get retrieves a cached value into dst. Returns false on a miss or when the
// stored payload cannot be decoded.
func (c *Content) Get(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// Set stores a value under key. Errors are swallowed: the cache is an
// optimization, never a source of truth.
func (c *Content) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.cache.Set(ctx, key, data, c.ttl)
}

// InvalidateProjects drops all cached project responses.
func (c *Content) InvalidateProjects(ctx context.Context) {
	if c != nil {
		_ = c.cache.DeleteByPrefix(ctx, PrefixProjects)
	}
}

// InvalidateNews drops all cached news responses.
func (c *Content) InvalidateNews(ctx context.Context) {
	if c != nil {
		_ = c.cache.DeleteByPrefix(ctx, PrefixNews)
	}
}

// InvalidatePages drops all cached page responses.
func (c *Content) InvalidatePages(ctx context.Context) {
	if c != nil {
		_ = c.cache.DeleteByPrefix(ctx, PrefixPages)
	}
}

// InvalidateAlbums drops all cached album responses.
func (c *Content) InvalidateAlbums(ctx context.Context) {
	if c != nil {
		_ = c.cache.DeleteByPrefix(ctx, PrefixAlbums)
	}
}

// Close releases the underlying cache backend.
func (c *Content) Close() error {
	if c == nil {
		return nil
	}
	return c.cache.Close()
}
