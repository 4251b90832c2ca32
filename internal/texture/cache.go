package texture

import (
	"image"
	"sync"
)

// Cache is a concurrency-safe texture cache keyed by file path. Failed
// loads are cached too, so a broken file is decoded once per run.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// Load returns the decoded texture at path.
func (c *Cache) Load(path string) (*image.NRGBA, error) {
	c.mu.RLock()
	if entry, ok := c.items[path]; ok {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	img, err := LoadTexture(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.items[path]; ok {
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img, err
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
