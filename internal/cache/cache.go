// Package cache memoizes rendered overlay buffers. It is the
// synchronization boundary between the frame-delivery context (Peek)
// and the render context (Get): concurrent misses for one key collapse
// into a single render, and the frame path never waits on one.
package cache

import (
	"fmt"
	"image"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/ivlev/camoverlay/internal/preset"
	"github.com/ivlev/camoverlay/internal/theme"
)

// Key uniquely identifies one renderable overlay state.
type Key struct {
	PresetID string
	Theme    theme.Theme
	Content  uint64
	Width    int
	Height   int
	Scale    float64
}

// KeyOf derives the cache key from a render request.
func KeyOf(p preset.Props) Key {
	return Key{
		PresetID: p.PresetID,
		Theme:    p.Theme,
		Content:  p.ContentHash(),
		Width:    p.Width,
		Height:   p.Height,
		Scale:    p.Scale,
	}
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%016x|%dx%d|%g", k.PresetID, k.Theme, k.Content, k.Width, k.Height, k.Scale)
}

// Renderer produces the pixel buffer for a request on a cache miss.
type Renderer interface {
	Render(preset.Props) (*image.RGBA, error)
}

// Cache is a bounded LRU of rendered overlays. Evicted buffers are not
// recycled into a pool: the frame path may still hold a reference for
// the duration of a frame.
type Cache struct {
	store    *lru.Cache[Key, *image.RGBA]
	group    singleflight.Group
	renderer Renderer

	renders atomic.Int64
	hits    atomic.Int64
	misses  atomic.Int64
}

// DefaultCapacity bounds the key space against rapid resize events.
const DefaultCapacity = 8

func New(r Renderer, capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	store, err := lru.New[Key, *image.RGBA](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{store: store, renderer: r}, nil
}

// Peek is the frame-path lookup: it returns the cached buffer for the
// request, or nil without doing any work. It never renders and never
// blocks on a render in flight.
func (c *Cache) Peek(p preset.Props) *image.RGBA {
	buf, ok := c.store.Get(KeyOf(p))
	if !ok {
		c.misses.Add(1)
		return nil
	}
	c.hits.Add(1)
	return buf
}

// Get returns the buffer for the request, rendering on a miss.
// Concurrent calls for an identical key collapse into one render; every
// caller observes the same buffer. A failed render is not stored, so
// the key is retried only on the next distinct request.
func (c *Cache) Get(p preset.Props) (*image.RGBA, error) {
	key := KeyOf(p)
	if buf, ok := c.store.Get(key); ok {
		c.hits.Add(1)
		return buf, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		// A racing caller may have stored the buffer between the miss
		// and this slot being granted.
		if buf, ok := c.store.Get(key); ok {
			return buf, nil
		}
		c.renders.Add(1)
		buf, err := c.renderer.Render(p)
		if err != nil {
			return nil, err
		}
		c.store.Add(key, buf)
		return buf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*image.RGBA), nil
}

// RetainPreset drops every entry that belongs to a different preset.
// Called on preset change; stale-geometry entries of the active preset
// are left to LRU.
func (c *Cache) RetainPreset(presetID string) {
	for _, k := range c.store.Keys() {
		if k.PresetID != presetID {
			c.store.Remove(k)
		}
	}
}

// Purge drops everything.
func (c *Cache) Purge() {
	c.store.Purge()
}

// Renders reports how many renders have actually executed.
func (c *Cache) Renders() int64 { return c.renders.Load() }

// Hits reports cache hits across Get and Peek.
func (c *Cache) Hits() int64 { return c.hits.Load() }

// Misses reports cache misses across Get and Peek.
func (c *Cache) Misses() int64 { return c.misses.Load() }

// Len reports the number of cached buffers.
func (c *Cache) Len() int { return c.store.Len() }
