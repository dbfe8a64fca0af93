package cache

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/gg"
)

const (
	// ShardCount is the number of shards. It is a power of 2 so a shard
	// is selected with a mask.
	ShardCount = 16

	// DefaultCapacity is the default maximum number of rasters per shard.
	DefaultCapacity = 32

	shardMask = ShardCount - 1
)

// ErrEmptyTarget is returned when a raster of zero or negative size is
// requested.
var ErrEmptyTarget = errors.New("cache: raster size must be positive")

// Key identifies a cached raster: a display list, by unique ID, rendered
// at a pixel size.
type Key struct {
	ID            uint32
	Width, Height int
}

// RasterCache holds rendered images of display lists, keyed by
// DisplayList.UniqueID and output size. Display lists are immutable, so a
// cached raster stays valid for as long as the list's ID is in use.
//
// The cache is split into ShardCount LRU shards, each with its own lock,
// and is safe for concurrent use.
type RasterCache struct {
	shards   [ShardCount]*shard
	capacity int
	maxBytes int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard struct {
	mu      sync.Mutex
	entries map[Key]*entry
	lru     lruList
	bytes   int
}

type entry struct {
	img   image.Image
	bytes int
	node  *lruNode
}

// Option configures a RasterCache.
type Option func(*RasterCache)

// WithCapacity sets the maximum number of rasters per shard. Values <= 0
// select DefaultCapacity.
func WithCapacity(n int) Option {
	return func(c *RasterCache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithMaxBytes bounds the pixel memory held by each shard. Zero, the
// default, means only the entry count is bounded.
func WithMaxBytes(n int) Option {
	return func(c *RasterCache) {
		c.maxBytes = max(n, 0)
	}
}

// New creates an empty RasterCache.
func New(opts ...Option) *RasterCache {
	c := &RasterCache{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(c)
	}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[Key]*entry)}
	}
	return c
}

func (c *RasterCache) shardFor(id uint32) *shard {
	return c.shards[id&shardMask]
}

// Get returns the cached raster for key, if any.
func (c *RasterCache) Get(key Key) (image.Image, bool) {
	s := c.shardFor(key.ID)
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		s.lru.MoveToFront(e.node)
	}
	s.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e.img, true
}

// GetOrRender returns the raster of dl at width x height, rendering and
// caching it on a miss. The list's cull rect is scaled to fill the target.
//
// Rendering happens with the shard lock held so concurrent requests for
// the same raster render it once. Render errors are returned and nothing
// is cached.
func (c *RasterCache) GetOrRender(dl *displaylist.DisplayList, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyTarget
	}
	key := Key{ID: dl.UniqueID(), Width: width, Height: height}
	s := c.shardFor(key.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.lru.MoveToFront(e.node)
		c.hits.Add(1)
		return e.img, nil
	}
	c.misses.Add(1)

	img, err := Render(dl, width, height)
	if err != nil {
		return nil, fmt.Errorf("cache: render display list %d: %w", key.ID, err)
	}
	c.insert(s, key, img)
	return img, nil
}

// insert adds img under key, evicting least recently used entries until
// the shard is within its limits. The caller holds s.mu.
func (c *RasterCache) insert(s *shard, key Key, img image.Image) {
	size := imageBytes(img)
	for s.lru.Len() > 0 && (s.lru.Len() >= c.capacity || (c.maxBytes > 0 && s.bytes+size > c.maxBytes)) {
		oldest, _ := s.lru.RemoveOldest()
		s.bytes -= s.entries[oldest].bytes
		delete(s.entries, oldest)
		c.evictions.Add(1)
		displaylist.Logger().Debug("cache: evicted raster",
			"id", oldest.ID, "width", oldest.Width, "height", oldest.Height)
	}
	s.entries[key] = &entry{img: img, bytes: size, node: s.lru.PushFront(key)}
	s.bytes += size
}

// Set stores img under key, replacing any previous raster.
func (c *RasterCache) Set(key Key, img image.Image) {
	s := c.shardFor(key.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.bytes += imageBytes(img) - e.bytes
		e.img, e.bytes = img, imageBytes(img)
		s.lru.MoveToFront(e.node)
		return
	}
	c.insert(s, key, img)
}

// Invalidate drops every raster of the display list with the given ID and
// reports how many were removed.
func (c *RasterCache) Invalidate(id uint32) int {
	s := c.shardFor(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, e := range s.entries {
		if key.ID != id {
			continue
		}
		s.lru.Remove(e.node)
		s.bytes -= e.bytes
		delete(s.entries, key)
		n++
	}
	return n
}

// Clear removes all entries.
func (c *RasterCache) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[Key]*entry)
		s.lru.Clear()
		s.bytes = 0
		s.mu.Unlock()
	}
}

// Len returns the number of cached rasters across all shards.
func (c *RasterCache) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the per-shard entry capacity.
func (c *RasterCache) Capacity() int {
	return c.capacity
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of cached rasters.
	Len int
	// Bytes is the pixel memory held by cached rasters.
	Bytes int
	// Capacity is the per-shard entry capacity.
	Capacity int
	// TotalCapacity is the entry capacity across all shards.
	TotalCapacity int
	// Hits is the number of lookups served from the cache.
	Hits uint64
	// Misses is the number of lookups that found nothing.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 before any lookup.
	HitRate float64
	// Evictions is the number of rasters dropped to make room.
	Evictions uint64
}

// Stats returns current cache statistics.
func (c *RasterCache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	st := Stats{
		Capacity:      c.capacity,
		TotalCapacity: c.capacity * ShardCount,
		Hits:          hits,
		Misses:        misses,
		HitRate:       hitRate,
		Evictions:     c.evictions.Load(),
	}
	for _, s := range c.shards {
		s.mu.Lock()
		st.Len += len(s.entries)
		st.Bytes += s.bytes
		s.mu.Unlock()
	}
	return st
}

// ResetStats resets the hit, miss and eviction counters.
func (c *RasterCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// Render draws dl into a new width x height image, scaling dl.Frame to
// fill it. An empty frame is drawn unscaled; an unbounded one fails with
// displaylist.ErrUnboundedFrame.
func Render(dl *displaylist.DisplayList, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyTarget
	}
	frame, err := dl.Frame()
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(width, height)
	if !frame.IsEmpty() {
		dc.Scale(float64(width)/float64(frame.Width()), float64(height)/float64(frame.Height()))
		dc.Translate(float64(-frame.Left), float64(-frame.Top))
	}
	if err := dl.RenderTo(dc); err != nil {
		return nil, err
	}
	if err := dc.Close(); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// imageBytes estimates the pixel memory of img at 4 bytes per pixel.
func imageBytes(img image.Image) int {
	if img == nil {
		return 0
	}
	b := img.Bounds()
	return b.Dx() * b.Dy() * 4
}
