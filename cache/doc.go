// Package cache keeps rendered rasters of display lists.
//
// A display list never changes after Build, so its UniqueID together with
// an output size names a raster for good. RasterCache maps those keys to
// images:
//
//	rc := cache.New(cache.WithCapacity(64))
//	img, err := rc.GetOrRender(dl, 256, 256)
//
// # Sharding
//
// Keys are spread over ShardCount shards by the low bits of the ID. Each
// shard has its own mutex and LRU list, so lookups for different lists
// rarely contend. Eviction is per shard, by entry count and optionally by
// pixel memory (WithMaxBytes).
//
// # Statistics
//
// Hits, misses and evictions are counted with atomics and reported by
// Stats. Evictions are also logged at debug level through the logger
// configured with displaylist.SetLogger.
//
// # Thread Safety
//
// RasterCache is safe for concurrent use. It must not be copied after
// creation.
package cache
