package libczi

import "github.com/kjmueller/libczi/internal/cache"

// Cache is the bounded, LRU-evicted sub-block cache of spec §4.7. The
// concrete implementation lives in internal/cache; this is a thin alias so
// external callers can hold one without reaching into an internal package.
type Cache = cache.Cache

// NewCache returns an empty Cache.
func NewCache() *Cache { return cache.New() }

// CacheStatistics is the snapshot Cache.Statistics returns.
type CacheStatistics = cache.Statistics

// CacheStatisticsMask selects which CacheStatistics fields to populate.
type CacheStatisticsMask = cache.StatisticsMask

const (
	StatMemoryUsage   = cache.StatMemoryUsage
	StatElementsCount = cache.StatElementsCount
	StatAll           = cache.StatAll
)
