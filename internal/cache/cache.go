// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package cache

import (
	"sync"
	"time"
)

// Well-known keys for the catalog snapshot.
const (
	KeyCourses = "catalog:courses"
	KeyEdges   = "catalog:edges"
)

// Entry is a cached value with its expiry.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int64
}

// Cache is a map of entries with a default TTL.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time

	statsMu sync.Mutex
	stats   Stats
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value for key if present and not expired. Expired
// entries are removed.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.record(func(s *Stats) { s.Misses++ })
		return nil, false
	}

	if !c.now().Before(entry.ExpiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.ExpiresAt.Equal(entry.ExpiresAt) {
			delete(c.entries, key)
		}
		n := int64(len(c.entries))
		c.record(func(s *Stats) {
			s.Misses++
			s.Evictions++
			s.TotalKeys = n
		})
		c.mu.Unlock()
		return nil, false
	}

	c.record(func(s *Stats) { s.Hits++ })
	return entry.Data, true
}

// Set stores value under key for the cache TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = Entry{Data: value, ExpiresAt: c.now().Add(c.ttl)}
	n := int64(len(c.entries))
	c.record(func(s *Stats) { s.TotalKeys = n })
	c.mu.Unlock()
}

// GetStats returns a copy of the counters.
func (c *Cache) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns hits as a percentage of lookups.
func (c *Cache) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// record applies fn to the counters. Callers that change entries hold mu
// so TotalKeys stays in step with the map.
func (c *Cache) record(fn func(*Stats)) {
	c.statsMu.Lock()
	fn(&c.stats)
	c.statsMu.Unlock()
}
