package timetable

import "sync"

// ProfileKey identifies the derived topology and row list of one route
// and direction.
type ProfileKey struct {
	RouteKey    string
	DirectionID int
}

// ColumnKey identifies one column ordering. Every component changes the
// set of visible rows or eligible trips, so the full tuple is the key.
type ColumnKey struct {
	RouteKey     string
	DirectionID  int
	ServiceDate  string
	ShowAllTrips bool
}

// DerivedCache memoizes route profiles, row lists, and column orders
// under compound keys. Entries are invalidated wholesale, never updated
// in place; a feed reload replaces the whole cache.
type DerivedCache struct {
	mu       sync.RWMutex
	profiles map[ProfileKey]*RouteProfile
	rowLists map[ProfileKey]*RowList
	columns  map[ColumnKey][]string

	hits   uint64
	misses uint64
}

// NewDerivedCache returns an empty cache.
func NewDerivedCache() *DerivedCache {
	return &DerivedCache{
		profiles: make(map[ProfileKey]*RouteProfile),
		rowLists: make(map[ProfileKey]*RowList),
		columns:  make(map[ColumnKey][]string),
	}
}

// Profile returns the cached profile for key, building and storing it
// on a miss. Concurrent callers may build the same entry; the first
// stored result wins and later builds are discarded.
func (c *DerivedCache) Profile(key ProfileKey, build func() *RouteProfile) *RouteProfile {
	c.mu.RLock()
	cached, ok := c.profiles[key]
	c.mu.RUnlock()
	if ok {
		c.recordHit()
		return cached
	}

	built := build()

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.profiles[key]; ok {
		c.hits++
		return cached
	}
	c.misses++
	c.profiles[key] = built
	return built
}

// RowList returns the cached row list for key, building it on a miss.
func (c *DerivedCache) RowList(key ProfileKey, build func() *RowList) *RowList {
	c.mu.RLock()
	cached, ok := c.rowLists[key]
	c.mu.RUnlock()
	if ok {
		c.recordHit()
		return cached
	}

	built := build()

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.rowLists[key]; ok {
		c.hits++
		return cached
	}
	c.misses++
	c.rowLists[key] = built
	return built
}

// Columns returns the cached column order for key, building it on a
// miss.
func (c *DerivedCache) Columns(key ColumnKey, build func() []string) []string {
	c.mu.RLock()
	cached, ok := c.columns[key]
	c.mu.RUnlock()
	if ok {
		c.recordHit()
		return cached
	}

	built := build()

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.columns[key]; ok {
		c.hits++
		return cached
	}
	c.misses++
	c.columns[key] = built
	return built
}

func (c *DerivedCache) recordHit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

// Invalidate drops every entry.
func (c *DerivedCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles = make(map[ProfileKey]*RouteProfile)
	c.rowLists = make(map[ProfileKey]*RowList)
	c.columns = make(map[ColumnKey][]string)
}

// Counts reports entry counts per kind, for the debug surface.
func (c *DerivedCache) Counts() (profiles, rowLists, columns int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.profiles), len(c.rowLists), len(c.columns)
}

// HitsMisses reports the lookup counters since the cache was created.
func (c *DerivedCache) HitsMisses() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
