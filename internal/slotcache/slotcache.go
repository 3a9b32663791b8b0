// Package slotcache provides an arena of per-item cache slots.
//
// Each slot memoizes one value computed lazily on first use. The cache has
// no knowledge of why a slot becomes invalid: invalidation is always driven
// externally by whoever owns the slot, via Release. Slots carry a generation
// stamp so that a handle outliving its entry is detected instead of silently
// reading an entry reused by another owner.
package slotcache

import "sync"

// Slot is a handle into a Cache. The zero value is an empty slot.
//
// A Slot belongs to exactly one Cache at a time. Copying a populated Slot
// is a misuse: the copy aliases the same entry and releasing one invalidates
// the other.
type Slot struct {
	index      int
	generation uint64
	valid      bool
}

// Valid reports whether the slot currently holds a cached value.
func (s *Slot) Valid() bool { return s.valid }

type entry[T any] struct {
	value      T
	generation uint64
	used       bool
}

// Cache is a slot arena holding values of type T.
//
// Cache is safe for concurrent use, though the intended model is a single
// rendering thread: the mutex makes lookup-or-compute atomic as a unit so a
// multi-threaded caller cannot compute the same slot twice.
type Cache[T any] struct {
	mu      sync.Mutex
	entries []entry[T]
	free    []int
	nextGen uint64

	// release, when non-nil, is called with the stored value whenever a
	// populated slot is released, before the entry is recycled.
	release func(T)
}

// New creates a Cache. release may be nil; otherwise it runs for every
// value dropped from the cache.
func New[T any](release func(T)) *Cache[T] {
	return &Cache[T]{release: release}
}

// EnsureUpToDate returns the slot's cached value, computing it on first use.
//
// If the slot is populated, the stored value is returned and compute is not
// called. Otherwise compute is called once; if it reports ok, the value is
// stored in the slot and returned. If compute reports !ok nothing is stored,
// so the next call computes again.
//
// Panics if slot was released by a different owner and its entry reused
// (stale generation), which indicates the caller kept a dead handle.
func (c *Cache[T]) EnsureUpToDate(slot *Slot, compute func() (T, bool)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if slot.valid {
		e := &c.entries[slot.index]
		if !e.used || e.generation != slot.generation {
			panic("slotcache: stale slot handle")
		}
		return e.value, true
	}

	value, ok := compute()
	if !ok {
		var zero T
		return zero, false
	}

	c.nextGen++
	e := entry[T]{value: value, generation: c.nextGen, used: true}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
		c.entries[index] = e
	} else {
		index = len(c.entries)
		c.entries = append(c.entries, e)
	}

	slot.index = index
	slot.generation = c.nextGen
	slot.valid = true
	return value, true
}

// Release drops the slot's cached value, if any, and recycles its entry.
// Releasing an empty slot is a no-op. The slot may be reused afterwards.
func (c *Cache[T]) Release(slot *Slot) {
	c.mu.Lock()

	if !slot.valid {
		c.mu.Unlock()
		return
	}
	e := &c.entries[slot.index]
	if !e.used || e.generation != slot.generation {
		c.mu.Unlock()
		panic("slotcache: stale slot handle")
	}

	value := e.value
	var zero T
	e.value = zero
	e.used = false
	c.free = append(c.free, slot.index)
	slot.valid = false
	release := c.release
	c.mu.Unlock()

	// Run the destructor outside the lock: it may call back into code
	// that touches other caches.
	if release != nil {
		release(value)
	}
}

// Len returns the number of populated slots.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries) - len(c.free)
}
