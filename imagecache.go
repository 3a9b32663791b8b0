package ggrender

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// imageCacheKey is the content identity of a decoded image: either a file
// path, or the address of an embedded byte buffer. Embedded buffers are
// keyed by identity rather than content so the key costs nothing to build;
// the caller contract is that the same image is always passed as the same
// backing slice.
type imageCacheKey struct {
	path string
	ptr  uintptr
	size int
}

func fileKey(path string) imageCacheKey {
	return imageCacheKey{path: path}
}

func embeddedKey(data []byte) imageCacheKey {
	return imageCacheKey{ptr: uintptr(unsafe.Pointer(unsafe.SliceData(data))), size: len(data)}
}

// CachedImage wraps an uploaded canvas image together with the reference
// count governing its lifetime. The underlying GPU image is deleted exactly
// when the last holder calls Release, deterministically rather than when a
// garbage collector gets around to it, since GPU handles are scarce.
//
// Holders are item cache slots and, transiently, draw calls. The image cache
// itself holds entries without owning a reference; a CachedImage whose count
// reaches zero is dead and its cache entry is a leftover swept at frame end.
type CachedImage struct {
	id     ImageID
	canvas Canvas
	refs   atomic.Int32
}

func newCachedImage(canvas Canvas, id ImageID) *CachedImage {
	img := &CachedImage{id: id, canvas: canvas}
	img.refs.Store(1)
	return img
}

// ID returns the canvas image handle.
func (ci *CachedImage) ID() ImageID { return ci.id }

// retain adds a reference. It fails if the image is already dead, which is
// the moral equivalent of a failed weak-pointer upgrade.
func (ci *CachedImage) retain() bool {
	for {
		n := ci.refs.Load()
		if n == 0 {
			return false
		}
		if ci.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release drops one reference. The last release deletes the canvas image.
func (ci *CachedImage) Release() {
	switch n := ci.refs.Add(-1); {
	case n == 0:
		ci.canvas.DeleteImage(ci.id)
	case n < 0:
		panic("ggrender: CachedImage released more times than retained")
	}
}

// imageCache deduplicates image decode and upload work across items and
// frames. Entries are non-owning: they do not keep their image alive, they
// only let a later request with the same key share a still-live image.
// Dead entries are dropped by sweep after each frame.
type imageCache struct {
	mu      sync.Mutex
	canvas  Canvas
	entries map[imageCacheKey]*CachedImage
}

func newImageCache(canvas Canvas) *imageCache {
	return &imageCache{canvas: canvas, entries: make(map[imageCacheKey]*CachedImage)}
}

// resolve returns the live image for key, or creates one via create.
// The returned image carries a reference owned by the caller.
//
// Lookup-or-create is atomic as a unit: two concurrent resolves of the same
// key cannot both run create.
func (c *imageCache) resolve(key imageCacheKey, create func() (ImageID, error)) (*CachedImage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok && existing.retain() {
		return existing, nil
	}

	// Vacant, or the previous image died before the sweep got to it.
	id, err := create()
	if err != nil {
		return nil, err
	}
	img := newCachedImage(c.canvas, id)
	c.entries[key] = img
	return img, nil
}

// sweep removes entries whose image no longer has any holder. It runs at
// the end of every frame, after the canvas has flushed, so an image created
// and dropped within a single frame is reclaimed at that frame's end.
func (c *imageCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, img := range c.entries {
		if img.refs.Load() == 0 {
			delete(c.entries, key)
		}
	}
}

// size returns the number of entries, live or pending sweep.
func (c *imageCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
