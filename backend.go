package ggrender

import (
	"errors"

	"github.com/gogpu/ggrender/internal/slotcache"
)

// cachedResource is what the item rendering cache stores per slot. Today
// that is always an image reference; text layout caching would extend it.
type cachedResource struct {
	image *CachedImage
}

// Backend owns the GPU-resident resources behind a window: the canvas, the
// surface handoff, and the image, font and per-item caches. All rendering
// happens through a FrameRenderer obtained from NewRenderer.
type Backend struct {
	canvas Canvas
	holder *ContextHolder

	items  *slotcache.Cache[cachedResource]
	images *imageCache
	fonts  *fontCache

	decode        ImageDecoder
	scaleOverride float64
}

// New creates a backend rendering through canvas onto surface.
func New(canvas Canvas, surface SurfaceContext, opts ...Option) (*Backend, error) {
	if canvas == nil {
		return nil, ErrNilCanvas
	}
	if surface == nil {
		return nil, ErrNilSurface
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var system systemFontLocator
	if o.systemFonts {
		system = &fontscanLocator{cacheDir: o.fontCacheDir}
	}

	b := &Backend{
		canvas:        canvas,
		holder:        NewContextHolder(surface),
		images:        newImageCache(canvas),
		fonts:         newFontCache(canvas, system),
		decode:        o.decoder,
		scaleOverride: o.scaleFactor,
	}
	b.items = slotcache.New(func(res cachedResource) {
		if res.image != nil {
			res.image.Release()
		}
	})
	return b, nil
}

// NewRenderer begins a frame: it makes the surface current, resizes the
// canvas to the surface's drawable size and clears it. The frame ends with
// FlushRenderer; exactly one renderer may be live at a time.
func (b *Backend) NewRenderer(clear RGBA) (*FrameRenderer, error) {
	active, err := b.holder.Acquire()
	if err != nil {
		return nil, err
	}

	w, h := active.Surface().Size()
	b.canvas.SetSize(w, h)
	b.canvas.Clear(clear)

	scale := b.scaleOverride
	if scale <= 0 {
		scale = active.Surface().ScaleFactor()
	}
	return &FrameRenderer{
		backend:     b,
		canvas:      b.canvas,
		active:      active,
		scaleFactor: scale,
	}, nil
}

// FlushRenderer ends the frame started by NewRenderer: it flushes pending
// draws, presents, releases the surface and sweeps images no item holds any
// more. The renderer is consumed and must not be used afterwards.
//
// The surface is released even when flushing or presenting fails, so a bad
// frame does not wedge the context handoff.
func (b *Backend) FlushRenderer(r *FrameRenderer) error {
	if r == nil || r.backend != b {
		panic("ggrender: flushed a renderer this backend did not create")
	}
	if r.active == nil {
		panic("ggrender: renderer flushed twice")
	}
	active := r.active
	r.active = nil

	flushErr := b.canvas.Flush()
	var swapErr error
	if flushErr == nil {
		swapErr = active.SwapBuffers()
	}
	releaseErr := b.holder.Release(active)

	b.images.sweep()

	return errors.Join(flushErr, swapErr, releaseErr)
}

// ReleaseItemGraphicsCache drops the rendering data cached for one item,
// forcing it to be rebuilt on the item's next draw. Items call this when a
// property feeding the cached data changes, and when they are destroyed.
func (b *Backend) ReleaseItemGraphicsCache(slot *CacheSlot) {
	b.items.Release(slot)
}

// Font resolves a font request through the backend's font cache. The
// returned handle stays valid for the backend's lifetime.
func (b *Backend) Font(req FontRequest) (*Font, error) {
	return b.fonts.font(req)
}

// CachedImageCount reports the number of image cache entries, including
// entries awaiting the end-of-frame sweep.
func (b *Backend) CachedImageCount() int {
	return b.images.size()
}
