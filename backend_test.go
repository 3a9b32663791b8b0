package ggrender

import (
	"image"
	"io"
	"testing"
)

func newTestBackend(t *testing.T, canvas *testCanvas, surface *testSurface, opts ...Option) *Backend {
	t.Helper()
	opts = append(opts, WithoutSystemFonts(), WithImageDecoder(testDecoder(8, 4, nil)))
	b, err := New(canvas, surface, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// testDecoder returns a decoder producing a fixed-size image, counting calls
// through calls when non-nil.
func testDecoder(w, h int, calls *int) ImageDecoder {
	return func(r io.Reader) (image.Image, error) {
		if calls != nil {
			*calls++
		}
		if _, err := io.Copy(io.Discard, r); err != nil {
			return nil, err
		}
		return image.NewRGBA(image.Rect(0, 0, w, h)), nil
	}
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := New(nil, newTestSurface(1, 1)); err != ErrNilCanvas {
		t.Errorf("nil canvas: err = %v", err)
	}
	if _, err := New(newTestCanvas(), nil); err != ErrNilSurface {
		t.Errorf("nil surface: err = %v", err)
	}
}

func TestFrameLifecycle(t *testing.T) {
	canvas := newTestCanvas()
	surface := newTestSurface(640, 480)
	backend := newTestBackend(t, canvas, surface)

	r, err := backend.NewRenderer(RGB(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !surface.current {
		t.Error("surface not current during the frame")
	}
	if canvas.width != 640 || canvas.height != 480 {
		t.Errorf("canvas sized %dx%d, want 640x480", canvas.width, canvas.height)
	}
	if len(canvas.opsOf("clear")) != 1 {
		t.Error("canvas not cleared at frame start")
	}

	if err := backend.FlushRenderer(r); err != nil {
		t.Fatal(err)
	}
	if canvas.flushed != 1 {
		t.Errorf("canvas flushed %d times, want 1", canvas.flushed)
	}
	if surface.swaps != 1 {
		t.Errorf("buffers swapped %d times, want 1", surface.swaps)
	}
	if surface.current {
		t.Error("surface still current after flush")
	}
}

func TestSecondFrameReacquires(t *testing.T) {
	backend := newTestBackend(t, newTestCanvas(), newTestSurface(640, 480))

	for i := 0; i < 3; i++ {
		r, err := backend.NewRenderer(RGB(0, 0, 0))
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if err := backend.FlushRenderer(r); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
}

func TestOverlappingFramesPanic(t *testing.T) {
	backend := newTestBackend(t, newTestCanvas(), newTestSurface(640, 480))
	if _, err := backend.NewRenderer(RGB(0, 0, 0)); err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Error("overlapping NewRenderer did not panic")
		}
	}()
	backend.NewRenderer(RGB(0, 0, 0))
}

func TestDoubleFlushPanics(t *testing.T) {
	backend := newTestBackend(t, newTestCanvas(), newTestSurface(640, 480))
	r, _ := backend.NewRenderer(RGB(0, 0, 0))
	if err := backend.FlushRenderer(r); err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Error("second FlushRenderer did not panic")
		}
	}()
	backend.FlushRenderer(r)
}

func TestDrawAfterFlushPanics(t *testing.T) {
	backend := newTestBackend(t, newTestCanvas(), newTestSurface(640, 480))
	r, _ := backend.NewRenderer(RGB(0, 0, 0))
	if err := backend.FlushRenderer(r); err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Error("drawing through a flushed renderer did not panic")
		}
	}()
	r.DrawRectangle(Pt(0, 0), &fakeRect{geometry: RectXYWH(0, 0, 10, 10)})
}

func TestSurfaceReleasedDespiteFlushError(t *testing.T) {
	canvas := newTestCanvas()
	canvas.flushErr = io.ErrUnexpectedEOF
	surface := newTestSurface(640, 480)
	backend := newTestBackend(t, canvas, surface)

	r, _ := backend.NewRenderer(RGB(0, 0, 0))
	if err := backend.FlushRenderer(r); err == nil {
		t.Error("flush error not reported")
	}
	if surface.current {
		t.Error("surface left current after failed flush")
	}
	if surface.swaps != 0 {
		t.Error("buffers swapped despite failed flush")
	}
}

func TestReleaseItemGraphicsCacheDropsImage(t *testing.T) {
	canvas := newTestCanvas()
	backend := newTestBackend(t, canvas, newTestSurface(640, 480))

	item := &fakeImageItem{source: EmbeddedImage([]byte{1, 2, 3})}

	r, _ := backend.NewRenderer(RGB(0, 0, 0))
	r.DrawImage(Pt(0, 0), item)
	backend.FlushRenderer(r)

	if backend.CachedImageCount() != 1 {
		t.Fatalf("cached images = %d, want 1", backend.CachedImageCount())
	}

	backend.ReleaseItemGraphicsCache(item.RenderingCache())
	if len(canvas.deleted) != 1 {
		t.Errorf("canvas images deleted = %d, want 1", len(canvas.deleted))
	}

	// The dead cache entry goes away at the next frame boundary.
	r, _ = backend.NewRenderer(RGB(0, 0, 0))
	backend.FlushRenderer(r)
	if backend.CachedImageCount() != 0 {
		t.Errorf("cached images = %d after sweep, want 0", backend.CachedImageCount())
	}
}

func TestImageDroppedWithinFrameIsSweptAtFrameEnd(t *testing.T) {
	canvas := newTestCanvas()
	backend := newTestBackend(t, canvas, newTestSurface(640, 480))

	item := &fakeImageItem{source: EmbeddedImage([]byte{1, 2, 3})}

	r, _ := backend.NewRenderer(RGB(0, 0, 0))
	r.DrawImage(Pt(0, 0), item)
	backend.ReleaseItemGraphicsCache(item.RenderingCache())
	if err := backend.FlushRenderer(r); err != nil {
		t.Fatal(err)
	}

	if backend.CachedImageCount() != 0 {
		t.Errorf("cached images = %d, want 0 after same-frame drop", backend.CachedImageCount())
	}
	if len(canvas.deleted) != 1 {
		t.Errorf("canvas images deleted = %d, want 1", len(canvas.deleted))
	}
}

func TestScaleFactorOverride(t *testing.T) {
	surface := newTestSurface(640, 480)
	surface.scale = 2

	backend := newTestBackend(t, newTestCanvas(), surface)
	r, _ := backend.NewRenderer(RGB(0, 0, 0))
	if r.ScaleFactor() != 2 {
		t.Errorf("scale = %v, want surface scale 2", r.ScaleFactor())
	}
	backend.FlushRenderer(r)

	backend = newTestBackend(t, newTestCanvas(), surface, WithScaleFactor(3))
	r, _ = backend.NewRenderer(RGB(0, 0, 0))
	if r.ScaleFactor() != 3 {
		t.Errorf("scale = %v, want override 3", r.ScaleFactor())
	}
	backend.FlushRenderer(r)
}
