package ggrender

import (
	"bytes"
	"log/slog"
	"os"
	"slices"
)

// FrameRenderer draws one frame's worth of items. It is created by
// Backend.NewRenderer, holds the surface for the duration of the frame, and
// is consumed by Backend.FlushRenderer. Item positions passed to the draw
// methods are in canvas pixel space; item geometry is relative to them.
type FrameRenderer struct {
	backend *Backend
	canvas  Canvas
	active  *ActiveContext

	clipRects   []Rect
	scaleFactor float64
}

// ScaleFactor returns the physical-to-logical pixel ratio of this frame.
func (r *FrameRenderer) ScaleFactor() float64 { return r.scaleFactor }

// ensureActive guards every draw method. Backend.FlushRenderer consumes the
// renderer; drawing through a flushed renderer would touch the canvas without
// holding the surface.
func (r *FrameRenderer) ensureActive() {
	if r.active == nil {
		panic("ggrender: FrameRenderer used after FlushRenderer")
	}
}

// DrawRectangle fills the item's geometry with its color.
func (r *FrameRenderer) DrawRectangle(pos Point, item RectangleItem) {
	r.ensureActive()
	g := item.Geometry()
	if g.Empty() {
		return
	}
	var path Path
	path.Rect(RectXYWH(0, 0, g.W, g.H))

	r.canvas.Save()
	r.canvas.Translate(pos.X+g.X, pos.Y+g.Y)
	r.canvas.FillPath(&path, ColorPaint(item.Color()))
	r.canvas.Restore()
}

// DrawBorderRectangle fills a rounded rectangle and strokes its border.
// The rectangle is inset by half the border width so the stroke, centered
// on the path, stays entirely inside the item's geometry.
func (r *FrameRenderer) DrawBorderRectangle(pos Point, item BorderRectangleItem) {
	r.ensureActive()
	g := item.Geometry()
	if g.Empty() {
		return
	}
	bw := item.BorderWidth()

	var path Path
	path.RoundedRect(RectXYWH(bw/2, bw/2, g.W-bw, g.H-bw), item.BorderRadius())

	r.canvas.Save()
	r.canvas.Translate(pos.X+g.X, pos.Y+g.Y)
	r.canvas.FillPath(&path, ColorPaint(item.Color()))
	if bw > 0 {
		stroke := ColorPaint(item.BorderColor())
		stroke.LineWidth = bw
		r.canvas.StrokePath(&path, stroke)
	}
	r.canvas.Restore()
}

// DrawImage draws the item's image, scaled to the item's geometry when the
// geometry has a positive size and at native size otherwise.
func (r *FrameRenderer) DrawImage(pos Point, item ImageItem) {
	r.drawImage(pos, item, RectXYWH(0, 0, 0, 0))
}

// DrawClippedImage draws the item's image restricted to its source clip, a
// window in image pixels. An empty clip means the whole image. The clip only
// selects the sampled pixels; the path and the geometry scale are computed
// from the native image size, exactly as in DrawImage.
func (r *FrameRenderer) DrawClippedImage(pos Point, item ClippedImageItem) {
	r.drawImage(pos, item, item.SourceClip())
}

func (r *FrameRenderer) drawImage(pos Point, item ImageItem, sourceClip Rect) {
	r.ensureActive()
	img, ok := r.cachedItemImage(item)
	if !ok {
		return
	}

	iw, ih, err := r.canvas.ImageSize(img.ID())
	if err != nil {
		Logger().Warn("cached image lost its canvas handle", slog.Any("error", err))
		return
	}
	nw, nh := float64(iw), float64(ih)

	src := sourceClip
	if src.Empty() {
		src = RectXYWH(0, 0, nw, nh)
	}

	g := item.Geometry()
	var path Path
	path.Rect(RectXYWH(0, 0, nw, nh))

	r.canvas.Save()
	r.canvas.Translate(pos.X+g.X, pos.Y+g.Y)
	if g.W > 0 && g.H > 0 {
		r.canvas.Scale(g.W/nw, g.H/nh)
	}
	r.canvas.FillPath(&path, ImagePaint(img.ID(), src, Pt(0, 0)))
	r.canvas.Restore()
}

// cachedItemImage returns the uploaded image for the item, loading and
// caching it on first use. A second draw with the same slot reuses the
// cached upload without consulting the image source at all.
func (r *FrameRenderer) cachedItemImage(item ImageItem) (*CachedImage, bool) {
	res, ok := r.backend.items.EnsureUpToDate(item.RenderingCache(), func() (cachedResource, bool) {
		img, err := r.loadImageResource(item.Source())
		if err != nil {
			Logger().Warn("image load failed",
				slog.String("path", item.Source().Path()), slog.Any("error", err))
			return cachedResource{}, false
		}
		return cachedResource{image: img}, true
	})
	if !ok || res.image == nil {
		return nil, false
	}
	return res.image, true
}

// loadImageResource resolves an image source through the shared image cache,
// decoding and uploading only on a cache miss. The returned image carries a
// reference owned by the caller.
func (r *FrameRenderer) loadImageResource(source ImageSource) (*CachedImage, error) {
	switch source.Kind() {
	case SourceFile:
		return r.backend.images.resolve(fileKey(source.Path()), func() (ImageID, error) {
			f, err := os.Open(source.Path())
			if err != nil {
				return 0, err
			}
			defer f.Close()
			img, err := r.backend.decode(f)
			if err != nil {
				return 0, err
			}
			return r.canvas.CreateImage(img)
		})
	case SourceEmbedded:
		return r.backend.images.resolve(embeddedKey(source.Data()), func() (ImageID, error) {
			img, err := r.backend.decode(bytes.NewReader(source.Data()))
			if err != nil {
				return 0, err
			}
			return r.canvas.CreateImage(img)
		})
	default:
		return nil, ErrImageUnavailable
	}
}

// DrawText lays the item's text out within its geometry according to the
// alignments and draws it. A font that cannot be resolved is logged once
// per call and the text is skipped; the rest of the frame renders normally.
func (r *FrameRenderer) DrawText(pos Point, item TextItem) {
	r.ensureActive()
	text := item.Text()
	if text == "" {
		return
	}
	req := item.FontRequest()
	font, err := r.backend.Font(req)
	if err != nil {
		Logger().Warn("font unavailable, skipping text",
			slog.String("family", req.Family), slog.Any("error", err))
		return
	}

	g := item.Geometry()
	size := req.PixelSize * r.scaleFactor

	var tx float64
	switch item.HorizontalAlignment() {
	case AlignHCenter:
		tx = g.W/2 - font.TextWidth(size, text)/2
	case AlignRight:
		tx = g.W - font.TextWidth(size, text)
	}
	var ty float64
	switch item.VerticalAlignment() {
	case AlignVCenter:
		ty = g.H/2 - font.Height(size)/2
	case AlignBottom:
		ty = g.H - font.Height(size)
	}

	err = r.canvas.FillText(font.ID(), size, item.Color(), pos.X+g.X+tx, pos.Y+g.Y+ty, text)
	if err != nil {
		Logger().Warn("text draw failed", slog.Any("error", err))
	}
}

// DrawTextInput is intentionally unimplemented in this generation; editable
// text items draw nothing. [Font.OffsetForXPosition] is the other half of
// this gap.
func (r *FrameRenderer) DrawTextInput(pos Point, item TextInputItem) {
	r.ensureActive()
}

// DrawPath is intentionally unimplemented; arbitrary path items draw
// nothing.
func (r *FrameRenderer) DrawPath(pos Point, item PathItem) {
	r.ensureActive()
}

// CombineClip intersects the current scissor with the item's geometry,
// translated to its absolute position, and records it on the clip stack.
func (r *FrameRenderer) CombineClip(pos Point, item ClipItem) {
	r.ensureActive()
	clip := item.Geometry().Translate(pos)
	r.canvas.IntersectScissor(clip)
	r.clipRects = append(r.clipRects, clip)
}

// ClipRects returns a copy of the active clip stack, outermost first. The
// caller saves it before descending into a subtree that must render
// unclipped and hands it back to ResetClip afterwards.
func (r *FrameRenderer) ClipRects() []Rect {
	return slices.Clone(r.clipRects)
}

// ResetClip replaces the clip stack. The canvas scissor only shrinks, so
// the stack is rebuilt by resetting and reapplying every rectangle.
func (r *FrameRenderer) ResetClip(rects []Rect) {
	r.ensureActive()
	r.clipRects = slices.Clone(rects)
	r.canvas.ResetScissor()
	for _, clip := range r.clipRects {
		r.canvas.IntersectScissor(clip)
	}
}

// PixmapFiller produces the pixels of a host-rendered pixmap. It is handed
// a set callback and calls it at most once with the pixmap's dimensions and
// premultiplied RGBA pixels; not calling set marks the pixmap unavailable,
// and calls after the first are ignored.
type PixmapFiller func(set func(width, height int, premul []byte))

// DrawCachedPixmap draws a pixmap the host renders itself (a platform
// window icon, a video frame). The pixels are requested through fill only
// when the slot has no cached upload; subsequent frames reuse the upload.
// The pixmap is drawn at native size with its top-left corner at pos.
func (r *FrameRenderer) DrawCachedPixmap(slot *CacheSlot, pos Point, fill PixmapFiller) {
	r.ensureActive()
	res, ok := r.backend.items.EnsureUpToDate(slot, func() (cachedResource, bool) {
		var img *CachedImage
		fill(func(width, height int, premul []byte) {
			if img != nil {
				// The contract is a single set call; a second one would
				// leak the first upload.
				return
			}
			id, err := r.canvas.CreateImageRGBA(width, height, premul)
			if err != nil {
				Logger().Warn("pixmap upload failed", slog.Any("error", err))
				return
			}
			img = newCachedImage(r.canvas, id)
		})
		if img == nil {
			return cachedResource{}, false
		}
		return cachedResource{image: img}, true
	})
	if !ok || res.image == nil {
		return
	}

	iw, ih, err := r.canvas.ImageSize(res.image.ID())
	if err != nil {
		Logger().Warn("cached pixmap lost its canvas handle", slog.Any("error", err))
		return
	}

	var path Path
	path.Rect(RectXYWH(pos.X, pos.Y, float64(iw), float64(ih)))
	r.canvas.FillPath(&path, ImagePaint(res.image.ID(), RectXYWH(0, 0, float64(iw), float64(ih)), pos))
}
