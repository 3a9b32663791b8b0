// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggcanvas

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/ggrender"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("ggcanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("ggcanvas: invalid dimensions")
)

// fontEntry caches the faces instantiated from one font source, keyed by
// pixel size. Face creation involves shaping table setup, so faces are
// reused across frames.
type fontEntry struct {
	source *text.FontSource
	faces  map[float64]text.Face
}

func (e *fontEntry) face(size float64) text.Face {
	if f, ok := e.faces[size]; ok {
		return f
	}
	f := e.source.Face(size)
	e.faces[size] = f
	return f
}

// Canvas renders ggrender drawing commands through a gg.Context.
//
// Draw methods cannot report errors through the ggrender.Canvas interface;
// the first drawing error is retained and surfaced by the next Flush, which
// is called once per frame.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	ctx           *gg.Context
	width, height int

	nextImage ggrender.ImageID
	images    map[ggrender.ImageID]*gg.ImageBuf

	nextFont ggrender.FontID
	fonts    map[ggrender.FontID]*fontEntry

	drawErr error
	closed  bool
}

var _ ggrender.Canvas = (*Canvas)(nil)

// New creates a Canvas of the given size. The gg context is created with
// default settings; pass gg context options through opts to inject a GPU
// renderer.
func New(width, height int, opts ...gg.ContextOption) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return &Canvas{
		ctx:    gg.NewContext(width, height, opts...),
		width:  width,
		height: height,
		images: make(map[ggrender.ImageID]*gg.ImageBuf),
		fonts:  make(map[ggrender.FontID]*fontEntry),
	}, nil
}

// Context returns the underlying gg context, or nil after Close.
func (c *Canvas) Context() *gg.Context {
	if c.closed {
		return nil
	}
	return c.ctx
}

// Close releases the gg context. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	err := c.ctx.Close()
	c.ctx = nil
	return err
}

// fail retains the first drawing error for the next Flush.
func (c *Canvas) fail(err error) {
	if err != nil && c.drawErr == nil {
		c.drawErr = err
	}
}

func (c *Canvas) SetSize(width, height int) {
	if c.closed || (width == c.width && height == c.height) {
		return
	}
	if err := c.ctx.Resize(width, height); err != nil {
		c.fail(fmt.Errorf("ggcanvas: resize: %w", err))
		return
	}
	c.width, c.height = width, height
}

func (c *Canvas) Clear(col ggrender.RGBA) {
	if c.closed {
		return
	}
	c.ctx.ClearWithColor(gg.RGBA{R: col.R, G: col.G, B: col.B, A: col.A})
}

func (c *Canvas) Save() {
	if c.closed {
		return
	}
	c.ctx.Push()
}

func (c *Canvas) Restore() {
	if c.closed {
		return
	}
	c.ctx.Pop()
}

func (c *Canvas) Translate(dx, dy float64) {
	if c.closed {
		return
	}
	c.ctx.Translate(dx, dy)
}

func (c *Canvas) Scale(sx, sy float64) {
	if c.closed {
		return
	}
	c.ctx.Scale(sx, sy)
}

// setPath loads the path elements into the context's current path.
func (c *Canvas) setPath(p *ggrender.Path) {
	c.ctx.ClearPath()
	for _, e := range p.Elements() {
		switch e.Verb {
		case ggrender.VerbRect:
			c.ctx.DrawRectangle(e.Rect.X, e.Rect.Y, e.Rect.W, e.Rect.H)
		case ggrender.VerbRoundedRect:
			c.ctx.DrawRoundedRectangle(e.Rect.X, e.Rect.Y, e.Rect.W, e.Rect.H, e.Radius)
		}
	}
}

func (c *Canvas) FillPath(p *ggrender.Path, paint ggrender.Paint) {
	if c.closed {
		return
	}
	if paint.HasImage() {
		c.fillPathWithImage(p, paint)
		return
	}
	c.setPath(p)
	c.ctx.SetColor(paint.Color.Color())
	c.fail(c.ctx.Fill())
}

// fillPathWithImage draws the paint's image clipped to the path bounds.
// The renderer only fills rectangular paths with images, so clipping to the
// bounds is exact.
func (c *Canvas) fillPathWithImage(p *ggrender.Path, paint ggrender.Paint) {
	img, ok := c.images[paint.Image]
	if !ok {
		c.fail(fmt.Errorf("ggcanvas: image %d: %w", paint.Image, ggrender.ErrUnknownImage))
		return
	}

	src := paint.Src
	if src.Empty() {
		src = ggrender.RectXYWH(0, 0, float64(img.Width()), float64(img.Height()))
	}
	srcRect := image.Rect(int(src.X), int(src.Y), int(src.MaxX()), int(src.MaxY()))

	bounds := p.Bounds()
	c.ctx.Push()
	c.ctx.ClipRect(bounds.X, bounds.Y, bounds.W, bounds.H)
	c.ctx.DrawImageEx(img, gg.DrawImageOptions{
		X:         paint.Dst.X,
		Y:         paint.Dst.Y,
		DstWidth:  src.W,
		DstHeight: src.H,
		SrcRect:   &srcRect,
	})
	c.ctx.Pop()
}

func (c *Canvas) StrokePath(p *ggrender.Path, paint ggrender.Paint) {
	if c.closed {
		return
	}
	c.setPath(p)
	c.ctx.SetColor(paint.Color.Color())
	c.ctx.SetLineWidth(paint.LineWidth)
	c.fail(c.ctx.Stroke())
}

func (c *Canvas) IntersectScissor(r ggrender.Rect) {
	if c.closed {
		return
	}
	c.ctx.ClipRect(r.X, r.Y, r.W, r.H)
}

func (c *Canvas) ResetScissor() {
	if c.closed {
		return
	}
	c.ctx.ResetClip()
}

func (c *Canvas) CreateImage(img image.Image) (ggrender.ImageID, error) {
	if c.closed {
		return 0, ErrCanvasClosed
	}
	return c.registerImage(gg.ImageBufFromImage(img)), nil
}

func (c *Canvas) CreateImageRGBA(width, height int, premul []byte) (ggrender.ImageID, error) {
	if c.closed {
		return 0, ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if len(premul) != 4*width*height {
		return 0, fmt.Errorf("ggcanvas: pixel buffer is %d bytes, want %d", len(premul), 4*width*height)
	}
	rgba := &image.RGBA{Pix: premul, Stride: 4 * width, Rect: image.Rect(0, 0, width, height)}
	return c.registerImage(gg.ImageBufFromImage(rgba)), nil
}

func (c *Canvas) registerImage(buf *gg.ImageBuf) ggrender.ImageID {
	c.nextImage++
	c.images[c.nextImage] = buf
	return c.nextImage
}

func (c *Canvas) ImageSize(id ggrender.ImageID) (int, int, error) {
	img, ok := c.images[id]
	if !ok {
		return 0, 0, fmt.Errorf("ggcanvas: image %d: %w", id, ggrender.ErrUnknownImage)
	}
	return img.Width(), img.Height(), nil
}

func (c *Canvas) DeleteImage(id ggrender.ImageID) {
	delete(c.images, id)
}

func (c *Canvas) AddFontMem(data []byte) (ggrender.FontID, error) {
	if c.closed {
		return 0, ErrCanvasClosed
	}
	source, err := text.NewFontSource(data)
	if err != nil {
		return 0, fmt.Errorf("ggcanvas: parse font: %w", err)
	}
	return c.registerFont(source), nil
}

func (c *Canvas) AddFontFile(path string) (ggrender.FontID, error) {
	if c.closed {
		return 0, ErrCanvasClosed
	}
	source, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return 0, fmt.Errorf("ggcanvas: load font %q: %w", path, err)
	}
	return c.registerFont(source), nil
}

func (c *Canvas) registerFont(source *text.FontSource) ggrender.FontID {
	c.nextFont++
	c.fonts[c.nextFont] = &fontEntry{source: source, faces: make(map[float64]text.Face)}
	return c.nextFont
}

func (c *Canvas) TextWidth(id ggrender.FontID, size float64, s string) float64 {
	entry, ok := c.fonts[id]
	if !ok {
		return 0
	}
	w, _ := text.Measure(s, entry.face(size))
	return w
}

func (c *Canvas) FontHeight(id ggrender.FontID, size float64) float64 {
	entry, ok := c.fonts[id]
	if !ok {
		return 0
	}
	return entry.face(size).Metrics().LineHeight()
}

func (c *Canvas) FillText(id ggrender.FontID, size float64, col ggrender.RGBA, x, y float64, s string) error {
	if c.closed {
		return ErrCanvasClosed
	}
	entry, ok := c.fonts[id]
	if !ok {
		return fmt.Errorf("ggcanvas: font %d: %w", id, ggrender.ErrFontUnavailable)
	}
	face := entry.face(size)
	c.ctx.SetFont(face)
	c.ctx.SetColor(col.Color())
	// DrawString takes the baseline; callers pass the top edge.
	c.ctx.DrawString(s, x, y+face.Metrics().Ascent)
	return nil
}

// Flush submits buffered GPU work and reports any drawing error retained
// since the previous Flush.
func (c *Canvas) Flush() error {
	if c.closed {
		return ErrCanvasClosed
	}
	err := errors.Join(c.drawErr, c.ctx.FlushGPU())
	c.drawErr = nil
	return err
}
