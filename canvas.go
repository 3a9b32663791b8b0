package ggrender

import "image"

// ImageID identifies an image uploaded to a Canvas. The zero value is invalid.
type ImageID int64

// FontID identifies a font loaded into a Canvas. The zero value is invalid.
type FontID int64

// Paint describes how a path is filled or stroked.
// A Paint is either a color paint or an image paint; use [ColorPaint] and
// [ImagePaint] to construct one.
type Paint struct {
	// Color is the fill or stroke color for color paints, and is ignored
	// for image paints.
	Color RGBA

	// LineWidth is the stroke width for StrokePath. Ignored by FillPath.
	LineWidth float64

	// Image, when non-zero, makes this an image paint: the path is filled
	// by sampling the image instead of a flat color.
	Image ImageID

	// Src is the source window sampled from the image, in image pixels.
	// A zero-size Src means the full image extent.
	Src Rect

	// Dst is the point in canvas space (after the current transform) onto
	// which the origin of Src is mapped.
	Dst Point
}

// ColorPaint returns a flat color paint.
func ColorPaint(c RGBA) Paint {
	return Paint{Color: c}
}

// ImagePaint returns a paint that samples img. src is the source window in
// image pixels (zero size for the full image); dst is the canvas-space point
// the source origin maps onto.
func ImagePaint(img ImageID, src Rect, dst Point) Paint {
	return Paint{Image: img, Src: src, Dst: dst}
}

// HasImage reports whether p is an image paint.
func (p Paint) HasImage() bool {
	return p.Image != 0
}

// Canvas is the 2D drawing surface the backend renders into.
//
// The backend drives a Canvas; it never implements one. Implementations
// translate these calls into a concrete drawing library (see package
// ggcanvas) or record them (see package recording).
//
// Coordinates are in the canvas's pixel space; the backend performs all
// logical-to-physical scaling itself via Translate and Scale.
//
// Scissor state is a single rectangle: IntersectScissor shrinks it and
// ResetScissor clears it. There is deliberately no pop operation; callers
// that need nesting must reapply the full stack (see
// [FrameRenderer.ResetClip]).
//
// A Canvas is not safe for concurrent use. All calls must come from the
// thread that owns the GPU context.
type Canvas interface {
	// SetSize sets the drawing surface size in physical pixels.
	SetSize(width, height int)

	// Clear fills the entire surface with the given color.
	Clear(c RGBA)

	// Save pushes the current transform onto a stack; Restore pops it.
	Save()
	Restore()

	// Translate and Scale modify the current transform.
	Translate(dx, dy float64)
	Scale(sx, sy float64)

	// FillPath fills the path with the paint.
	FillPath(p *Path, paint Paint)

	// StrokePath strokes the path outline with the paint, using
	// paint.LineWidth as the stroke width centered on the outline.
	StrokePath(p *Path, paint Paint)

	// IntersectScissor shrinks the scissor rectangle to its intersection
	// with r. Subsequent draws only affect pixels inside the scissor.
	IntersectScissor(r Rect)

	// ResetScissor removes any scissor rectangle.
	ResetScissor()

	// CreateImage decodes nothing: it uploads already-decoded pixels and
	// returns a handle. The image must be released with DeleteImage.
	CreateImage(img image.Image) (ImageID, error)

	// CreateImageRGBA uploads raw premultiplied RGBA pixels
	// (4 bytes per pixel, row-major, stride = 4*width).
	CreateImageRGBA(width, height int, premul []byte) (ImageID, error)

	// ImageSize returns the native pixel dimensions of an uploaded image.
	ImageSize(id ImageID) (width, height int, err error)

	// DeleteImage releases the GPU resources of an uploaded image.
	// Deleting an unknown id is a no-op.
	DeleteImage(id ImageID)

	// AddFontMem loads a font from TrueType/OpenType bytes.
	AddFontMem(data []byte) (FontID, error)

	// AddFontFile loads a font from a file path.
	AddFontFile(path string) (FontID, error)

	// TextWidth returns the advance width of text at the given pixel size.
	TextWidth(id FontID, size float64, text string) float64

	// FontHeight returns the line height (ascent + descent + line gap) of
	// the font at the given pixel size.
	FontHeight(id FontID, size float64) float64

	// FillText draws text with its top edge at (x, y); the baseline sits
	// one ascent below y.
	FillText(id FontID, size float64, c RGBA, x, y float64, text string) error

	// Flush submits all queued drawing commands to the GPU.
	Flush() error
}
