package ggrender

import "github.com/gogpu/ggrender/internal/slotcache"

// CacheSlot is the per-item rendering-cache handle. Each drawable item that
// caches a GPU resource owns exactly one slot, stored alongside the item by
// the item tree. The zero value is an empty slot.
//
// The backend owns the slot's contents exclusively. The item tree must never
// write into it; its only obligation is to call
// [Backend.ReleaseItemGraphicsCache] before mutating the item's source
// property, so the next draw recomputes the resource.
type CacheSlot = slotcache.Slot

// HorizontalAlignment positions text within its item's width.
type HorizontalAlignment uint8

const (
	AlignLeft HorizontalAlignment = iota
	AlignHCenter
	AlignRight
)

// VerticalAlignment positions text within its item's height.
type VerticalAlignment uint8

const (
	AlignTop VerticalAlignment = iota
	AlignVCenter
	AlignBottom
)

// ImageSourceKind discriminates the variants of an ImageSource.
type ImageSourceKind uint8

const (
	// SourceNone means the item has no image; drawing it is a no-op.
	SourceNone ImageSourceKind = iota
	// SourceFile refers to an image file by absolute path.
	SourceFile
	// SourceEmbedded refers to encoded image bytes compiled into the
	// program. The bytes are identified by address, not content: the
	// caller must pass the same backing slice for the same image.
	SourceEmbedded
)

// ImageSource identifies an item's image content. The zero value is the
// none source.
type ImageSource struct {
	kind ImageSourceKind
	path string
	data []byte
}

// FileImage returns a source referring to an image file.
func FileImage(path string) ImageSource {
	return ImageSource{kind: SourceFile, path: path}
}

// EmbeddedImage returns a source referring to embedded encoded image bytes.
func EmbeddedImage(data []byte) ImageSource {
	return ImageSource{kind: SourceEmbedded, data: data}
}

// Kind returns the source variant.
func (s ImageSource) Kind() ImageSourceKind { return s.kind }

// Path returns the file path of a SourceFile source.
func (s ImageSource) Path() string { return s.path }

// Data returns the bytes of a SourceEmbedded source.
func (s ImageSource) Data() []byte { return s.data }

// The item interfaces below are the contract consumed from the UI item
// tree. Geometry is in logical pixels relative to the item's parent; the
// renderer receives the parent's accumulated origin separately.

// RectangleItem is a flat colored rectangle.
type RectangleItem interface {
	Geometry() Rect
	Color() RGBA
}

// BorderRectangleItem is a rectangle with an inner border and optional
// rounded corners.
type BorderRectangleItem interface {
	Geometry() Rect
	Color() RGBA
	BorderColor() RGBA
	BorderWidth() float64
	BorderRadius() float64
}

// ImageItem is an item displaying a decoded image, optionally scaled to the
// item's geometry.
type ImageItem interface {
	Geometry() Rect
	Source() ImageSource

	// RenderingCache returns the item's cache slot. The same slot must be
	// returned for the item's whole lifetime.
	RenderingCache() *CacheSlot
}

// ClippedImageItem is an ImageItem that samples only a sub-rectangle of its
// source image. An empty SourceClip means the full image.
type ClippedImageItem interface {
	ImageItem
	SourceClip() Rect
}

// TextItem is a single run of aligned text.
type TextItem interface {
	Geometry() Rect
	Text() string
	Color() RGBA
	FontRequest() FontRequest
	HorizontalAlignment() HorizontalAlignment
	VerticalAlignment() VerticalAlignment
}

// TextInputItem is an editable text item. Rendering of caret and selection
// is not implemented in this generation of the backend.
type TextInputItem interface {
	TextItem
}

// PathItem is a vector path item. Rendering is not implemented in this
// generation of the backend.
type PathItem interface {
	Geometry() Rect
}

// ClipItem restricts drawing of its subtree to its geometry.
type ClipItem interface {
	Geometry() Rect
}
