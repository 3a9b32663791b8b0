package ggrender

import "errors"

// Sentinel errors for package ggrender.
var (
	// ErrNilCanvas is returned when a Backend is created without a canvas.
	ErrNilCanvas = errors.New("ggrender: nil canvas")

	// ErrNilSurface is returned when a Backend is created without a
	// surface context.
	ErrNilSurface = errors.New("ggrender: nil surface context")

	// ErrFontUnavailable is returned when no font matches a request in
	// either the application registry or the system index.
	ErrFontUnavailable = errors.New("ggrender: no matching font found")

	// ErrImageUnavailable is returned when an image source cannot be
	// decoded. Draw calls treat it as recoverable and skip the draw.
	ErrImageUnavailable = errors.New("ggrender: image unavailable")

	// ErrUnknownImage is returned by canvases when an ImageID does not
	// refer to an uploaded image.
	ErrUnknownImage = errors.New("ggrender: unknown image id")
)
