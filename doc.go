// Package ggrender is a rendering backend that sits between a declarative
// UI item tree and a GPU-backed 2D canvas.
//
// The backend translates drawable items (rectangles, bordered rectangles,
// images, clipped images, text) into canvas draw calls each frame while
// retaining expensive resources across frames:
//
//   - decoded and uploaded images are deduplicated by content identity and
//     reference-counted, with unreferenced entries swept at frame end
//   - loaded fonts are cached by (family, weight) for the session
//   - each item carries a rendering-cache slot holding its GPU resource,
//     invalidated externally when the item's source changes
//
// A frame is bracketed by [Backend.NewRenderer] and [Backend.FlushRenderer],
// which also perform the GPU context current/not-current handoff through a
// [SurfaceContext]. The context is exclusive: overlapping frames are a
// programming error and panic.
//
// The drawing surface itself is abstracted behind the [Canvas] interface.
// Package ggcanvas provides a production implementation on top of
// github.com/gogpu/gg; package recording provides a command-list canvas
// useful for testing and draw-call inspection.
//
// ggrender is silent by default. Call [SetLogger] to enable logging.
package ggrender
