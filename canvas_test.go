package ggrender

import (
	"image"
	"unicode/utf8"
)

// testOp is one recorded canvas call.
type testOp struct {
	kind  string // "save", "restore", "translate", "scale", "fill", "stroke", "clear", "scissor", "resetScissor", "text"
	x, y  float64
	rect  Rect
	paint Paint
	elems []PathElement
	size  float64
	text  string
	font  FontID
}

// testCanvas is an in-package Canvas fake with deterministic text metrics:
// every rune is 10 wide and every font is 16 tall.
type testCanvas struct {
	ops           []testOp
	width, height int

	nextImage ImageID
	images    map[ImageID][2]int
	created   int
	deleted   []ImageID
	createErr error

	nextFont FontID
	fonts    map[FontID]bool
	fontMem  int
	fontFile int

	flushErr error
	flushed  int
}

func newTestCanvas() *testCanvas {
	return &testCanvas{
		images: make(map[ImageID][2]int),
		fonts:  make(map[FontID]bool),
	}
}

func (c *testCanvas) opKinds() []string {
	kinds := make([]string, len(c.ops))
	for i, op := range c.ops {
		kinds[i] = op.kind
	}
	return kinds
}

func (c *testCanvas) opsOf(kind string) []testOp {
	var out []testOp
	for _, op := range c.ops {
		if op.kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func (c *testCanvas) SetSize(width, height int) { c.width, c.height = width, height }

func (c *testCanvas) Clear(col RGBA) { c.ops = append(c.ops, testOp{kind: "clear"}) }

func (c *testCanvas) Save()    { c.ops = append(c.ops, testOp{kind: "save"}) }
func (c *testCanvas) Restore() { c.ops = append(c.ops, testOp{kind: "restore"}) }

func (c *testCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, testOp{kind: "translate", x: dx, y: dy})
}

func (c *testCanvas) Scale(sx, sy float64) {
	c.ops = append(c.ops, testOp{kind: "scale", x: sx, y: sy})
}

func snapshotElems(p *Path) []PathElement {
	elems := p.Elements()
	out := make([]PathElement, len(elems))
	copy(out, elems)
	return out
}

func (c *testCanvas) FillPath(p *Path, paint Paint) {
	c.ops = append(c.ops, testOp{kind: "fill", paint: paint, elems: snapshotElems(p)})
}

func (c *testCanvas) StrokePath(p *Path, paint Paint) {
	c.ops = append(c.ops, testOp{kind: "stroke", paint: paint, elems: snapshotElems(p)})
}

func (c *testCanvas) IntersectScissor(r Rect) {
	c.ops = append(c.ops, testOp{kind: "scissor", rect: r})
}

func (c *testCanvas) ResetScissor() {
	c.ops = append(c.ops, testOp{kind: "resetScissor"})
}

func (c *testCanvas) CreateImage(img image.Image) (ImageID, error) {
	b := img.Bounds()
	return c.register(b.Dx(), b.Dy())
}

func (c *testCanvas) CreateImageRGBA(width, height int, premul []byte) (ImageID, error) {
	return c.register(width, height)
}

func (c *testCanvas) register(w, h int) (ImageID, error) {
	if c.createErr != nil {
		return 0, c.createErr
	}
	c.nextImage++
	c.created++
	c.images[c.nextImage] = [2]int{w, h}
	return c.nextImage, nil
}

func (c *testCanvas) ImageSize(id ImageID) (int, int, error) {
	size, ok := c.images[id]
	if !ok {
		return 0, 0, ErrUnknownImage
	}
	return size[0], size[1], nil
}

func (c *testCanvas) DeleteImage(id ImageID) {
	if _, ok := c.images[id]; !ok {
		return
	}
	delete(c.images, id)
	c.deleted = append(c.deleted, id)
}

func (c *testCanvas) AddFontMem(data []byte) (FontID, error) {
	c.fontMem++
	return c.addFont()
}

func (c *testCanvas) AddFontFile(path string) (FontID, error) {
	c.fontFile++
	return c.addFont()
}

func (c *testCanvas) addFont() (FontID, error) {
	c.nextFont++
	c.fonts[c.nextFont] = true
	return c.nextFont, nil
}

func (c *testCanvas) TextWidth(id FontID, size float64, text string) float64 {
	return 10 * float64(utf8.RuneCountInString(text))
}

func (c *testCanvas) FontHeight(id FontID, size float64) float64 { return 16 }

func (c *testCanvas) FillText(id FontID, size float64, col RGBA, x, y float64, text string) error {
	c.ops = append(c.ops, testOp{kind: "text", font: id, size: size, x: x, y: y, text: text})
	return nil
}

func (c *testCanvas) Flush() error {
	c.flushed++
	return c.flushErr
}

// testSurface is a SurfaceContext fake tracking currency and presentation.
type testSurface struct {
	width, height int
	scale         float64

	current    bool
	currentErr error
	swaps      int
	swapErr    error
}

func newTestSurface(w, h int) *testSurface {
	return &testSurface{width: w, height: h, scale: 1}
}

func (s *testSurface) MakeCurrent() error {
	if s.currentErr != nil {
		return s.currentErr
	}
	s.current = true
	return nil
}

func (s *testSurface) MakeNotCurrent() error {
	s.current = false
	return nil
}

func (s *testSurface) SwapBuffers() error {
	s.swaps++
	return s.swapErr
}

func (s *testSurface) Size() (int, int)     { return s.width, s.height }
func (s *testSurface) ScaleFactor() float64 { return s.scale }
