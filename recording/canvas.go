package recording

import (
	"fmt"
	"image"
	"unicode/utf8"

	"github.com/gogpu/ggrender"
)

// Canvas records every drawing call instead of rasterizing. It implements
// ggrender.Canvas with deterministic text metrics, so renderer behavior can
// be asserted command by command without a GPU.
//
// Like any Canvas it is not safe for concurrent use.
type Canvas struct {
	commands []Command

	width, height int

	nextImage ggrender.ImageID
	images    map[ggrender.ImageID]image.Point
	created   []ggrender.ImageID
	deleted   []ggrender.ImageID

	nextFont ggrender.FontID
	fonts    map[ggrender.FontID]bool

	// GlyphAdvance and LineHeight define the fake text metrics: every rune
	// advances by GlyphAdvance and every font is LineHeight tall, regardless
	// of the requested size.
	GlyphAdvance float64
	LineHeight   float64
}

var _ ggrender.Canvas = (*Canvas)(nil)

// New returns an empty recording canvas with a glyph advance of 10 and a
// line height of 16.
func New() *Canvas {
	return &Canvas{
		images:       make(map[ggrender.ImageID]image.Point),
		fonts:        make(map[ggrender.FontID]bool),
		GlyphAdvance: 10,
		LineHeight:   16,
	}
}

// Commands returns the recorded commands in call order.
func (c *Canvas) Commands() []Command { return c.commands }

// Reset drops the recorded commands. Image and font registries survive, so
// handles issued before the reset stay valid.
func (c *Canvas) Reset() { c.commands = nil }

// CreatedImages returns every image handle issued, in creation order.
func (c *Canvas) CreatedImages() []ggrender.ImageID { return c.created }

// DeletedImages returns every deleted image handle, in deletion order.
func (c *Canvas) DeletedImages() []ggrender.ImageID { return c.deleted }

// LiveImageCount returns the number of images created and not yet deleted.
func (c *Canvas) LiveImageCount() int { return len(c.images) }

func (c *Canvas) record(cmd Command) { c.commands = append(c.commands, cmd) }

func (c *Canvas) SetSize(width, height int) {
	c.width, c.height = width, height
	c.record(SetSizeCmd{Width: width, Height: height})
}

// Size returns the last size set via SetSize.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

func (c *Canvas) Clear(col ggrender.RGBA) { c.record(ClearCmd{Color: col}) }

func (c *Canvas) Save()    { c.record(SaveCmd{}) }
func (c *Canvas) Restore() { c.record(RestoreCmd{}) }

func (c *Canvas) Translate(dx, dy float64) { c.record(TranslateCmd{Dx: dx, Dy: dy}) }
func (c *Canvas) Scale(sx, sy float64)     { c.record(ScaleCmd{Sx: sx, Sy: sy}) }

func (c *Canvas) FillPath(p *ggrender.Path, paint ggrender.Paint) {
	c.record(FillPathCmd{Elements: snapshot(p), Paint: paint})
}

func (c *Canvas) StrokePath(p *ggrender.Path, paint ggrender.Paint) {
	c.record(StrokePathCmd{Elements: snapshot(p), Paint: paint})
}

func snapshot(p *ggrender.Path) []ggrender.PathElement {
	elems := p.Elements()
	out := make([]ggrender.PathElement, len(elems))
	copy(out, elems)
	return out
}

func (c *Canvas) IntersectScissor(r ggrender.Rect) { c.record(IntersectScissorCmd{Rect: r}) }
func (c *Canvas) ResetScissor()                    { c.record(ResetScissorCmd{}) }

func (c *Canvas) CreateImage(img image.Image) (ggrender.ImageID, error) {
	b := img.Bounds()
	return c.registerImage(b.Dx(), b.Dy())
}

func (c *Canvas) CreateImageRGBA(width, height int, premul []byte) (ggrender.ImageID, error) {
	if len(premul) != 4*width*height {
		return 0, fmt.Errorf("recording: pixel buffer is %d bytes, want %d", len(premul), 4*width*height)
	}
	return c.registerImage(width, height)
}

func (c *Canvas) registerImage(width, height int) (ggrender.ImageID, error) {
	c.nextImage++
	id := c.nextImage
	c.images[id] = image.Pt(width, height)
	c.created = append(c.created, id)
	return id, nil
}

func (c *Canvas) ImageSize(id ggrender.ImageID) (int, int, error) {
	size, ok := c.images[id]
	if !ok {
		return 0, 0, fmt.Errorf("recording: image %d: %w", id, ggrender.ErrUnknownImage)
	}
	return size.X, size.Y, nil
}

func (c *Canvas) DeleteImage(id ggrender.ImageID) {
	if _, ok := c.images[id]; !ok {
		return
	}
	delete(c.images, id)
	c.deleted = append(c.deleted, id)
}

func (c *Canvas) AddFontMem(data []byte) (ggrender.FontID, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("recording: empty font data")
	}
	return c.registerFont(), nil
}

func (c *Canvas) AddFontFile(path string) (ggrender.FontID, error) {
	if path == "" {
		return 0, fmt.Errorf("recording: empty font path")
	}
	return c.registerFont(), nil
}

func (c *Canvas) registerFont() ggrender.FontID {
	c.nextFont++
	c.fonts[c.nextFont] = true
	return c.nextFont
}

func (c *Canvas) TextWidth(id ggrender.FontID, size float64, text string) float64 {
	return c.GlyphAdvance * float64(utf8.RuneCountInString(text))
}

func (c *Canvas) FontHeight(id ggrender.FontID, size float64) float64 {
	return c.LineHeight
}

func (c *Canvas) FillText(id ggrender.FontID, size float64, col ggrender.RGBA, x, y float64, text string) error {
	if !c.fonts[id] {
		return fmt.Errorf("recording: unknown font %d", id)
	}
	c.record(FillTextCmd{Font: id, Size: size, Color: col, X: x, Y: y, Text: text})
	return nil
}

func (c *Canvas) Flush() error {
	c.record(FlushCmd{})
	return nil
}

// Replay plays the recorded state and drawing commands back onto dst.
// Resource commands are not replayed: image and font handles in paints and
// text commands refer to this recording's registries, so a meaningful
// replay target must share them or ignore them.
func (c *Canvas) Replay(dst ggrender.Canvas) error {
	for _, cmd := range c.commands {
		switch cmd := cmd.(type) {
		case SetSizeCmd:
			dst.SetSize(cmd.Width, cmd.Height)
		case ClearCmd:
			dst.Clear(cmd.Color)
		case SaveCmd:
			dst.Save()
		case RestoreCmd:
			dst.Restore()
		case TranslateCmd:
			dst.Translate(cmd.Dx, cmd.Dy)
		case ScaleCmd:
			dst.Scale(cmd.Sx, cmd.Sy)
		case FillPathCmd:
			dst.FillPath(rebuild(cmd.Elements), cmd.Paint)
		case StrokePathCmd:
			dst.StrokePath(rebuild(cmd.Elements), cmd.Paint)
		case IntersectScissorCmd:
			dst.IntersectScissor(cmd.Rect)
		case ResetScissorCmd:
			dst.ResetScissor()
		case FillTextCmd:
			if err := dst.FillText(cmd.Font, cmd.Size, cmd.Color, cmd.X, cmd.Y, cmd.Text); err != nil {
				return err
			}
		case FlushCmd:
			if err := dst.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

func rebuild(elems []ggrender.PathElement) *ggrender.Path {
	var p ggrender.Path
	for _, e := range elems {
		switch e.Verb {
		case ggrender.VerbRect:
			p.Rect(e.Rect)
		case ggrender.VerbRoundedRect:
			p.RoundedRect(e.Rect, e.Radius)
		}
	}
	return &p
}
