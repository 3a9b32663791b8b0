package recording

import (
	"image"
	"testing"

	"github.com/gogpu/ggrender"
)

func TestRecordsCommandsInOrder(t *testing.T) {
	c := New()
	c.SetSize(800, 600)
	c.Clear(ggrender.RGB(1, 1, 1))
	c.Save()
	c.Translate(10, 20)
	var p ggrender.Path
	p.Rect(ggrender.RectXYWH(0, 0, 100, 50))
	c.FillPath(&p, ggrender.ColorPaint(ggrender.RGB(1, 0, 0)))
	c.Restore()

	want := []CommandType{CmdSetSize, CmdClear, CmdSave, CmdTranslate, CmdFillPath, CmdRestore}
	cmds := c.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("recorded %d commands, want %d", len(cmds), len(want))
	}
	for i, cmd := range cmds {
		if cmd.Type() != want[i] {
			t.Errorf("command %d is %v, want %v", i, cmd.Type(), want[i])
		}
	}
}

func TestFillPathSnapshotsElements(t *testing.T) {
	c := New()
	var p ggrender.Path
	p.Rect(ggrender.RectXYWH(0, 0, 10, 10))
	c.FillPath(&p, ggrender.ColorPaint(ggrender.RGB(0, 0, 0)))

	// Mutating the path after recording must not change the recording.
	p.Rect(ggrender.RectXYWH(5, 5, 1, 1))

	fill := c.Commands()[0].(FillPathCmd)
	if len(fill.Elements) != 1 {
		t.Fatalf("snapshot has %d elements, want 1", len(fill.Elements))
	}
	if got := fill.Elements[0].Rect; got != ggrender.RectXYWH(0, 0, 10, 10) {
		t.Errorf("snapshot rect = %+v", got)
	}
}

func TestImageRegistry(t *testing.T) {
	c := New()
	id, err := c.CreateImage(image.NewRGBA(image.Rect(0, 0, 32, 16)))
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := c.ImageSize(id)
	if err != nil {
		t.Fatal(err)
	}
	if w != 32 || h != 16 {
		t.Errorf("size = %dx%d, want 32x16", w, h)
	}

	c.DeleteImage(id)
	if _, _, err := c.ImageSize(id); err == nil {
		t.Error("ImageSize succeeded after delete")
	}
	if got := c.DeletedImages(); len(got) != 1 || got[0] != id {
		t.Errorf("DeletedImages = %v", got)
	}
	if c.LiveImageCount() != 0 {
		t.Errorf("LiveImageCount = %d, want 0", c.LiveImageCount())
	}

	// Deleting again is a no-op, not a double delete.
	c.DeleteImage(id)
	if got := c.DeletedImages(); len(got) != 1 {
		t.Errorf("double delete recorded: %v", got)
	}
}

func TestCreateImageRGBAValidatesLength(t *testing.T) {
	c := New()
	if _, err := c.CreateImageRGBA(4, 4, make([]byte, 7)); err == nil {
		t.Error("short pixel buffer accepted")
	}
	if _, err := c.CreateImageRGBA(4, 4, make([]byte, 64)); err != nil {
		t.Errorf("valid pixel buffer rejected: %v", err)
	}
}

func TestDeterministicTextMetrics(t *testing.T) {
	c := New()
	id, err := c.AddFontMem([]byte{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.TextWidth(id, 12, "hello"); got != 50 {
		t.Errorf("TextWidth = %v, want 50", got)
	}
	if got := c.FontHeight(id, 12); got != 16 {
		t.Errorf("FontHeight = %v, want 16", got)
	}
	if err := c.FillText(id, 12, ggrender.RGB(0, 0, 0), 1, 2, "hi"); err != nil {
		t.Fatal(err)
	}
	if err := c.FillText(id+1, 12, ggrender.RGB(0, 0, 0), 1, 2, "hi"); err == nil {
		t.Error("FillText accepted an unknown font")
	}
}

func TestReplay(t *testing.T) {
	src := New()
	src.SetSize(100, 100)
	src.Clear(ggrender.RGB(0, 0, 0))
	src.Save()
	src.Scale(2, 2)
	var p ggrender.Path
	p.RoundedRect(ggrender.RectXYWH(0, 0, 40, 40), 4)
	src.StrokePath(&p, ggrender.Paint{Color: ggrender.RGB(1, 0, 0), LineWidth: 2})
	src.Restore()
	src.IntersectScissor(ggrender.RectXYWH(10, 10, 20, 20))
	src.ResetScissor()

	dst := New()
	if err := src.Replay(dst); err != nil {
		t.Fatal(err)
	}

	got := dst.Commands()
	want := src.Commands()
	if len(got) != len(want) {
		t.Fatalf("replayed %d commands, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Type() != want[i].Type() {
			t.Errorf("command %d is %v, want %v", i, got[i].Type(), want[i].Type())
		}
	}
	stroke := got[4].(StrokePathCmd)
	if stroke.Paint.LineWidth != 2 {
		t.Errorf("replayed stroke width = %v", stroke.Paint.LineWidth)
	}
	if stroke.Elements[0].Radius != 4 {
		t.Errorf("replayed radius = %v", stroke.Elements[0].Radius)
	}
}
