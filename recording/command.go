package recording

import "github.com/gogpu/ggrender"

// CommandType identifies the kind of a recorded command.
type CommandType uint8

const (
	CmdSetSize CommandType = iota
	CmdClear
	CmdSave
	CmdRestore
	CmdTranslate
	CmdScale
	CmdFillPath
	CmdStrokePath
	CmdIntersectScissor
	CmdResetScissor
	CmdFillText
	CmdFlush
)

var commandTypeNames = [...]string{
	CmdSetSize:          "SetSize",
	CmdClear:            "Clear",
	CmdSave:             "Save",
	CmdRestore:          "Restore",
	CmdTranslate:        "Translate",
	CmdScale:            "Scale",
	CmdFillPath:         "FillPath",
	CmdStrokePath:       "StrokePath",
	CmdIntersectScissor: "IntersectScissor",
	CmdResetScissor:     "ResetScissor",
	CmdFillText:         "FillText",
	CmdFlush:            "Flush",
}

// String returns the name of the command type.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by every recorded command.
type Command interface {
	Type() CommandType
}

type SetSizeCmd struct {
	Width, Height int
}

func (SetSizeCmd) Type() CommandType { return CmdSetSize }

type ClearCmd struct {
	Color ggrender.RGBA
}

func (ClearCmd) Type() CommandType { return CmdClear }

type SaveCmd struct{}

func (SaveCmd) Type() CommandType { return CmdSave }

type RestoreCmd struct{}

func (RestoreCmd) Type() CommandType { return CmdRestore }

type TranslateCmd struct {
	Dx, Dy float64
}

func (TranslateCmd) Type() CommandType { return CmdTranslate }

type ScaleCmd struct {
	Sx, Sy float64
}

func (ScaleCmd) Type() CommandType { return CmdScale }

// FillPathCmd records a fill together with a snapshot of the path elements,
// taken at record time since callers may reuse the path.
type FillPathCmd struct {
	Elements []ggrender.PathElement
	Paint    ggrender.Paint
}

func (FillPathCmd) Type() CommandType { return CmdFillPath }

type StrokePathCmd struct {
	Elements []ggrender.PathElement
	Paint    ggrender.Paint
}

func (StrokePathCmd) Type() CommandType { return CmdStrokePath }

type IntersectScissorCmd struct {
	Rect ggrender.Rect
}

func (IntersectScissorCmd) Type() CommandType { return CmdIntersectScissor }

type ResetScissorCmd struct{}

func (ResetScissorCmd) Type() CommandType { return CmdResetScissor }

type FillTextCmd struct {
	Font  ggrender.FontID
	Size  float64
	Color ggrender.RGBA
	X, Y  float64
	Text  string
}

func (FillTextCmd) Type() CommandType { return CmdFillText }

type FlushCmd struct{}

func (FlushCmd) Type() CommandType { return CmdFlush }
