// Package whiteboard implements the drawing-surface engine for whiteboard
// documents: a destructive base raster with pen and eraser strokes, a
// non-destructive highlighter overlay rendered from retained vector strokes,
// floating text and media elements, snapshot-based undo/redo, and the
// serialization contract for the persisted document shape.
package whiteboard

// CanvasSize is the side length of the fixed square drawing surface.
const CanvasSize = 2000

// HistoryLimit is the maximum number of retained undo snapshots. When the
// list grows past this, the oldest entries are dropped from the front.
const HistoryLimit = 200

// DefaultHighlighterOpacity is used when a document carries no valid
// highlighter opacity of its own.
const DefaultHighlighterOpacity = 0.2

// DocumentExt is the file extension for persisted whiteboard documents.
const DocumentExt = ".wboard"

// Bounds for sanitized numeric fields.
const (
	MinStrokeWidth = 1.0
	MaxStrokeWidth = 200.0
	MinOpacity     = 0.05
	MaxOpacity     = 1.0
	MinFontSize    = 8.0
	MaxFontSize    = 200.0
	MinMediaWidth  = 40.0
	MinMediaHeight = 30.0
)

// Tool identifies the active drawing tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPen
	ToolEraser
	ToolHighlighter
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolPen:
		return "Pen"
	case ToolEraser:
		return "Eraser"
	case ToolHighlighter:
		return "Highlighter"
	case ToolText:
		return "Text"
	default:
		return "Unknown"
	}
}

// IsStrokeTool reports whether the tool draws on the raster surfaces.
func (t Tool) IsStrokeTool() bool {
	return t == ToolPen || t == ToolEraser || t == ToolHighlighter
}
