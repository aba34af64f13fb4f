package whiteboard

import (
	"fmt"
	"image"
	"log"
	"strings"
	"sync"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/colorutil"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"

	"github.com/google/uuid"
)

// Settings holds the active tool parameters. The highlighter opacity is not
// here: it is document state, owned by the controller and persisted.
type Settings struct {
	PenColor         string
	PenWidth         float64
	EraserWidth      float64
	HighlighterColor string
	HighlighterWidth float64
	TextColor        string
	TextSize         float64
	SmoothStrokes    bool
}

// DefaultSettings returns the tool parameters used before preferences load.
func DefaultSettings() Settings {
	return Settings{
		PenColor:         "#1a1a1a",
		PenWidth:         3,
		EraserWidth:      24,
		HighlighterColor: "#ffeb3b",
		HighlighterWidth: 14,
		TextColor:        "#1a1a1a",
		TextSize:         16,
		SmoothStrokes:    true,
	}
}

// interactionKind is the mutually exclusive transient pointer interaction.
type interactionKind int

const (
	interactionNone interactionKind = iota
	interactionStroke
	interactionDrag
	interactionResize
)

// strokeState captures an in-progress pen, eraser or highlighter stroke.
type strokeState struct {
	tool    Tool
	color   string
	width   float64
	opacity float64
	points  []geometry.Point2D
	last    geometry.Point2D
}

// minMoveDistance is the pointer travel below which a move event counts as
// a stationary pointer. Stamping rounds to whole pixels, so drops this
// small never change the raster.
const minMoveDistance = 0.25

// dragState captures an in-progress element drag.
type dragState struct {
	kind   ElementKind
	id     string
	offset geometry.Point2D // pointer minus element origin at grab time
	start  geometry.Point2D // element origin at grab time
}

// resizeState captures an in-progress media resize from the corner handle.
type resizeState struct {
	id     string
	startW float64
	startH float64
	gripX  float64 // pointer distance to the right edge at grab time
	gripY  float64 // pointer distance to the bottom edge at grab time
}

// Controller owns the whole working state of one open whiteboard: the
// raster surfaces, the retained highlighter strokes, the floating elements,
// the snapshot history, and the single transient interaction slot. All
// operations are synchronous; the mutex only serializes re-entry from the
// autosave timers against the input path.
type Controller struct {
	mu sync.Mutex

	surface  *Surface
	elements *Elements
	history  *History

	strokes []HighlighterStroke
	opacity float64

	tool     Tool
	settings Settings

	interaction interactionKind
	stroke      *strokeState
	drag        *dragState
	resize      *resizeState

	selected  Selection
	editingID string

	size float64

	// onCommit fires after every committed document change, including
	// history restores. Set once during wiring, before any input arrives.
	onCommit func()

	// encodeBase is the raster read used when building snapshots; it is a
	// field so the failure path stays testable.
	encodeBase func(image.Image) (string, error)
}

// NewController creates a controller over an empty surface of the given
// side length. The application passes CanvasSize; tests use smaller sizes.
func NewController(size int) *Controller {
	c := &Controller{
		surface:    NewSurface(size),
		elements:   NewElements(float64(size)),
		history:    NewHistory(),
		strokes:    []HighlighterStroke{},
		opacity:    DefaultHighlighterOpacity,
		tool:       ToolPen,
		settings:   DefaultSettings(),
		size:       float64(size),
		encodeBase: EncodeBaseData,
	}
	// The initial entry uses the same raster encoding as later commits so
	// a no-change commit dedupes against it.
	if snap, _, err := c.buildSnapshotLocked(); err == nil {
		c.history.Reset(snap)
	} else {
		c.history.Reset(EmptySnapshot())
	}
	return c
}

// OnCommit registers the committed-change callback.
func (c *Controller) OnCommit(fn func()) {
	c.onCommit = fn
}

func (c *Controller) notifyCommit() {
	if c.onCommit != nil {
		c.onCommit()
	}
}

// Surface returns the raster surfaces for rendering.
func (c *Controller) Surface() *Surface {
	return c.surface
}

// Elements returns the floating element collections.
func (c *Controller) Elements() *Elements {
	return c.elements
}

// Tool returns the active tool.
func (c *Controller) Tool() Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tool
}

// SetTool switches the active tool, force-committing any in-progress
// stroke or text edit first. Switching tools clears the selection.
func (c *Controller) SetTool(t Tool) {
	c.mu.Lock()
	if t == c.tool {
		c.mu.Unlock()
		return
	}
	committed := c.finishInteractionLocked()
	if c.editingID != "" {
		committed = c.commitTextEditLocked() || committed
	}
	c.tool = t
	c.selected = Selection{}
	c.mu.Unlock()

	if committed {
		c.notifyCommit()
	}
}

// Settings returns the active tool parameters.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SetSettings replaces the tool parameters. Unparseable colors revert to
// their defaults and out-of-range widths clamp to the sanitizer bounds.
// Already-retained strokes are unaffected.
func (c *Controller) SetSettings(s Settings) {
	def := DefaultSettings()
	if !colorutil.IsHex(s.PenColor) {
		s.PenColor = def.PenColor
	}
	if !colorutil.IsHex(s.HighlighterColor) {
		s.HighlighterColor = def.HighlighterColor
	}
	if !colorutil.IsHex(s.TextColor) {
		s.TextColor = def.TextColor
	}
	s.PenWidth = geometry.Clamp(s.PenWidth, MinStrokeWidth, MaxStrokeWidth)
	s.EraserWidth = geometry.Clamp(s.EraserWidth, MinStrokeWidth, MaxStrokeWidth)
	s.HighlighterWidth = geometry.Clamp(s.HighlighterWidth, MinStrokeWidth, MaxStrokeWidth)
	s.TextSize = geometry.Clamp(s.TextSize, MinFontSize, MaxFontSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s
}

// Opacity returns the session highlighter opacity.
func (c *Controller) Opacity() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opacity
}

// SetHighlighterOpacity sets the session highlighter opacity for strokes
// created from now on. Callers commit separately once the adjustment is
// final, since the value is part of the persisted document.
func (c *Controller) SetHighlighterOpacity(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opacity = geometry.Clamp(v, MinOpacity, MaxOpacity)
}

// Selected returns the current selection.
func (c *Controller) Selected() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// EditingText returns the text element currently in edit mode.
func (c *Controller) EditingText() (*TextElement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editingID == "" {
		return nil, false
	}
	t := c.elements.Text(c.editingID)
	return t, t != nil
}

// PointerDown starts a new interaction at the surface point. Anything
// still in progress is force-committed first: the interaction slot is
// exclusive.
func (c *Controller) PointerDown(p geometry.Point2D) {
	c.mu.Lock()
	committed := c.finishInteractionLocked()
	if c.editingID != "" {
		committed = c.commitTextEditLocked() || committed
	}

	p = geometry.ClampPoint(p, c.size)
	switch {
	case c.tool.IsStrokeTool():
		c.beginStrokeLocked(p)
	case c.tool == ToolText:
		c.createTextLocked(p)
	case c.tool == ToolSelect:
		c.beginDragLocked(p)
	}
	c.mu.Unlock()

	if committed {
		c.notifyCommit()
	}
}

// PointerMove extends the active interaction. Without one it does nothing.
func (c *Controller) PointerMove(p geometry.Point2D) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p = geometry.ClampPoint(p, c.size)
	switch c.interaction {
	case interactionStroke:
		c.continueStrokeLocked(p)
	case interactionDrag:
		c.updateDragLocked(p)
	case interactionResize:
		c.updateResizeLocked(p)
	}
}

// PointerUp ends the active interaction, committing a snapshot when the
// document actually changed.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	committed := c.finishInteractionLocked()
	c.mu.Unlock()

	if committed {
		c.notifyCommit()
	}
}

// DoubleTap re-enters edit mode on a text element under the point. This is
// the only way back into editing after the initial creation.
func (c *Controller) DoubleTap(p geometry.Point2D) {
	c.mu.Lock()
	committed := c.finishInteractionLocked()
	if c.editingID != "" {
		committed = c.commitTextEditLocked() || committed
	}

	kind, id, ok := c.elements.HitTest(geometry.ClampPoint(p, c.size))
	if ok {
		c.selected = Selection{Kind: kind, ID: id}
		if kind == KindText {
			c.editingID = id
		}
	}
	c.mu.Unlock()

	if committed {
		c.notifyCommit()
	}
}

// SetTextContent replaces the text of the element in edit mode, without
// committing. Returns false when nothing is being edited.
func (c *Controller) SetTextContent(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editingID == "" {
		return false
	}
	return c.elements.SetTextContent(c.editingID, text)
}

// CommitTextEdit exits edit mode. An element left empty or whitespace-only
// is deleted instead of retained. A snapshot is committed only when the
// document content actually changed.
func (c *Controller) CommitTextEdit() {
	c.mu.Lock()
	committed := c.commitTextEditLocked()
	c.mu.Unlock()

	if committed {
		c.notifyCommit()
	}
}

// StartTextEdit puts an existing text element into edit mode.
func (c *Controller) StartTextEdit(id string) {
	c.mu.Lock()
	committed := false
	if c.editingID != "" && c.editingID != id {
		committed = c.commitTextEditLocked()
	}
	if t := c.elements.Text(id); t != nil {
		c.selected = Selection{Kind: KindText, ID: id}
		c.editingID = id
	}
	c.mu.Unlock()

	if committed {
		c.notifyCommit()
	}
}

// Media display sizing on insertion.
const (
	maxMediaDisplayWidth = 400.0

	defaultVideoWidth  = 400.0
	defaultVideoHeight = 225.0
	defaultAudioWidth  = 300.0
	defaultAudioHeight = 54.0
)

// CreateMedia inserts a media element centered on the given viewport
// point, selects it, and commits. Image payloads are probed for their
// intrinsic size and scaled down to the maximum display width; probe
// failures fall back to default dimensions. Returns the new element's ID.
func (c *Controller) CreateMedia(mtype MediaType, src, name string, center geometry.Point2D) string {
	c.mu.Lock()
	committed := c.finishInteractionLocked()
	if c.editingID != "" {
		committed = c.commitTextEditLocked() || committed
	}

	var w, h float64
	switch mtype {
	case MediaVideo:
		w, h = defaultVideoWidth, defaultVideoHeight
	case MediaAudio:
		w, h = defaultAudioWidth, defaultAudioHeight
	default:
		pw, ph, err := ProbeImageSize(src)
		if err != nil || pw <= 0 || ph <= 0 {
			log.Printf("whiteboard: media size probe failed, using defaults: %v", err)
			w, h = fallbackMediaWidth, fallbackMediaHeight
		} else {
			w, h = float64(pw), float64(ph)
			if w > maxMediaDisplayWidth {
				h = h * maxMediaDisplayWidth / w
				w = maxMediaDisplayWidth
			}
		}
	}
	w = geometry.Clamp(w, MinMediaWidth, c.size)
	h = geometry.Clamp(h, MinMediaHeight, c.size)

	m := &MediaElement{
		ID:     uuid.NewString(),
		Type:   mtype,
		Src:    src,
		Name:   name,
		X:      geometry.Clamp(center.X-w/2, 0, c.size-w),
		Y:      geometry.Clamp(center.Y-h/2, 0, c.size-h),
		Width:  w,
		Height: h,
	}
	c.elements.AddMedia(m)
	c.selected = Selection{Kind: KindMedia, ID: m.ID}
	committed = c.commitLocked() || committed
	c.mu.Unlock()

	if committed {
		c.notifyCommit()
	}
	return m.ID
}

// DeleteSelected removes the selected element and commits. Returns whether
// anything was deleted.
func (c *Controller) DeleteSelected() bool {
	c.mu.Lock()
	sel := c.selected
	removed := false
	switch sel.Kind {
	case KindText:
		removed = c.elements.RemoveText(sel.ID)
		if c.editingID == sel.ID {
			c.editingID = ""
		}
	case KindMedia:
		removed = c.elements.RemoveMedia(sel.ID)
	}

	committed := false
	if removed {
		c.selected = Selection{}
		committed = c.commitLocked()
	}
	c.mu.Unlock()

	if committed {
		c.notifyCommit()
	}
	return removed
}

// Escape force-commits in-progress work; with nothing in progress it
// clears the selection.
func (c *Controller) Escape() {
	c.mu.Lock()
	committed := false
	switch {
	case c.interaction != interactionNone:
		committed = c.finishInteractionLocked()
	case c.editingID != "":
		committed = c.commitTextEditLocked()
	default:
		c.selected = Selection{}
	}
	c.mu.Unlock()

	if committed {
		c.notifyCommit()
	}
}

// CanUndo reports whether an undo step is available.
func (c *Controller) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (c *Controller) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.CanRedo()
}

// Undo restores the previous snapshot. Returns whether a restore happened.
func (c *Controller) Undo() bool {
	c.mu.Lock()
	snap := c.history.Undo()
	if snap != nil {
		c.restoreLocked(snap)
	}
	c.mu.Unlock()

	if snap == nil {
		return false
	}
	// A restore is a real document change and must reach persistence.
	c.notifyCommit()
	return true
}

// Redo restores the next snapshot. Returns whether a restore happened.
func (c *Controller) Redo() bool {
	c.mu.Lock()
	snap := c.history.Redo()
	if snap != nil {
		c.restoreLocked(snap)
	}
	c.mu.Unlock()

	if snap == nil {
		return false
	}
	c.notifyCommit()
	return true
}

// Commit captures the current working state into history. Used by callers
// after document-visible changes that have no pointer gesture of their
// own, like adjusting the highlighter opacity.
func (c *Controller) Commit() {
	c.mu.Lock()
	committed := c.commitLocked()
	c.mu.Unlock()

	if committed {
		c.notifyCommit()
	}
}

// Load replaces the working state with a persisted document and resets the
// history to that single snapshot.
func (c *Controller) Load(raw []byte) error {
	snap, err := Deserialize(raw)
	if err != nil {
		return fmt.Errorf("load whiteboard: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.restoreLocked(snap)
	// Re-encode the restored state so the reset entry matches what later
	// commits produce for the same content.
	if rebuilt, _, err := c.buildSnapshotLocked(); err == nil {
		snap = rebuilt
	}
	c.history.Reset(snap)
	return nil
}

// EncodeDocument builds a fresh snapshot from the working state and returns
// its serialized bytes and signature. The raster read happens here, so a
// blocked or failing surface surfaces as an error to the save path.
func (c *Controller) EncodeDocument() ([]byte, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, data, err := c.buildSnapshotLocked()
	if err != nil {
		return nil, "", err
	}
	return data, snap.Signature, nil
}

// ---- internal, caller holds c.mu ----

func (c *Controller) buildSnapshotLocked() (*Snapshot, []byte, error) {
	base, err := c.encodeBase(c.surface.Base())
	if err != nil {
		return nil, nil, fmt.Errorf("read base raster: %w", err)
	}

	snap := &Snapshot{
		BaseData: base,
		Strokes:  CloneStrokes(c.strokes),
		Opacity:  c.opacity,
		Texts:    c.elements.SnapshotTexts(),
		Medias:   c.elements.SnapshotMedias(),
	}
	data, err := Serialize(snap)
	if err != nil {
		return nil, nil, err
	}
	snap.Signature = SignatureOf(data)
	return snap, data, nil
}

func (c *Controller) commitLocked() bool {
	snap, _, err := c.buildSnapshotLocked()
	if err != nil {
		log.Printf("whiteboard: snapshot skipped: %v", err)
		return false
	}
	return c.history.Push(snap)
}

func (c *Controller) restoreLocked(snap *Snapshot) {
	img, err := DecodeBaseData(snap.BaseData)
	if err != nil {
		log.Printf("whiteboard: base raster restore failed, clearing: %v", err)
		img = nil
	}
	c.surface.SetBase(img)

	c.strokes = CloneStrokes(snap.Strokes)
	c.surface.RenderOverlay(c.strokes)
	c.opacity = snap.Opacity
	c.elements.SetTexts(snap.Texts)
	c.elements.SetMedias(snap.Medias)

	c.interaction = interactionNone
	c.stroke = nil
	c.drag = nil
	c.resize = nil
	c.selected = Selection{}
	c.editingID = ""
}

func (c *Controller) finishInteractionLocked() bool {
	switch c.interaction {
	case interactionStroke:
		return c.endStrokeLocked()
	case interactionDrag:
		return c.endDragLocked()
	case interactionResize:
		return c.endResizeLocked()
	}
	return false
}

func (c *Controller) beginStrokeLocked(p geometry.Point2D) {
	st := &strokeState{tool: c.tool}
	switch c.tool {
	case ToolPen:
		st.color = c.settings.PenColor
		st.width = c.settings.PenWidth
	case ToolEraser:
		st.width = c.settings.EraserWidth
	case ToolHighlighter:
		st.color = c.settings.HighlighterColor
		st.width = c.settings.HighlighterWidth
		st.opacity = c.opacity
	}

	if c.tool == ToolEraser {
		// The eraser acts on what the user currently sees, so the overlay
		// is flattened into the base before the stroke starts. This happens
		// on every eraser stroke, whether or not it touches a highlight.
		c.surface.FlattenOverlay()
		c.strokes = c.strokes[:0]
	}

	st.points = append(st.points, p)
	st.last = p
	c.paintSegmentLocked(st, p, p)

	c.stroke = st
	c.interaction = interactionStroke
}

func (c *Controller) continueStrokeLocked(p geometry.Point2D) {
	st := c.stroke
	if st == nil {
		return
	}
	if p.Distance(st.last) < minMoveDistance {
		return
	}
	c.paintSegmentLocked(st, st.last, p)
	if st.tool == ToolHighlighter {
		st.points = append(st.points, p)
	}
	st.last = p
}

func (c *Controller) paintSegmentLocked(st *strokeState, from, to geometry.Point2D) {
	switch st.tool {
	case ToolPen:
		col := colorutil.ParseHex(st.color, colorutil.Black)
		c.surface.PenSegment(from, to, col, st.width)
	case ToolEraser:
		c.surface.EraseSegment(from, to, st.width)
	case ToolHighlighter:
		col := colorutil.ParseHex(st.color, colorutil.Yellow)
		c.surface.HighlightSegment(from, to, col, st.opacity, st.width)
	}
}

func (c *Controller) endStrokeLocked() bool {
	st := c.stroke
	if st == nil {
		c.interaction = interactionNone
		return false
	}
	c.stroke = nil
	c.interaction = interactionNone

	if st.tool == ToolHighlighter {
		points := st.points
		if c.settings.SmoothStrokes {
			points = SmoothPoints(points)
		}
		c.strokes = append(c.strokes, HighlighterStroke{
			ID:      uuid.NewString(),
			Color:   st.color,
			Width:   st.width,
			Opacity: st.opacity,
			Points:  points,
		})
		// Re-render so the retained list, not the live preview, defines
		// the overlay pixels.
		c.surface.RenderOverlay(c.strokes)
	}

	return c.commitLocked()
}

func (c *Controller) createTextLocked(p geometry.Point2D) {
	t := &TextElement{
		ID:         uuid.NewString(),
		X:          p.X,
		Y:          p.Y,
		Text:       "",
		Color:      c.settings.TextColor,
		FontSize:   c.settings.TextSize,
		FontWeight: "normal",
		FontStyle:  "normal",
	}
	c.elements.AddText(t)
	c.selected = Selection{Kind: KindText, ID: t.ID}
	c.editingID = t.ID
}

func (c *Controller) commitTextEditLocked() bool {
	id := c.editingID
	if id == "" {
		return false
	}
	c.editingID = ""

	t := c.elements.Text(id)
	if t == nil {
		return false
	}
	if strings.TrimSpace(t.Text) == "" {
		c.elements.RemoveText(id)
		if c.selected.Kind == KindText && c.selected.ID == id {
			c.selected = Selection{}
		}
	}
	return c.commitLocked()
}

func (c *Controller) beginDragLocked(p geometry.Point2D) {
	kind, id, ok := c.elements.HitTest(p)
	if !ok {
		// Clicking empty surface clears the selection.
		c.selected = Selection{}
		return
	}

	c.selected = Selection{Kind: kind, ID: id}

	if kind == KindMedia {
		m := c.elements.Media(id)
		if m != nil && ResizeHandle(m).Contains(p) {
			c.resize = &resizeState{
				id:     id,
				startW: m.Width,
				startH: m.Height,
				gripX:  m.X + m.Width - p.X,
				gripY:  m.Y + m.Height - p.Y,
			}
			c.interaction = interactionResize
			return
		}
	}

	var origin geometry.Point2D
	switch kind {
	case KindText:
		t := c.elements.Text(id)
		origin = geometry.Point2D{X: t.X, Y: t.Y}
	case KindMedia:
		m := c.elements.Media(id)
		origin = geometry.Point2D{X: m.X, Y: m.Y}
	}

	c.drag = &dragState{
		kind:   kind,
		id:     id,
		offset: p.Sub(origin),
		start:  origin,
	}
	c.interaction = interactionDrag
}

func (c *Controller) updateDragLocked(p geometry.Point2D) {
	ds := c.drag
	if ds == nil {
		return
	}
	target := p.Sub(ds.offset)
	switch ds.kind {
	case KindText:
		c.elements.MoveText(ds.id, target.X, target.Y)
	case KindMedia:
		c.elements.MoveMedia(ds.id, target.X, target.Y)
	}
}

func (c *Controller) endDragLocked() bool {
	ds := c.drag
	c.drag = nil
	c.interaction = interactionNone
	if ds == nil {
		return false
	}

	var pos geometry.Point2D
	switch ds.kind {
	case KindText:
		t := c.elements.Text(ds.id)
		if t == nil {
			return false
		}
		pos = geometry.Point2D{X: t.X, Y: t.Y}
	case KindMedia:
		m := c.elements.Media(ds.id)
		if m == nil {
			return false
		}
		pos = geometry.Point2D{X: m.X, Y: m.Y}
	}

	// A grab-and-release with zero net movement is not a document change.
	if pos == ds.start {
		return false
	}
	return c.commitLocked()
}

func (c *Controller) updateResizeLocked(p geometry.Point2D) {
	rs := c.resize
	if rs == nil {
		return
	}
	m := c.elements.Media(rs.id)
	if m == nil {
		return
	}
	c.elements.ResizeMedia(rs.id, p.X-m.X+rs.gripX, p.Y-m.Y+rs.gripY)
}

func (c *Controller) endResizeLocked() bool {
	rs := c.resize
	c.resize = nil
	c.interaction = interactionNone
	if rs == nil {
		return false
	}

	m := c.elements.Media(rs.id)
	if m == nil {
		return false
	}
	if m.Width == rs.startW && m.Height == rs.startH {
		return false
	}
	return c.commitLocked()
}
