package whiteboard

import (
	"strings"
	"sync"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"
)

// MediaType identifies the kind of embedded media payload. The values are
// the persisted document strings.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

// ValidMediaType reports whether s is a recognized media type string.
func ValidMediaType(s string) bool {
	switch MediaType(s) {
	case MediaImage, MediaVideo, MediaAudio:
		return true
	}
	return false
}

// ElementKind distinguishes the floating element collections.
type ElementKind int

const (
	KindNone ElementKind = iota
	KindText
	KindMedia
)

func (k ElementKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMedia:
		return "media"
	default:
		return "none"
	}
}

// Selection identifies at most one selected floating element.
type Selection struct {
	Kind ElementKind
	ID   string
}

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool {
	return s.Kind == KindNone || s.ID == ""
}

// TextElement is a positioned, editable label floating above the raster
// layers.
type TextElement struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Text       string  `json:"text"`
	Color      string  `json:"color"`
	FontSize   float64 `json:"fontSize"`
	FontWeight string  `json:"fontWeight"`
	FontStyle  string  `json:"fontStyle"`
}

// MediaElement is a positioned, resizable embed whose payload is a
// self-contained encoded string, not a file handle.
type MediaElement struct {
	ID     string    `json:"id"`
	Type   MediaType `json:"type"`
	Src    string    `json:"src"`
	Name   string    `json:"name"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// Glyph cell of the bitmap face used for text rendering; TextBounds and the
// renderer must agree on these so hit testing matches what is drawn.
const (
	glyphWidth  = 7.0
	glyphHeight = 13.0
)

// TextBounds estimates the on-surface rectangle a text element occupies.
// An empty element still gets a minimal box so it stays clickable.
func TextBounds(t *TextElement) geometry.Rect {
	scale := t.FontSize / glyphHeight
	if scale <= 0 {
		scale = 1
	}

	lines := strings.Split(t.Text, "\n")
	longest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > longest {
			longest = n
		}
	}

	w := float64(longest) * glyphWidth * scale
	if w < glyphWidth*2*scale {
		w = glyphWidth * 2 * scale
	}
	h := float64(len(lines)) * glyphHeight * scale

	return geometry.Rect{X: t.X, Y: t.Y, Width: w, Height: h}
}

// MediaBounds returns the on-surface rectangle of a media element.
func MediaBounds(m *MediaElement) geometry.Rect {
	return geometry.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// resizeHandleSize is the side of the corner grab area, in surface units.
const resizeHandleSize = 14.0

// ResizeHandle returns the bottom-right corner rectangle used to start a
// resize gesture on a media element.
func ResizeHandle(m *MediaElement) geometry.Rect {
	return geometry.Rect{
		X:      m.X + m.Width - resizeHandleSize,
		Y:      m.Y + m.Height - resizeHandleSize,
		Width:  resizeHandleSize,
		Height: resizeHandleSize,
	}
}

// Elements manages the two ordered floating-element collections of a
// whiteboard: text elements and media elements.
type Elements struct {
	mu sync.RWMutex

	texts  map[string]*TextElement
	medias map[string]*MediaElement

	// Insertion order; later entries draw on top within their collection
	textOrder  []string
	mediaOrder []string

	canvasSize float64
}

// NewElements creates empty collections bounded by the given surface side.
func NewElements(canvasSize float64) *Elements {
	return &Elements{
		texts:      make(map[string]*TextElement),
		medias:     make(map[string]*MediaElement),
		textOrder:  make([]string, 0),
		mediaOrder: make([]string, 0),
		canvasSize: canvasSize,
	}
}

// AddText inserts a text element at the top of the text collection.
func (e *Elements) AddText(t *TextElement) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.texts[t.ID] = t
	e.textOrder = append(e.textOrder, t.ID)
}

// AddMedia inserts a media element at the top of the media collection.
func (e *Elements) AddMedia(m *MediaElement) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.medias[m.ID] = m
	e.mediaOrder = append(e.mediaOrder, m.ID)
}

// RemoveText removes a text element by ID.
func (e *Elements) RemoveText(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.texts[id]; !ok {
		return false
	}
	delete(e.texts, id)
	for i, tid := range e.textOrder {
		if tid == id {
			e.textOrder = append(e.textOrder[:i], e.textOrder[i+1:]...)
			break
		}
	}
	return true
}

// RemoveMedia removes a media element by ID.
func (e *Elements) RemoveMedia(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.medias[id]; !ok {
		return false
	}
	delete(e.medias, id)
	for i, mid := range e.mediaOrder {
		if mid == id {
			e.mediaOrder = append(e.mediaOrder[:i], e.mediaOrder[i+1:]...)
			break
		}
	}
	return true
}

// Text returns the text element with the given ID, or nil.
func (e *Elements) Text(id string) *TextElement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.texts[id]
}

// Media returns the media element with the given ID, or nil.
func (e *Elements) Media(id string) *MediaElement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.medias[id]
}

// Texts returns the text elements in insertion order.
func (e *Elements) Texts() []*TextElement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*TextElement, 0, len(e.textOrder))
	for _, id := range e.textOrder {
		if t := e.texts[id]; t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Medias returns the media elements in insertion order.
func (e *Elements) Medias() []*MediaElement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*MediaElement, 0, len(e.mediaOrder))
	for _, id := range e.mediaOrder {
		if m := e.medias[id]; m != nil {
			out = append(out, m)
		}
	}
	return out
}

// TextCount returns the number of text elements.
func (e *Elements) TextCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.textOrder)
}

// MediaCount returns the number of media elements.
func (e *Elements) MediaCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.mediaOrder)
}

// SetTextContent replaces the text of an element. Returns false when the
// element does not exist.
func (e *Elements) SetTextContent(id, text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.texts[id]
	if !ok {
		return false
	}
	t.Text = text
	return true
}

// HitTest finds the topmost element containing the point. Text elements sit
// above media elements; within each collection, later insertions are on top.
func (e *Elements) HitTest(p geometry.Point2D) (ElementKind, string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for i := len(e.textOrder) - 1; i >= 0; i-- {
		t := e.texts[e.textOrder[i]]
		if t != nil && TextBounds(t).Contains(p) {
			return KindText, t.ID, true
		}
	}
	for i := len(e.mediaOrder) - 1; i >= 0; i-- {
		m := e.medias[e.mediaOrder[i]]
		if m != nil && MediaBounds(m).Contains(p) {
			return KindMedia, m.ID, true
		}
	}
	return KindNone, "", false
}

// MoveText positions a text element, clamping so its box stays on the
// surface. Returns false when the element does not exist.
func (e *Elements) MoveText(id string, x, y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.texts[id]
	if !ok {
		return false
	}
	b := TextBounds(t)
	t.X = geometry.Clamp(x, 0, maxOrigin(e.canvasSize, b.Width))
	t.Y = geometry.Clamp(y, 0, maxOrigin(e.canvasSize, b.Height))
	return true
}

// MoveMedia positions a media element, clamping so it stays on the surface.
func (e *Elements) MoveMedia(id string, x, y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.medias[id]
	if !ok {
		return false
	}
	m.X = geometry.Clamp(x, 0, maxOrigin(e.canvasSize, m.Width))
	m.Y = geometry.Clamp(y, 0, maxOrigin(e.canvasSize, m.Height))
	return true
}

// ResizeMedia sets a media element's display size, enforcing the minimum
// size floor and keeping the element inside the surface.
func (e *Elements) ResizeMedia(id string, w, h float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.medias[id]
	if !ok {
		return false
	}
	m.Width = geometry.Clamp(w, MinMediaWidth, e.canvasSize-m.X)
	m.Height = geometry.Clamp(h, MinMediaHeight, e.canvasSize-m.Y)
	return true
}

// SnapshotTexts returns value copies of all text elements in order.
func (e *Elements) SnapshotTexts() []TextElement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]TextElement, 0, len(e.textOrder))
	for _, id := range e.textOrder {
		if t := e.texts[id]; t != nil {
			out = append(out, *t)
		}
	}
	return out
}

// SnapshotMedias returns value copies of all media elements in order.
func (e *Elements) SnapshotMedias() []MediaElement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]MediaElement, 0, len(e.mediaOrder))
	for _, id := range e.mediaOrder {
		if m := e.medias[id]; m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// SetTexts replaces the whole text collection, preserving slice order.
func (e *Elements) SetTexts(texts []TextElement) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.texts = make(map[string]*TextElement, len(texts))
	e.textOrder = e.textOrder[:0]
	for i := range texts {
		t := texts[i]
		e.texts[t.ID] = &t
		e.textOrder = append(e.textOrder, t.ID)
	}
}

// SetMedias replaces the whole media collection, preserving slice order.
func (e *Elements) SetMedias(medias []MediaElement) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.medias = make(map[string]*MediaElement, len(medias))
	e.mediaOrder = e.mediaOrder[:0]
	for i := range medias {
		m := medias[i]
		e.medias[m.ID] = &m
		e.mediaOrder = append(e.mediaOrder, m.ID)
	}
}

// maxOrigin returns the largest valid origin coordinate for an element of
// the given extent; oversized elements pin to zero.
func maxOrigin(canvasSize, extent float64) float64 {
	max := canvasSize - extent
	if max < 0 {
		return 0
	}
	return max
}
