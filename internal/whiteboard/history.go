package whiteboard

// Snapshot is an immutable full-document capture: the encoded base raster,
// deep copies of the retained strokes and floating elements, the session
// highlighter opacity, and a content signature used for cheap equality.
type Snapshot struct {
	BaseData string
	Strokes  []HighlighterStroke
	Opacity  float64
	Texts    []TextElement
	Medias   []MediaElement

	// Signature is a hash of the serialized document form. Two snapshots
	// with equal signatures are treated as identical.
	Signature string
}

// History holds the retained snapshot list and a cursor. The cursor always
// points at a valid entry once the first snapshot is pushed; before that the
// list is empty and the cursor is -1.
type History struct {
	entries []*Snapshot
	index   int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{index: -1}
}

// Reset drops all entries and installs snap as the single entry 0.
func (h *History) Reset(snap *Snapshot) {
	h.entries = []*Snapshot{snap}
	h.index = 0
}

// Push appends a snapshot at the cursor. A snapshot whose signature equals
// the current entry's is dropped (re-commits are idempotent). Otherwise any
// redo branch past the cursor is pruned, the snapshot is appended, and the
// list is capped at HistoryLimit by evicting from the front. Returns whether
// the snapshot was actually appended.
func (h *History) Push(snap *Snapshot) bool {
	if h.index >= 0 && h.entries[h.index].Signature == snap.Signature {
		return false
	}

	// Prune the redo branch
	h.entries = h.entries[:h.index+1]
	h.entries = append(h.entries, snap)
	h.index = len(h.entries) - 1

	if len(h.entries) > HistoryLimit {
		drop := len(h.entries) - HistoryLimit
		trimmed := make([]*Snapshot, HistoryLimit)
		copy(trimmed, h.entries[drop:])
		h.entries = trimmed
		h.index -= drop
	}

	return true
}

// CanUndo reports whether an earlier entry exists.
func (h *History) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether a later entry exists.
func (h *History) CanRedo() bool {
	return h.index >= 0 && h.index < len(h.entries)-1
}

// Undo moves the cursor back one entry and returns it, or nil when already
// at the oldest entry.
func (h *History) Undo() *Snapshot {
	if !h.CanUndo() {
		return nil
	}
	h.index--
	return h.entries[h.index]
}

// Redo moves the cursor forward one entry and returns it, or nil when
// already at the newest entry.
func (h *History) Redo() *Snapshot {
	if !h.CanRedo() {
		return nil
	}
	h.index++
	return h.entries[h.index]
}

// Current returns the entry at the cursor, or nil for an empty history.
func (h *History) Current() *Snapshot {
	if h.index < 0 || h.index >= len(h.entries) {
		return nil
	}
	return h.entries[h.index]
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Index returns the cursor position.
func (h *History) Index() int {
	return h.index
}
