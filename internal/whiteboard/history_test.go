package whiteboard

import (
	"fmt"
	"testing"
)

func snapWithSig(sig string) *Snapshot {
	return &Snapshot{Signature: sig}
}

func sigOf(s *Snapshot) string {
	if s == nil {
		return "<nil>"
	}
	return s.Signature
}

// TestHistoryUndoRedoWalk runs the cursor through a small entry list and
// checks the boundaries on both ends.
func TestHistoryUndoRedoWalk(t *testing.T) {
	h := NewHistory()
	if h.Current() != nil || h.Index() != -1 {
		t.Fatalf("fresh history: index = %d, want -1 with no current entry", h.Index())
	}
	if h.Undo() != nil || h.Redo() != nil {
		t.Fatal("undo and redo on an empty history should return nil")
	}

	h.Reset(snapWithSig("a"))
	if h.CanUndo() {
		t.Error("CanUndo true at the initial entry")
	}

	h.Push(snapWithSig("b"))
	h.Push(snapWithSig("c"))
	if h.Len() != 3 || h.Index() != 2 {
		t.Fatalf("after two pushes: len = %d index = %d, want 3 and 2", h.Len(), h.Index())
	}

	if got := h.Undo(); sigOf(got) != "b" {
		t.Fatalf("first undo = %s, want b", sigOf(got))
	}
	if got := h.Undo(); sigOf(got) != "a" {
		t.Fatalf("second undo = %s, want a", sigOf(got))
	}
	if h.CanUndo() {
		t.Error("CanUndo true at the oldest entry")
	}
	if h.Undo() != nil {
		t.Error("undo past the oldest entry should return nil")
	}

	if got := h.Redo(); sigOf(got) != "b" {
		t.Fatalf("redo = %s, want b", sigOf(got))
	}
}

// TestHistoryPushIdempotent verifies a push whose signature matches the
// current entry is dropped.
func TestHistoryPushIdempotent(t *testing.T) {
	h := NewHistory()
	h.Reset(snapWithSig("a"))

	if h.Push(snapWithSig("a")) {
		t.Error("push of an identical signature should be dropped")
	}
	if h.Len() != 1 {
		t.Errorf("len = %d, want 1", h.Len())
	}
	if !h.Push(snapWithSig("b")) {
		t.Error("push of a new signature should append")
	}
}

// TestHistoryRedoBranchPruned verifies a push after undos discards the
// abandoned forward entries.
func TestHistoryRedoBranchPruned(t *testing.T) {
	h := NewHistory()
	h.Reset(snapWithSig("a"))
	h.Push(snapWithSig("b"))
	h.Push(snapWithSig("c"))
	h.Undo()
	h.Undo()

	h.Push(snapWithSig("d"))
	if h.CanRedo() {
		t.Error("redo branch should be pruned by a new push")
	}
	if h.Len() != 2 {
		t.Errorf("len = %d, want 2", h.Len())
	}
	if got := h.Undo(); sigOf(got) != "a" {
		t.Errorf("undo after prune = %s, want a", sigOf(got))
	}
}

// TestHistoryBounded verifies the entry list caps at HistoryLimit with
// front eviction and a consistent cursor.
func TestHistoryBounded(t *testing.T) {
	h := NewHistory()
	h.Reset(snapWithSig("s0"))
	total := HistoryLimit + 51
	for i := 1; i < total; i++ {
		h.Push(snapWithSig(fmt.Sprintf("s%d", i)))
	}

	if h.Len() != HistoryLimit {
		t.Fatalf("len = %d, want %d", h.Len(), HistoryLimit)
	}
	newest := fmt.Sprintf("s%d", total-1)
	if got := h.Current(); sigOf(got) != newest {
		t.Fatalf("current = %s, want %s", sigOf(got), newest)
	}

	steps := 0
	for h.CanUndo() {
		h.Undo()
		steps++
	}
	if steps != HistoryLimit-1 {
		t.Errorf("undo steps = %d, want %d", steps, HistoryLimit-1)
	}
	oldest := fmt.Sprintf("s%d", total-HistoryLimit)
	if got := h.Current(); sigOf(got) != oldest {
		t.Errorf("oldest surviving entry = %s, want %s", sigOf(got), oldest)
	}
}
