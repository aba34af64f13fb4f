package whiteboard

import (
	"testing"
)

// TestHitTestOrder verifies text elements hit above media elements and
// later insertions hit above earlier ones.
func TestHitTestOrder(t *testing.T) {
	e := NewElements(500)
	e.AddMedia(&MediaElement{ID: "m1", Type: MediaImage, Src: "p", X: 10, Y: 10, Width: 200, Height: 200})
	e.AddMedia(&MediaElement{ID: "m2", Type: MediaImage, Src: "p", X: 100, Y: 100, Width: 200, Height: 200})
	e.AddText(&TextElement{ID: "t1", X: 120, Y: 120, Text: "label", FontSize: 13})

	// All three overlap here; the text wins
	kind, id, ok := e.HitTest(pt(125, 125))
	if !ok || kind != KindText || id != "t1" {
		t.Errorf("hit = (%v, %q, %v), want the text on top", kind, id, ok)
	}

	// Both medias overlap here; the later insertion wins
	kind, id, ok = e.HitTest(pt(150, 180))
	if !ok || kind != KindMedia || id != "m2" {
		t.Errorf("hit = (%v, %q, %v), want the later media", kind, id, ok)
	}

	kind, id, ok = e.HitTest(pt(20, 20))
	if !ok || id != "m1" {
		t.Errorf("hit = (%v, %q, %v), want m1", kind, id, ok)
	}

	if _, _, ok := e.HitTest(pt(480, 480)); ok {
		t.Error("hit on an empty spot should miss")
	}
}

// TestMoveClampsToSurface verifies moved elements stay inside the surface.
func TestMoveClampsToSurface(t *testing.T) {
	e := NewElements(200)
	e.AddMedia(&MediaElement{ID: "m", Type: MediaImage, Src: "p", X: 50, Y: 50, Width: 100, Height: 80})

	e.MoveMedia("m", -30, -30)
	m := e.Media("m")
	if m.X != 0 || m.Y != 0 {
		t.Errorf("pos = (%v, %v), want (0, 0)", m.X, m.Y)
	}

	e.MoveMedia("m", 5000, 5000)
	if m.X != 100 || m.Y != 120 {
		t.Errorf("pos = (%v, %v), want (100, 120)", m.X, m.Y)
	}

	if e.MoveMedia("missing", 0, 0) {
		t.Error("moving a missing element should report false")
	}

	e.AddText(&TextElement{ID: "t", X: 10, Y: 10, Text: "hi", FontSize: 13})
	e.MoveText("t", 500, -10)
	tx := e.Text("t")
	if tx.X != 186 || tx.Y != 0 {
		t.Errorf("text pos = (%v, %v), want (186, 0)", tx.X, tx.Y)
	}
}

// TestResizeMediaEnforcesFloor verifies the minimum size floor and the
// surface bound on resizing.
func TestResizeMediaEnforcesFloor(t *testing.T) {
	e := NewElements(200)
	e.AddMedia(&MediaElement{ID: "m", Type: MediaImage, Src: "p", X: 50, Y: 60, Width: 100, Height: 80})

	e.ResizeMedia("m", 1, 1)
	m := e.Media("m")
	if m.Width != MinMediaWidth || m.Height != MinMediaHeight {
		t.Errorf("size = (%v, %v), want the (%v, %v) floor", m.Width, m.Height, MinMediaWidth, MinMediaHeight)
	}

	e.ResizeMedia("m", 10000, 10000)
	if m.Width != 150 || m.Height != 140 {
		t.Errorf("size = (%v, %v), want clamped to (150, 140)", m.Width, m.Height)
	}
}

// TestTextBounds verifies the estimated text box scales with font size and
// line structure, with a floor for empty content.
func TestTextBounds(t *testing.T) {
	tests := []struct {
		name  string
		el    TextElement
		wantW float64
		wantH float64
	}{
		{"single line", TextElement{Text: "abc", FontSize: 13}, 21, 13},
		{"scaled", TextElement{Text: "abc", FontSize: 26}, 42, 26},
		{"multi line", TextElement{Text: "ab\ncdef", FontSize: 13}, 28, 26},
		{"empty keeps a floor", TextElement{Text: "", FontSize: 13}, 14, 13},
		{"zero size guards", TextElement{Text: "a", FontSize: 0}, 14, 13},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := TextBounds(&tc.el)
			if b.Width != tc.wantW || b.Height != tc.wantH {
				t.Errorf("bounds = (%v, %v), want (%v, %v)", b.Width, b.Height, tc.wantW, tc.wantH)
			}
		})
	}
}

// TestSnapshotAndReplace verifies snapshots are value copies and the Set
// calls rebuild the collections in order.
func TestSnapshotAndReplace(t *testing.T) {
	e := NewElements(500)
	e.AddText(&TextElement{ID: "a", Text: "first"})
	e.AddText(&TextElement{ID: "b", Text: "second"})

	snap := e.SnapshotTexts()
	snap[0].Text = "mutated"
	if e.Text("a").Text != "first" {
		t.Error("snapshot shares storage with the live collection")
	}

	e.RemoveText("a")
	if e.TextCount() != 1 {
		t.Errorf("count = %d, want 1", e.TextCount())
	}
	if e.RemoveText("a") {
		t.Error("removing twice should report false")
	}

	e.SetTexts(snap)
	order := e.Texts()
	if len(order) != 2 || order[0].ID != "a" || order[1].ID != "b" {
		t.Fatalf("restored order wrong: %+v", order)
	}
	if e.Text("a").Text != "mutated" {
		t.Error("SetTexts did not install the provided values")
	}

	e.SetMedias([]MediaElement{{ID: "m", Type: MediaAudio, Src: "p", X: 1, Y: 2, Width: 50, Height: 40}})
	if e.MediaCount() != 1 || e.Media("m") == nil {
		t.Error("SetMedias did not install the collection")
	}
}

// TestMediaTypeAndSelection covers the media type strings and the empty
// selection predicate.
func TestMediaTypeAndSelection(t *testing.T) {
	for _, s := range []string{"image", "video", "audio"} {
		if !ValidMediaType(s) {
			t.Errorf("ValidMediaType(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "gif", "IMAGE"} {
		if ValidMediaType(s) {
			t.Errorf("ValidMediaType(%q) = true, want false", s)
		}
	}

	if !(Selection{}).IsNone() {
		t.Error("zero selection should be none")
	}
	if (Selection{Kind: KindText, ID: "x"}).IsNone() {
		t.Error("selection with an ID should not be none")
	}
}
