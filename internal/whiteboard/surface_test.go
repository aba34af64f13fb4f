package whiteboard

import (
	"bytes"
	"image"
	"testing"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/colorutil"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

// TestHighlightOverlapKeepsSingleStrokeOpacity verifies that overlapping
// highlighter marks do not darken each other: the crossing point stays at
// the alpha a single stroke produces.
func TestHighlightOverlapKeepsSingleStrokeOpacity(t *testing.T) {
	s := NewSurface(100)
	s.HighlightSegment(pt(10, 50), pt(90, 50), colorutil.Yellow, 0.2, 10)

	single := s.Overlay().RGBAAt(50, 50).A
	if single == 0 {
		t.Fatal("first stroke did not cover the probe pixel")
	}

	s.HighlightSegment(pt(50, 10), pt(50, 90), colorutil.Yellow, 0.2, 10)

	if got := s.Overlay().RGBAAt(50, 50).A; got != single {
		t.Errorf("overlap alpha = %d, want %d (same as a single stroke)", got, single)
	}
	// The second stroke still fills previously empty pixels
	if got := s.Overlay().RGBAAt(50, 20).A; got != single {
		t.Errorf("non-overlap alpha = %d, want %d", got, single)
	}
}

// TestRenderOverlayMatchesLiveDrawing verifies the pure re-render of the
// retained stroke list produces the same pixels as the incremental segment
// calls made while drawing.
func TestRenderOverlayMatchesLiveDrawing(t *testing.T) {
	points := []geometry.Point2D{pt(10, 10), pt(40, 20), pt(70, 15), pt(90, 60)}

	live := NewSurface(100)
	col := colorutil.ParseHex("#ffeb3b", colorutil.Yellow)
	for i := 1; i < len(points); i++ {
		live.HighlightSegment(points[i-1], points[i], col, 0.3, 8)
	}

	retained := NewSurface(100)
	retained.RenderOverlay([]HighlighterStroke{{
		ID:      "s1",
		Color:   "#ffeb3b",
		Width:   8,
		Opacity: 0.3,
		Points:  points,
	}})

	if !bytes.Equal(live.Overlay().Pix, retained.Overlay().Pix) {
		t.Error("live overlay differs from the pure re-render of the same stroke")
	}
}

// TestDrawStrokeSinglePointDisc verifies a single-point stroke renders as a
// disc of radius width/2 rather than nothing.
func TestDrawStrokeSinglePointDisc(t *testing.T) {
	s := NewSurface(100)
	s.RenderOverlay([]HighlighterStroke{{
		ID:      "dot",
		Color:   "#ffeb3b",
		Width:   10,
		Opacity: 0.2,
		Points:  []geometry.Point2D{pt(50, 50)},
	}})

	if got := s.Overlay().RGBAAt(50, 50).A; got == 0 {
		t.Error("disc center not painted")
	}
	if got := s.Overlay().RGBAAt(53, 50).A; got == 0 {
		t.Error("pixel inside the radius not painted")
	}
	if got := s.Overlay().RGBAAt(57, 50).A; got != 0 {
		t.Errorf("pixel outside the radius painted with alpha %d", got)
	}
}

// TestEraseSegmentClearsBasePixels verifies the eraser removes base pixels
// instead of painting over them.
func TestEraseSegmentClearsBasePixels(t *testing.T) {
	s := NewSurface(100)
	s.PenSegment(pt(20, 50), pt(80, 50), colorutil.Black, 6)

	if got := s.Base().RGBAAt(50, 50).A; got != 255 {
		t.Fatalf("pen pixel alpha = %d, want 255", got)
	}

	s.EraseSegment(pt(45, 50), pt(55, 50), 8)

	if got := s.Base().RGBAAt(50, 50); got.A != 0 || got.R != 0 {
		t.Errorf("erased pixel = %+v, want fully transparent", got)
	}
	// Pixels outside the erase pass survive
	if got := s.Base().RGBAAt(25, 50).A; got != 255 {
		t.Errorf("pixel outside the erase pass alpha = %d, want 255", got)
	}
}

// TestFlattenOverlayMergesAndClears verifies flattening moves overlay pixels
// into the base and leaves the overlay fully transparent.
func TestFlattenOverlayMergesAndClears(t *testing.T) {
	s := NewSurface(100)
	s.HighlightSegment(pt(30, 30), pt(70, 30), colorutil.Yellow, 0.2, 10)

	want := s.Overlay().RGBAAt(50, 30)
	if want.A == 0 {
		t.Fatal("highlight did not cover the probe pixel")
	}

	s.FlattenOverlay()

	if got := s.Base().RGBAAt(50, 30); got != want {
		t.Errorf("base pixel after flatten = %+v, want %+v", got, want)
	}
	for i := 3; i < len(s.Overlay().Pix); i += 4 {
		if s.Overlay().Pix[i] != 0 {
			t.Fatal("overlay not cleared after flatten")
		}
	}

	// Flattening over opaque content blends rather than replaces
	s2 := NewSurface(100)
	s2.PenSegment(pt(50, 50), pt(50, 50), colorutil.Black, 6)
	s2.HighlightSegment(pt(50, 50), pt(50, 50), colorutil.Yellow, 0.2, 6)
	s2.FlattenOverlay()

	got := s2.Base().RGBAAt(50, 50)
	if got.A != 255 {
		t.Errorf("flattened pixel alpha = %d, want 255", got.A)
	}
	if got.G == 0 {
		t.Error("flattened pixel lost the highlight tint")
	}
}

// TestComposeLayersOnWhite verifies the composed frame shows a white page
// with base content under overlay content, without mutating the layers.
func TestComposeLayersOnWhite(t *testing.T) {
	s := NewSurface(100)
	out := s.Compose()
	if got := out.RGBAAt(10, 10); got != colorutil.White {
		t.Fatalf("empty compose pixel = %+v, want white", got)
	}

	s.PenSegment(pt(50, 50), pt(50, 50), colorutil.Black, 4)
	out = s.Compose()
	if got := out.RGBAAt(50, 50); got != colorutil.Black {
		t.Errorf("pen pixel composed = %+v, want black", got)
	}

	s.HighlightSegment(pt(20, 20), pt(20, 20), colorutil.Yellow, 0.2, 4)
	out = s.Compose()
	got := out.RGBAAt(20, 20)
	if got.A != 255 {
		t.Errorf("highlight over the page alpha = %d, want 255", got.A)
	}
	if got == colorutil.White {
		t.Error("highlight did not tint the page")
	}

	if s.Base().RGBAAt(10, 10).A != 0 {
		t.Error("compose mutated the base layer")
	}
}

// TestStrokesOutsideBoundsClip verifies segments crossing or fully outside
// the surface clip instead of panicking.
func TestStrokesOutsideBoundsClip(t *testing.T) {
	s := NewSurface(100)
	segs := []struct {
		name   string
		p0, p1 geometry.Point2D
	}{
		{"crossing", pt(-50, -50), pt(150, 150)},
		{"fully outside", pt(-90, 50), pt(-20, 50)},
		{"along the edge", pt(0, 0), pt(99, 0)},
	}
	for _, tc := range segs {
		t.Run(tc.name, func(t *testing.T) {
			s.PenSegment(tc.p0, tc.p1, colorutil.Black, 12)
			s.EraseSegment(tc.p0, tc.p1, 12)
			s.HighlightSegment(tc.p0, tc.p1, colorutil.Yellow, 0.2, 12)
		})
	}

	s2 := NewSurface(100)
	s2.PenSegment(pt(-50, -50), pt(150, 150), colorutil.Black, 4)
	if s2.Base().RGBAAt(50, 50).A != 255 {
		t.Error("in-bounds part of a crossing segment not painted")
	}
}

// TestSetBaseReplacesPixels verifies SetBase clears old content and copies
// the new image at the origin, and that nil clears outright.
func TestSetBaseReplacesPixels(t *testing.T) {
	s := NewSurface(50)
	s.PenSegment(pt(40, 40), pt(40, 40), colorutil.Black, 4)

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	img.SetRGBA(5, 5, colorutil.Red)
	s.SetBase(img)

	if got := s.Base().RGBAAt(5, 5); got != colorutil.Red {
		t.Errorf("copied pixel = %+v, want red", got)
	}
	if got := s.Base().RGBAAt(40, 40).A; got != 0 {
		t.Errorf("old content alpha = %d, want 0", got)
	}

	s.SetBase(nil)
	if got := s.Base().RGBAAt(5, 5).A; got != 0 {
		t.Errorf("pixel after nil SetBase = %d, want 0", got)
	}
}

// TestCloneStrokesIndependence verifies clones do not share point storage
// with their originals.
func TestCloneStrokesIndependence(t *testing.T) {
	orig := []HighlighterStroke{{ID: "a", Points: []geometry.Point2D{pt(1, 2), pt(3, 4)}}}

	cl := CloneStrokes(orig)
	cl[0].Points[0].X = 99

	if orig[0].Points[0].X != 1 {
		t.Error("clone shares point storage with the original")
	}
}
