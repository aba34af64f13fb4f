package whiteboard

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/colorutil"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"
)

// HighlighterStroke is a retained, non-destructive vector path rendered on
// the overlay surface. Committed strokes are immutable; edits go through
// full replacement of the stroke list.
type HighlighterStroke struct {
	ID      string             `json:"id"`
	Color   string             `json:"color"`
	Width   float64            `json:"width"`
	Opacity float64            `json:"opacity"`
	Points  []geometry.Point2D `json:"points"`
}

// Clone returns a deep copy of the stroke.
func (s HighlighterStroke) Clone() HighlighterStroke {
	out := s
	out.Points = make([]geometry.Point2D, len(s.Points))
	copy(out.Points, s.Points)
	return out
}

// CloneStrokes deep-copies a stroke list.
func CloneStrokes(strokes []HighlighterStroke) []HighlighterStroke {
	out := make([]HighlighterStroke, len(strokes))
	for i, s := range strokes {
		out[i] = s.Clone()
	}
	return out
}

// Surface owns the two raster buffers of the drawing area: the destructive
// base layer (pen and eraser write here) and the transient highlighter
// overlay (redrawn from the retained stroke list). Both are stored as
// premultiplied RGBA; fully transparent where nothing was drawn.
type Surface struct {
	width  int
	height int

	base    *image.RGBA
	overlay *image.RGBA
}

// NewSurface creates an empty surface with the given square side length.
func NewSurface(size int) *Surface {
	return &Surface{
		width:   size,
		height:  size,
		base:    image.NewRGBA(image.Rect(0, 0, size, size)),
		overlay: image.NewRGBA(image.Rect(0, 0, size, size)),
	}
}

// Size returns the side length of the surface.
func (s *Surface) Size() int {
	return s.width
}

// Base returns the destructive base raster.
func (s *Surface) Base() *image.RGBA {
	return s.base
}

// Overlay returns the highlighter overlay raster.
func (s *Surface) Overlay() *image.RGBA {
	return s.overlay
}

// ClearBase resets the base layer to fully transparent.
func (s *Surface) ClearBase() {
	clearRGBA(s.base)
}

// ClearOverlay resets the overlay layer to fully transparent.
func (s *Surface) ClearOverlay() {
	clearRGBA(s.overlay)
}

// SetBase replaces the base layer's pixels with img, clearing first. The
// image is drawn at the origin; anything outside the surface is cropped.
func (s *Surface) SetBase(img image.Image) {
	clearRGBA(s.base)
	if img == nil {
		return
	}
	draw.Draw(s.base, s.base.Bounds(), img, img.Bounds().Min, draw.Src)
}

// PenSegment draws an opaque stroke segment onto the base layer. Equal
// endpoints produce a single disc of radius width/2.
func (s *Surface) PenSegment(p0, p1 geometry.Point2D, col color.RGBA, width float64) {
	col.A = 255
	stampLine(s.base, p0, p1, col, width, paintOpaque)
}

// EraseSegment clears pixels along a stroke segment on the base layer. The
// erased region becomes fully transparent rather than painted over.
func (s *Surface) EraseSegment(p0, p1 geometry.Point2D, width float64) {
	stampLine(s.base, p0, p1, color.RGBA{}, width, paintErase)
}

// HighlightSegment draws a stroke segment onto the overlay at the given
// opacity. Pixels already claimed by earlier overlay content are left
// untouched, so overlapping highlighter marks never darken each other.
func (s *Surface) HighlightSegment(p0, p1 geometry.Point2D, col color.RGBA, opacity, width float64) {
	stampLine(s.overlay, p0, p1, premultiply(col, opacity), width, paintUnder)
}

// DrawStroke renders one retained stroke onto the overlay using the same
// claim rule as HighlightSegment.
func (s *Surface) DrawStroke(stroke HighlighterStroke) {
	if len(stroke.Points) == 0 {
		return
	}
	col := colorutil.ParseHex(stroke.Color, colorutil.Yellow)
	pm := premultiply(col, stroke.Opacity)

	if len(stroke.Points) == 1 {
		p := stroke.Points[0]
		stampDisc(s.overlay, p.X, p.Y, stroke.Width/2, pm, paintUnder)
		return
	}
	for i := 1; i < len(stroke.Points); i++ {
		stampLine(s.overlay, stroke.Points[i-1], stroke.Points[i], pm, stroke.Width, paintUnder)
	}
}

// RenderOverlay clears the overlay and redraws all strokes from the given
// list in order. Because each stroke only fills pixels not yet claimed,
// strokes later in the list appear behind earlier ones where they overlap.
func (s *Surface) RenderOverlay(strokes []HighlighterStroke) {
	clearRGBA(s.overlay)
	for _, stroke := range strokes {
		s.DrawStroke(stroke)
	}
}

// FlattenOverlay merges the overlay's current pixels into the base layer
// and clears the overlay. The merge is final within the session; only a
// history restore brings the pixels back out of the base.
func (s *Surface) FlattenOverlay() {
	src := s.overlay.Pix
	dst := s.base.Pix

	for i := 0; i < len(src); i += 4 {
		sa := src[i+3]
		if sa == 0 {
			continue
		}
		if sa == 255 {
			dst[i] = src[i]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+2]
			dst[i+3] = 255
			continue
		}
		// Premultiplied source-over
		inv := uint32(255 - sa)
		dst[i] = uint8(uint32(src[i]) + uint32(dst[i])*inv/255)
		dst[i+1] = uint8(uint32(src[i+1]) + uint32(dst[i+1])*inv/255)
		dst[i+2] = uint8(uint32(src[i+2]) + uint32(dst[i+2])*inv/255)
		dst[i+3] = uint8(uint32(sa) + uint32(dst[i+3])*inv/255)
	}

	clearRGBA(s.overlay)
}

// Compose renders the displayed image: white background, then the base
// layer, then the overlay on top. The result is a fresh image; the layer
// buffers are not modified.
func (s *Surface) Compose() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, s.width, s.height))

	// Fill background
	draw.Draw(out, out.Bounds(), &image.Uniform{colorutil.White}, image.Point{}, draw.Src)

	compositeOver(out, s.base)
	compositeOver(out, s.overlay)
	return out
}

// compositeOver blends src onto dst with premultiplied source-over. Both
// images must share the same bounds.
func compositeOver(dst, src *image.RGBA) {
	dp := dst.Pix
	sp := src.Pix

	for i := 0; i < len(sp); i += 4 {
		sa := sp[i+3]
		if sa == 0 {
			continue
		}
		if sa == 255 {
			dp[i] = sp[i]
			dp[i+1] = sp[i+1]
			dp[i+2] = sp[i+2]
			dp[i+3] = 255
			continue
		}
		inv := uint32(255 - sa)
		dp[i] = uint8(uint32(sp[i]) + uint32(dp[i])*inv/255)
		dp[i+1] = uint8(uint32(sp[i+1]) + uint32(dp[i+1])*inv/255)
		dp[i+2] = uint8(uint32(sp[i+2]) + uint32(dp[i+2])*inv/255)
		dp[i+3] = uint8(uint32(sa) + uint32(dp[i+3])*inv/255)
	}
}

// premultiply converts a straight color plus opacity into the premultiplied
// RGBA stored in the layer buffers.
func premultiply(col color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	a := uint32(opacity*255 + 0.5)
	return color.RGBA{
		R: uint8(uint32(col.R) * a / 255),
		G: uint8(uint32(col.G) * a / 255),
		B: uint8(uint32(col.B) * a / 255),
		A: uint8(a),
	}
}

func clearRGBA(img *image.RGBA) {
	pix := img.Pix
	for i := range pix {
		pix[i] = 0
	}
}
