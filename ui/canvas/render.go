// Package canvas provides document frame rendering for the whiteboard.
package canvas

import (
	"image"
	"image/color"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/whiteboard"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/colorutil"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"
)

var (
	selectionColor = color.RGBA{R: 0x1E, G: 0x88, B: 0xE5, A: 0xFF}
	handleBorder   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	mediaBorder    = color.RGBA{R: 0xBD, G: 0xBD, B: 0xBD, A: 0xFF}
	placeholderBG  = color.RGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xFF}
	placeholderFG  = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
)

// italicShear is the horizontal slant per row applied to italic text.
const italicShear = 0.25

// cachedMedia keeps one decoded media payload. img stays nil when the
// payload is not a decodable image.
type cachedMedia struct {
	src string
	img image.Image
}

// renderDocument composes the full document frame in document space:
// surface first, then media, then text. The text element being edited is
// skipped so the in-place editor is the only visible copy.
func (bc *BoardCanvas) renderDocument(editingID string) *image.RGBA {
	frame := bc.board.Surface().Compose()

	medias := bc.board.Elements().Medias()
	seen := make(map[string]bool, len(medias))
	for _, m := range medias {
		seen[m.ID] = true
		bc.drawMediaElement(frame, m)
	}
	// Drop cache entries for media that no longer exists.
	for id := range bc.mediaCache {
		if !seen[id] {
			delete(bc.mediaCache, id)
		}
	}

	for _, t := range bc.board.Elements().Texts() {
		if t.ID == editingID {
			continue
		}
		drawTextElement(frame, t)
	}
	return frame
}

// drawMediaElement draws one media element into the frame. Images show
// their scaled pixels; video and audio show a placeholder box.
func (bc *BoardCanvas) drawMediaElement(frame *image.RGBA, m *whiteboard.MediaElement) {
	x1, y1 := int(m.X), int(m.Y)
	x2, y2 := int(m.X+m.Width)-1, int(m.Y+m.Height)-1

	if m.Type == whiteboard.MediaImage {
		if img := bc.mediaImage(m); img != nil {
			rect := image.Rect(x1, y1, x2+1, y2+1)
			xdraw.ApproxBiLinear.Scale(frame, rect, img, img.Bounds(), xdraw.Over, nil)
			drawRectBorder(frame, x1, y1, x2, y2, mediaBorder, 1)
			return
		}
	}

	fillRect(frame, x1, y1, x2, y2, placeholderBG)
	drawRectBorder(frame, x1, y1, x2, y2, mediaBorder, 1)

	switch m.Type {
	case whiteboard.MediaVideo:
		half := (y2 - y1) / 6
		if half < 6 {
			half = 6
		}
		drawPlayGlyph(frame, (x1+x2)/2, (y1+y2)/2, half, placeholderFG)
	case whiteboard.MediaAudio:
		barY := (y1 + y2) / 2
		fillRect(frame, x1+8, barY-1, x2-8, barY+1, placeholderFG)
	}

	name := m.Name
	if name == "" {
		name = string(m.Type)
	}
	// Truncate the label to the box width.
	maxChars := (x2 - x1 - 6) / basicfont.Face7x13.Advance
	if runes := []rune(name); len(runes) > maxChars {
		if maxChars < 1 {
			return
		}
		name = string(runes[:maxChars])
	}
	drawString(frame, name, x1+4, y1+3, placeholderFG)
}

// mediaImage returns the decoded image for a media element, decoding at
// most once per payload.
func (bc *BoardCanvas) mediaImage(m *whiteboard.MediaElement) image.Image {
	if c, ok := bc.mediaCache[m.ID]; ok && c.src == m.Src {
		return c.img
	}
	img, err := whiteboard.DecodeBaseData(m.Src)
	if err != nil {
		img = nil
	}
	bc.mediaCache[m.ID] = cachedMedia{src: m.Src, img: img}
	return img
}

// drawTextElement paints a committed text element into the frame.
func drawTextElement(frame *image.RGBA, t *whiteboard.TextElement) {
	img := renderTextImage(t)
	if img == nil {
		return
	}
	if t.FontStyle == "italic" {
		blendOverSheared(frame, img, int(t.X), int(t.Y), italicShear)
	} else {
		blendOver(frame, img, int(t.X), int(t.Y))
	}
}

// renderTextImage rasterizes a text element with the 7x13 bitmap face,
// scaled to the element's font size. Bold doubles the strike with a one
// pixel offset. Returns nil when there is nothing visible to draw.
func renderTextImage(t *whiteboard.TextElement) *image.RGBA {
	lines := strings.Split(t.Text, "\n")
	cols := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > cols {
			cols = n
		}
	}
	if cols == 0 {
		return nil
	}

	face := basicfont.Face7x13
	w0 := cols*face.Advance + 2
	h0 := len(lines) * face.Height
	base := image.NewRGBA(image.Rect(0, 0, w0, h0))

	src := image.NewUniform(colorutil.ParseHex(t.Color, colorutil.Black))
	d := font.Drawer{Dst: base, Src: src, Face: face}
	for i, line := range lines {
		d.Dot = fixed.P(0, i*face.Height+face.Ascent)
		d.DrawString(line)
		if t.FontWeight == "bold" {
			d.Dot = fixed.P(1, i*face.Height+face.Ascent)
			d.DrawString(line)
		}
	}

	scale := t.FontSize / float64(face.Height)
	if scale <= 0 || scale == 1 {
		return base
	}
	out := image.NewRGBA(image.Rect(0, 0,
		int(float64(w0)*scale+0.5), int(float64(h0)*scale+0.5)))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return out
}

// drawSelectionMarks draws the dashed selection outline and, for media,
// the resize handle. Coordinates are in view space so the marks stay
// crisp at any zoom.
func (bc *BoardCanvas) drawSelectionMarks(output *image.RGBA) {
	sel := bc.board.Selected()
	if sel.IsNone() {
		return
	}

	var box geometry.Rect
	var handle geometry.Rect
	hasHandle := false
	switch sel.Kind {
	case whiteboard.KindText:
		t := bc.board.Elements().Text(sel.ID)
		if t == nil {
			return
		}
		box = whiteboard.TextBounds(t)
	case whiteboard.KindMedia:
		m := bc.board.Elements().Media(sel.ID)
		if m == nil {
			return
		}
		box = whiteboard.MediaBounds(m)
		handle = whiteboard.ResizeHandle(m)
		hasHandle = true
	default:
		return
	}

	z := bc.zoom
	x1 := int(box.X*z) - 2
	y1 := int(box.Y*z) - 2
	x2 := int((box.X+box.Width)*z) + 2
	y2 := int((box.Y+box.Height)*z) + 2
	drawDashedRect(output, x1, y1, x2, y2, selectionColor)

	if hasHandle {
		hx1 := int(handle.X * z)
		hy1 := int(handle.Y * z)
		hx2 := int((handle.X + handle.Width) * z)
		hy2 := int((handle.Y + handle.Height) * z)
		fillRect(output, hx1, hy1, hx2, hy2, selectionColor)
		drawRectBorder(output, hx1, hy1, hx2, hy2, handleBorder, 1)
	}
}
