package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// blendOver composites src onto dst at (x0, y0) with premultiplied
// source-over blending.
func blendOver(dst, src *image.RGBA, x0, y0 int) {
	sb := src.Bounds()
	db := dst.Bounds()
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		dy := y0 + y - sb.Min.Y
		if dy < db.Min.Y || dy >= db.Max.Y {
			continue
		}
		for x := sb.Min.X; x < sb.Max.X; x++ {
			dx := x0 + x - sb.Min.X
			if dx < db.Min.X || dx >= db.Max.X {
				continue
			}
			s := src.RGBAAt(x, y)
			if s.A == 0 {
				continue
			}
			if s.A == 255 {
				dst.SetRGBA(dx, dy, s)
				continue
			}
			d := dst.RGBAAt(dx, dy)
			inv := uint32(255 - s.A)
			dst.SetRGBA(dx, dy, color.RGBA{
				R: uint8(uint32(s.R) + uint32(d.R)*inv/255),
				G: uint8(uint32(s.G) + uint32(d.G)*inv/255),
				B: uint8(uint32(s.B) + uint32(d.B)*inv/255),
				A: uint8(uint32(s.A) + uint32(d.A)*inv/255),
			})
		}
	}
}

// blendOverSheared composites src like blendOver but shifts each row
// right by shear times its distance from the bottom, slanting the image.
func blendOverSheared(dst, src *image.RGBA, x0, y0 int, shear float64) {
	sb := src.Bounds()
	h := sb.Dy()
	row := image.NewRGBA(image.Rect(0, 0, sb.Dx(), 1))
	for y := 0; y < h; y++ {
		for x := 0; x < sb.Dx(); x++ {
			row.SetRGBA(x, 0, src.RGBAAt(sb.Min.X+x, sb.Min.Y+y))
		}
		offset := int(shear * float64(h-1-y))
		blendOver(dst, row, x0+offset, y0+y)
	}
}

// fillRect fills the inclusive rectangle with a solid color.
func fillRect(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := dst.Bounds()
	for y := y1; y <= y2; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := x1; x <= x2; x++ {
			if x >= bounds.Min.X && x < bounds.Max.X {
				dst.SetRGBA(x, y, col)
			}
		}
	}
}

// drawRectBorder draws a rectangle outline of the given thickness.
func drawRectBorder(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := dst.Bounds()
	for t := 0; t < thickness; t++ {
		// Top edge
		for x := x1; x <= x2; x++ {
			if x >= bounds.Min.X && x < bounds.Max.X && y1+t >= bounds.Min.Y && y1+t < bounds.Max.Y {
				dst.SetRGBA(x, y1+t, col)
			}
		}
		// Bottom edge
		for x := x1; x <= x2; x++ {
			if x >= bounds.Min.X && x < bounds.Max.X && y2-t >= bounds.Min.Y && y2-t < bounds.Max.Y {
				dst.SetRGBA(x, y2-t, col)
			}
		}
		// Left edge
		for y := y1; y <= y2; y++ {
			if x1+t >= bounds.Min.X && x1+t < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
				dst.SetRGBA(x1+t, y, col)
			}
		}
		// Right edge
		for y := y1; y <= y2; y++ {
			if x2-t >= bounds.Min.X && x2-t < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
				dst.SetRGBA(x2-t, y, col)
			}
		}
	}
}

// drawDashedRect draws a dashed rectangle outline (alternate pixels).
func drawDashedRect(dst *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := dst.Bounds()
	// Top edge
	for x := x1; x <= x2; x++ {
		if (x+y1)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			dst.SetRGBA(x, y1, col)
		}
	}
	// Bottom edge
	for x := x1; x <= x2; x++ {
		if (x+y2)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y2 >= bounds.Min.Y && y2 < bounds.Max.Y {
			dst.SetRGBA(x, y2, col)
		}
	}
	// Left edge
	for y := y1; y <= y2; y++ {
		if (x1+y)%4 < 2 && x1 >= bounds.Min.X && x1 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			dst.SetRGBA(x1, y, col)
		}
	}
	// Right edge
	for y := y1; y <= y2; y++ {
		if (x2+y)%4 < 2 && x2 >= bounds.Min.X && x2 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			dst.SetRGBA(x2, y, col)
		}
	}
}

// drawString draws a single line of text with the 7x13 bitmap face, with
// (x, y) at the top-left corner of the text box.
func drawString(dst *image.RGBA, s string, x, y int, col color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(s)
}

// drawPlayGlyph draws a filled right-pointing triangle centered at
// (cx, cy) with the given half-height.
func drawPlayGlyph(dst *image.RGBA, cx, cy, half int, col color.RGBA) {
	bounds := dst.Bounds()
	for dy := -half; dy <= half; dy++ {
		y := cy + dy
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		// Triangle narrows linearly toward the tip on the right.
		span := half - abs(dy)
		width := span * 2
		for dx := 0; dx <= width; dx++ {
			x := cx - half + dx
			if x >= bounds.Min.X && x < bounds.Max.X {
				dst.SetRGBA(x, y, col)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
