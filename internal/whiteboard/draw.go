package whiteboard

import (
	"image"
	"image/color"
	"math"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"
)

// paintMode selects how a stamped pixel combines with the layer.
type paintMode int

const (
	// paintOpaque overwrites the pixel with the stroke color.
	paintOpaque paintMode = iota
	// paintErase clears the pixel to fully transparent.
	paintErase
	// paintUnder writes only where the layer is still transparent, leaving
	// already-claimed pixels alone.
	paintUnder
)

// stampLine walks the segment with Bresenham's algorithm and stamps a disc
// of radius width/2 at each step, producing round caps and joins. Equal
// endpoints stamp a single disc.
func stampLine(img *image.RGBA, p0, p1 geometry.Point2D, col color.RGBA, width float64, mode paintMode) {
	r := width / 2

	x1 := int(math.Round(p0.X))
	y1 := int(math.Round(p0.Y))
	x2 := int(math.Round(p1.X))
	y2 := int(math.Round(p1.Y))

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		stampDisc(img, float64(x1), float64(y1), r, col, mode)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// stampDisc fills a disc centered at (cx, cy). A radius below half a pixel
// still covers the center pixel so a width-1 stroke stays visible.
func stampDisc(img *image.RGBA, cx, cy, r float64, col color.RGBA, mode paintMode) {
	if r < 0.5 {
		r = 0.5
	}
	bounds := img.Bounds()

	minX := int(cx - r - 1)
	maxX := int(cx + r + 1)
	minY := int(cy - r - 1)
	maxY := int(cy + r + 1)

	r2 := r * r

	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dxf := float64(x) - cx
			dyf := float64(y) - cy
			if dxf*dxf+dyf*dyf > r2 {
				continue
			}

			switch mode {
			case paintOpaque:
				img.SetRGBA(x, y, col)
			case paintErase:
				img.SetRGBA(x, y, color.RGBA{})
			case paintUnder:
				if img.RGBAAt(x, y).A == 0 {
					img.SetRGBA(x, y, col)
				}
			}
		}
	}
}
