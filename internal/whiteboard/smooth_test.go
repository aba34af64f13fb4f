package whiteboard

import (
	"math"
	"testing"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"
)

// TestSmoothPointsPreservesEndpointsAndCount verifies smoothing never
// changes the path length or its endpoints, and that interior jitter
// shrinks.
func TestSmoothPointsPreservesEndpointsAndCount(t *testing.T) {
	points := make([]geometry.Point2D, 15)
	for i := range points {
		jitter := float64(i%2)*4 - 2
		points[i] = pt(float64(i*10), 50+jitter)
	}

	out := SmoothPoints(points)
	if len(out) != len(points) {
		t.Fatalf("point count = %d, want %d", len(out), len(points))
	}
	if out[0] != points[0] || out[len(out)-1] != points[len(points)-1] {
		t.Error("endpoints moved")
	}

	maxDev := 0.0
	for _, p := range out[3 : len(out)-3] {
		if d := math.Abs(p.Y - 50); d > maxDev {
			maxDev = d
		}
	}
	if maxDev >= 2 {
		t.Errorf("max interior deviation = %v, want below the raw 2.0", maxDev)
	}
}

// TestSmoothPointsShortPathUnchanged verifies paths below the window size
// pass through untouched.
func TestSmoothPointsShortPathUnchanged(t *testing.T) {
	points := []geometry.Point2D{pt(0, 0), pt(3, 8), pt(9, 1), pt(12, 12)}

	out := SmoothPoints(points)
	if len(out) != len(points) {
		t.Fatalf("point count = %d, want %d", len(out), len(points))
	}
	for i := range points {
		if out[i] != points[i] {
			t.Errorf("point %d moved: %+v -> %+v", i, points[i], out[i])
		}
	}
}

// TestSmoothPointsLineInvariant verifies a straight evenly spaced path is
// a fixed point of the smoother.
func TestSmoothPointsLineInvariant(t *testing.T) {
	points := make([]geometry.Point2D, 12)
	for i := range points {
		points[i] = pt(float64(i)*5, float64(i)*3)
	}

	out := SmoothPoints(points)
	for i := range points {
		if math.Abs(out[i].X-points[i].X) > 1e-9 || math.Abs(out[i].Y-points[i].Y) > 1e-9 {
			t.Errorf("point %d moved: %+v -> %+v", i, points[i], out[i])
		}
	}
}
