package whiteboard

import (
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// smoothWindow is the sliding window size for stroke smoothing. Must be odd.
const smoothWindow = 7

// SmoothPoints reduces pointer jitter in a freehand path by fitting a
// quadratic to each sliding window with least squares and replacing the
// window's center point with the fit's value. Endpoints and point count are
// preserved; paths shorter than the window are returned unchanged.
func SmoothPoints(points []geometry.Point2D) []geometry.Point2D {
	if len(points) < smoothWindow {
		return points
	}

	out := make([]geometry.Point2D, len(points))
	copy(out, points)

	half := smoothWindow / 2
	for i := half; i < len(points)-half; i++ {
		p, err := fitQuadraticCenter(points[i-half : i+half+1])
		if err != nil {
			continue
		}
		out[i] = p
	}

	return out
}

// fitQuadraticCenter fits x(t) and y(t) quadratics over the window with t
// centered on the middle sample, and evaluates both at t = 0.
func fitQuadraticCenter(window []geometry.Point2D) (geometry.Point2D, error) {
	n := len(window)

	// Build overdetermined system: value = a + b*t + c*t^2
	A := mat.NewDense(n, 3, nil)
	bx := mat.NewVecDense(n, nil)
	by := mat.NewVecDense(n, nil)

	for i := 0; i < n; i++ {
		t := float64(i - n/2)
		A.Set(i, 0, 1)
		A.Set(i, 1, t)
		A.Set(i, 2, t*t)
		bx.SetVec(i, window[i].X)
		by.SetVec(i, window[i].Y)
	}

	// Solve using QR decomposition
	var qr mat.QR
	qr.Factorize(A)

	var px, py mat.VecDense
	if err := qr.SolveVecTo(&px, false, bx); err != nil {
		return geometry.Point2D{}, err
	}
	if err := qr.SolveVecTo(&py, false, by); err != nil {
		return geometry.Point2D{}, err
	}

	// At t = 0 only the constant term survives.
	return geometry.Point2D{X: px.AtVec(0), Y: py.AtVec(0)}, nil
}
