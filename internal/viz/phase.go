package viz

import (
	"fmt"

	"github.com/san-kum/quantsim/internal/quantity"
)

// PhasePlot renders yColumn against xColumn as a braille phase
// portrait of width x height cells, joining consecutive rows, with a
// caption line underneath.
func PhasePlot(result quantity.Frame, xColumn, yColumn string, width, height int) (string, error) {
	if width < 1 || height < 1 {
		return "", fmt.Errorf("viz: canvas must be at least 1x1 cells, got %dx%d", width, height)
	}
	xs, ok := result[xColumn]
	if !ok {
		return "", &quantity.NotFoundError{Name: xColumn}
	}
	ys, ok := result[yColumn]
	if !ok {
		return "", &quantity.NotFoundError{Name: yColumn}
	}
	if len(xs) < 2 {
		return "", fmt.Errorf("viz: column %s has %d rows, need at least 2", xColumn, len(xs))
	}

	minX, maxX := span(xs)
	minY, maxY := span(ys)
	rangeX := maxX - minX
	rangeY := maxY - minY

	// Dot space is 2w x 4h; the y axis flips so larger values sit
	// higher on screen.
	maxDotX := float64(2*width - 1)
	maxDotY := float64(4*height - 1)

	canvas := NewCanvas(width, height)
	px := make([]int, len(xs))
	py := make([]int, len(xs))
	for i := range xs {
		px[i] = int((xs[i]-minX)/rangeX*maxDotX + 0.5)
		py[i] = int(maxDotY - (ys[i]-minY)/rangeY*maxDotY + 0.5)
	}
	for i := 1; i < len(xs); i++ {
		canvas.Line(px[i-1], py[i-1], px[i], py[i])
	}

	return canvas.String() + fmt.Sprintf("%s vs %s\n", yColumn, xColumn), nil
}

// span returns the padded value range of a column. A flat column still
// gets a visible span.
func span(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	width := hi - lo
	if width == 0 {
		width = 1
	}
	return lo - width*0.05, hi + width*0.05
}
