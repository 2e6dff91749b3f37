// Package export renders finished results into portable formats: a
// standalone SVG line chart, CSV, and JSON.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/quantsim/internal/quantity"
)

// LineSVG renders one result column as a polyline chart. xColumn picks
// the horizontal axis; an empty xColumn plots against the row index.
func LineSVG(result quantity.Frame, xColumn, yColumn string, width, height int) (string, error) {
	ys, ok := result[yColumn]
	if !ok {
		return "", &quantity.NotFoundError{Name: yColumn}
	}
	if len(ys) < 2 {
		return "", fmt.Errorf("export: column %s has %d rows, need at least 2", yColumn, len(ys))
	}

	var xs []float64
	if xColumn == "" {
		xs = make([]float64, len(ys))
		for i := range xs {
			xs[i] = float64(i)
		}
	} else {
		xs, ok = result[xColumn]
		if !ok {
			return "", &quantity.NotFoundError{Name: xColumn}
		}
	}

	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)

	// Pad both axes so the line never touches the frame edge. A flat
	// column still gets a visible span.
	minX, maxX = pad(minX, maxX)
	minY, maxY = pad(minY, maxY)
	rangeX := maxX - minX
	rangeY := maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ff00" stroke-width="1.5" d="M`,
		width, height, width, height)

	for i := range ys {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String(), nil
}

func bounds(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func pad(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - span*0.1, hi + span*0.1
}
