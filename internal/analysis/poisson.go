package analysis

import (
	"errors"
	"math"
)

// ErrShortColumn is returned by Spectrum for columns with fewer than two
// rows.
var ErrShortColumn = errors.New("analysis: column too short for a spectrum")

// PoissonDensity returns P(X = x) for a Poisson random variable with
// mean lambda. The density is computed in log space so large x and
// lambda do not overflow the factorial.
func PoissonDensity(x int, lambda float64) float64 {
	if x < 0 || lambda < 0 {
		return 0
	}
	if lambda == 0 {
		if x == 0 {
			return 1
		}
		return 0
	}
	lg, _ := math.Lgamma(float64(x) + 1)
	return math.Exp(float64(x)*math.Log(lambda) - lambda - lg)
}
