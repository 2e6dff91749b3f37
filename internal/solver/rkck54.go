package solver

import (
	"math"

	"github.com/san-kum/quantsim/internal/dynsys"
)

// Cash-Karp 5(4) tableau.
var (
	ckC = [6]float64{0, 1.0 / 5, 3.0 / 10, 3.0 / 5, 1, 7.0 / 8}

	ckA = [6][5]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{3.0 / 10, -9.0 / 10, 6.0 / 5},
		{-11.0 / 54, 5.0 / 2, -70.0 / 27, 35.0 / 27},
		{1631.0 / 55296, 175.0 / 512, 575.0 / 13824, 44275.0 / 110592, 253.0 / 4096},
	}

	// Fifth-order solution weights.
	ckB = [6]float64{37.0 / 378, 0, 250.0 / 621, 125.0 / 594, 0, 512.0 / 1771}

	// Difference between the fifth- and fourth-order weights, giving the
	// embedded error estimate.
	ckE = [6]float64{
		37.0/378 - 2825.0/27648,
		0,
		250.0/621 - 18575.0/48384,
		125.0/594 - 13525.0/55296,
		-277.0 / 14336,
		512.0/1771 - 1.0/4,
	}
)

// Step size controller constants.
const (
	ckSafety   = 0.9
	ckMinScale = 0.2
	ckMaxScale = 10.0
)

// adaptiveIntegrate subdivides each driver interval under embedded error
// control. Every attempted step, accepted or rejected, counts toward
// maxSteps, so a step size driven to zero by non-finite estimates still
// terminates at the budget.
func adaptiveIntegrate(sys *dynsys.System, rec *recorder, relTol, absTol float64, maxSteps int) (int, error) {
	y := sys.State()
	dim := len(y)
	k := make([][]float64, 6)
	for i := range k {
		k[i] = make([]float64, dim)
	}
	yStage := make([]float64, dim)
	yNew := make([]float64, dim)
	yErr := make([]float64, dim)

	if err := rec.record(0, y); err != nil {
		return 0, err
	}
	steps := 0
	h := 1.0
	for i := 0; i < sys.NTimes()-1; i++ {
		t := float64(i)
		end := float64(i + 1)
		for t < end {
			if h > end-t {
				h = end - t
			}
			if steps >= maxSteps {
				return steps, &StepLimitError{Method: "rkck54", MaxSteps: maxSteps}
			}
			steps++

			for stage := 0; stage < 6; stage++ {
				for j := 0; j < dim; j++ {
					acc := y[j]
					for prev := 0; prev < stage; prev++ {
						acc += h * ckA[stage][prev] * k[prev][j]
					}
					yStage[j] = acc
				}
				if err := sys.Derivatives(t+ckC[stage]*h, yStage, k[stage]); err != nil {
					return steps, err
				}
			}

			errMax := 0.0
			for j := 0; j < dim; j++ {
				sum, errSum := 0.0, 0.0
				for stage := 0; stage < 6; stage++ {
					sum += ckB[stage] * k[stage][j]
					errSum += ckE[stage] * k[stage][j]
				}
				yNew[j] = y[j] + h*sum
				yErr[j] = h * errSum

				scale := absTol + relTol*math.Abs(y[j])
				e := math.Abs(yErr[j]) / scale
				if math.IsNaN(e) || math.IsInf(e, 0) {
					e = math.Inf(1)
				}
				if e > errMax {
					errMax = e
				}
			}

			if errMax <= 1 {
				t += h
				copy(y, yNew)
				if errMax == 0 {
					h *= ckMaxScale
				} else {
					h *= math.Min(ckSafety*math.Pow(errMax, -0.2), ckMaxScale)
				}
			} else {
				h *= math.Max(ckSafety*math.Pow(errMax, -0.25), ckMinScale)
			}
		}
		if err := rec.record(i+1, y); err != nil {
			return steps, err
		}
	}
	return steps, nil
}
