package solver

import "github.com/san-kum/quantsim/internal/dynsys"

// eulerIntegrate takes exactly one forward-Euler step per driver
// interval, so a series of N rows costs N-1 steps.
func eulerIntegrate(sys *dynsys.System, rec *recorder) (int, error) {
	y := sys.State()
	dy := make([]float64, len(y))

	if err := rec.record(0, y); err != nil {
		return 0, err
	}
	steps := 0
	for i := 0; i < sys.NTimes()-1; i++ {
		if err := sys.Derivatives(float64(i), y, dy); err != nil {
			return steps, err
		}
		for j := range y {
			y[j] += dy[j]
		}
		steps++
		if err := rec.record(i+1, y); err != nil {
			return steps, err
		}
	}
	return steps, nil
}
