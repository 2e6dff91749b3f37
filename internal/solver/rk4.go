package solver

import "github.com/san-kum/quantsim/internal/dynsys"

// rk4Integrate takes one classic Runge-Kutta 4 step per driver interval.
// Midpoint stages evaluate the drivers at half-row positions through the
// system's linear interpolation.
func rk4Integrate(sys *dynsys.System, rec *recorder) (int, error) {
	y := sys.State()
	dim := len(y)
	k1 := make([]float64, dim)
	k2 := make([]float64, dim)
	k3 := make([]float64, dim)
	k4 := make([]float64, dim)
	tmp := make([]float64, dim)

	if err := rec.record(0, y); err != nil {
		return 0, err
	}
	steps := 0
	for i := 0; i < sys.NTimes()-1; i++ {
		t := float64(i)
		if err := sys.Derivatives(t, y, k1); err != nil {
			return steps, err
		}
		for j := 0; j < dim; j++ {
			tmp[j] = y[j] + 0.5*k1[j]
		}
		if err := sys.Derivatives(t+0.5, tmp, k2); err != nil {
			return steps, err
		}
		for j := 0; j < dim; j++ {
			tmp[j] = y[j] + 0.5*k2[j]
		}
		if err := sys.Derivatives(t+0.5, tmp, k3); err != nil {
			return steps, err
		}
		for j := 0; j < dim; j++ {
			tmp[j] = y[j] + k3[j]
		}
		if err := sys.Derivatives(t+1, tmp, k4); err != nil {
			return steps, err
		}
		for j := 0; j < dim; j++ {
			y[j] += (k1[j] + 2*k2[j] + 2*k3[j] + k4[j]) / 6.0
		}
		steps++
		if err := rec.record(i+1, y); err != nil {
			return steps, err
		}
	}
	return steps, nil
}
