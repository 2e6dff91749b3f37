package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/quantsim/internal/quantity"
)

// PowerSpectrum returns the magnitude of the first half of the FFT bins
// of a real signal.
func PowerSpectrum(data []float64) []float64 {
	bins := fft.FFTReal(data)
	power := make([]float64, len(bins)/2)
	for i := range power {
		power[i] = cmplx.Abs(bins[i])
	}
	return power
}

// Spectrum computes the power spectrum of one result column. The column
// is truncated to its largest power-of-two prefix, so the bin-to-period
// arithmetic stays exact for any driver series length. It returns the
// spectrum and the number of rows analyzed.
func Spectrum(result quantity.Frame, column string) ([]float64, int, error) {
	col, ok := result[column]
	if !ok {
		return nil, 0, &quantity.NotFoundError{Name: column}
	}
	n := largestPowerOfTwo(len(col))
	if n < 2 {
		return nil, 0, ErrShortColumn
	}
	return PowerSpectrum(col[:n]), n, nil
}

// DominantPeriod returns the period in rows of the strongest non-DC
// frequency bin of a spectrum over n rows, or 0 when there is none.
func DominantPeriod(power []float64, n int) float64 {
	if len(power) < 2 {
		return 0
	}
	best := 1
	for k := 2; k < len(power); k++ {
		if power[k] > power[best] {
			best = k
		}
	}
	return float64(n) / float64(best)
}

func largestPowerOfTwo(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
