package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/quantsim/internal/quantity"
)

func TestPowerSpectrumFindsSine(t *testing.T) {
	const n, freq = 64, 8
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * freq * float64(i) / n)
	}

	power := PowerSpectrum(data)
	peak := 0
	for k := 1; k < len(power); k++ {
		if power[k] > power[peak] {
			peak = k
		}
	}
	if peak != freq {
		t.Errorf("spectrum peak at bin %d, want %d", peak, freq)
	}
}

func TestSpectrumTruncatesToPowerOfTwo(t *testing.T) {
	col := make([]float64, 100)
	for i := range col {
		col[i] = math.Cos(2 * math.Pi * 4 * float64(i) / 64)
	}
	result := quantity.Frame{"position": col}

	power, n, err := Spectrum(result, "position")
	if err != nil {
		t.Fatalf("Spectrum returned error: %v", err)
	}
	if n != 64 {
		t.Errorf("analyzed rows = %d, want 64", n)
	}
	if len(power) != 32 {
		t.Errorf("spectrum bins = %d, want 32", len(power))
	}
	if period := DominantPeriod(power, n); period != 16 {
		t.Errorf("DominantPeriod = %v, want 16", period)
	}
}

func TestSpectrumErrors(t *testing.T) {
	_, _, err := Spectrum(quantity.Frame{"x": {1, 2}}, "y")
	var nf *quantity.NotFoundError
	if !errors.As(err, &nf) || nf.Name != "y" {
		t.Errorf("unknown column should return a not-found error, got %v", err)
	}

	_, _, err = Spectrum(quantity.Frame{"x": {1}}, "x")
	if !errors.Is(err, ErrShortColumn) {
		t.Errorf("one-row column should fail with ErrShortColumn, got %v", err)
	}
}
