package metrics

import (
	"math"
	"reflect"
	"testing"

	"github.com/san-kum/quantsim/internal/quantity"
)

func TestSummarize(t *testing.T) {
	result := quantity.Frame{
		"total_energy": {5, 5.0000002, 4.9999999, 5.0000001},
		"position":     {0, 2, -1, 3},
	}

	stats := Summarize(result)

	energy := stats["total_energy"]
	if energy.Min != 4.9999999 || energy.Max != 5.0000002 {
		t.Errorf("energy min/max = %v/%v", energy.Min, energy.Max)
	}
	if energy.Final != 5.0000001 {
		t.Errorf("energy final = %v", energy.Final)
	}
	if energy.Drift > 1e-7 {
		t.Errorf("conserved quantity should have tiny drift, got %v", energy.Drift)
	}

	pos := stats["position"]
	if pos.Min != -1 || pos.Max != 3 {
		t.Errorf("position min/max = %v/%v", pos.Min, pos.Max)
	}
	if math.Abs(pos.Mean-1.0) > 1e-15 {
		t.Errorf("position mean = %v, want 1", pos.Mean)
	}
	// Zero initial value switches Drift to the absolute difference.
	if pos.Drift != 3 {
		t.Errorf("position drift = %v, want 3", pos.Drift)
	}
}

func TestNamesSorted(t *testing.T) {
	stats := Summarize(quantity.Frame{
		"velocity": {1, 2},
		"TTc":      {0, 1},
		"position": {3, 4},
	})

	want := []string{"TTc", "position", "velocity"}
	if got := Names(stats); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}
