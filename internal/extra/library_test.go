package extra

import (
	"math"
	"testing"

	"github.com/san-kum/quantsim/internal/models"
	"github.com/san-kum/quantsim/internal/quantity"
)

func TestLibraryCatalogue(t *testing.T) {
	lib := Library()

	want := []string{"chilling_hours", "solar_position", "thermal_time_linear"}
	got := lib.Modules()
	if len(got) != len(want) {
		t.Fatalf("Modules = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Modules[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestThermalTimeLinearIsDailyRate(t *testing.T) {
	in := quantity.Store{"time": 60, "sowing_time": 50, "temp": 25, "tbase": 10}

	hourly := quantity.Store{"TTc": 0}
	if err := (models.ThermalTimeLinear{}).New(in, hourly).Run(); err != nil {
		t.Fatalf("standard module: %v", err)
	}
	daily := quantity.Store{"TTc": 0}
	if err := (ThermalTimeLinear{}).New(in, daily).Run(); err != nil {
		t.Fatalf("extra module: %v", err)
	}

	if math.Abs(daily["TTc"]-24*hourly["TTc"]) > 1e-12 {
		t.Errorf("daily rate %v should be 24 times hourly rate %v", daily["TTc"], hourly["TTc"])
	}
}

func TestSolarPositionSharesOutputNames(t *testing.T) {
	std := models.SolarPosition{}.Outputs()
	dup := SolarPosition{}.Outputs()

	if len(std) != len(dup) {
		t.Fatalf("output counts differ: %v vs %v", std, dup)
	}
	for i := range std {
		if std[i] != dup[i] {
			t.Errorf("output %d differs: %q vs %q", i, std[i], dup[i])
		}
	}
}

func TestChillingHoursGate(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		want float64
	}{
		{"freezing", -2, 0},
		{"chilling", 4, 1},
		{"warm", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := quantity.Store{"temp": tt.temp, "chill_base": 7.2}
			out := quantity.Store{"chill_hours": 0}
			if err := (ChillingHours{}).New(in, out).Run(); err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if out["chill_hours"] != tt.want {
				t.Errorf("temp %v: rate = %v, want %v", tt.temp, out["chill_hours"], tt.want)
			}
		})
	}

	if !(ChillingHours{}).FixedStepOnly() {
		t.Error("chilling_hours must be flagged fixed-step-only")
	}
}
