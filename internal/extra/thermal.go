package extra

import (
	"github.com/san-kum/quantsim/internal/module"
	"github.com/san-kum/quantsim/internal/quantity"
)

// ThermalTimeLinear accumulates thermal time in per-day units, 24 times
// the rate of the standard library's hourly module. Listing both against
// one TTc state is legal; their rates add.
type ThermalTimeLinear struct{}

func (ThermalTimeLinear) Name() string      { return "thermal_time_linear" }
func (ThermalTimeLinear) Kind() module.Kind { return module.Differential }

func (ThermalTimeLinear) Inputs() []string {
	return []string{"time", "sowing_time", "temp", "tbase"}
}

func (ThermalTimeLinear) Outputs() []string {
	return []string{"TTc"}
}

func (ThermalTimeLinear) FixedStepOnly() bool { return false }

func (ThermalTimeLinear) New(in, out quantity.Store) module.Module {
	return &thermalTimeLinear{in: in, out: out}
}

type thermalTimeLinear struct {
	in, out quantity.Store
}

func (m *thermalTimeLinear) Run() error {
	q, err := m.in.Select("time", "sowing_time", "temp", "tbase")
	if err != nil {
		return err
	}
	rate := 0.0
	if q["time"] >= q["sowing_time"] && q["temp"] > q["tbase"] {
		rate = q["temp"] - q["tbase"]
	}
	m.out.Add("TTc", rate)
	return nil
}
