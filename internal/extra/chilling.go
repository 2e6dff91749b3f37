package extra

import (
	"github.com/san-kum/quantsim/internal/module"
	"github.com/san-kum/quantsim/internal/quantity"
)

// ChillingHours counts hours with temperatures in the chilling band
// (0, chill_base). The rate is a step function of the temperature
// driver, which misleads adaptive error control, so the module requires
// a fixed-step solver.
type ChillingHours struct{}

func (ChillingHours) Name() string      { return "chilling_hours" }
func (ChillingHours) Kind() module.Kind { return module.Differential }

func (ChillingHours) Inputs() []string {
	return []string{"temp", "chill_base"}
}

func (ChillingHours) Outputs() []string {
	return []string{"chill_hours"}
}

func (ChillingHours) FixedStepOnly() bool { return true }

func (ChillingHours) New(in, out quantity.Store) module.Module {
	return &chillingHours{in: in, out: out}
}

type chillingHours struct {
	in, out quantity.Store
}

func (m *chillingHours) Run() error {
	q, err := m.in.Select("temp", "chill_base")
	if err != nil {
		return err
	}
	rate := 0.0
	if q["temp"] > 0 && q["temp"] < q["chill_base"] {
		rate = 1.0
	}
	m.out.Add("chill_hours", rate)
	return nil
}
