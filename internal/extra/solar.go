package extra

import (
	"math"

	"github.com/san-kum/quantsim/internal/module"
	"github.com/san-kum/quantsim/internal/quantity"
)

// SolarPosition is a coarser solar geometry module using Cooper's
// declination fit. It declares the same outputs as the standard
// library's module, so listing both in one system is a namespace
// conflict.
type SolarPosition struct{}

func (SolarPosition) Name() string      { return "solar_position" }
func (SolarPosition) Kind() module.Kind { return module.Direct }

func (SolarPosition) Inputs() []string {
	return []string{"lat", "time"}
}

func (SolarPosition) Outputs() []string {
	return []string{"cosine_zenith_angle", "solar_declination", "day_length"}
}

func (SolarPosition) FixedStepOnly() bool { return false }

func (SolarPosition) New(in, out quantity.Store) module.Module {
	return &solarPosition{in: in, out: out}
}

type solarPosition struct {
	in, out quantity.Store
}

func (m *solarPosition) Run() error {
	q, err := m.in.Select("lat", "time")
	if err != nil {
		return err
	}

	day := math.Floor(q["time"])
	hour := (q["time"] - day) * 24.0

	decl := 23.45 * math.Pi / 180 * math.Sin(2*math.Pi*(284+day)/365)
	hourAngle := 15 * (hour - 12) * math.Pi / 180

	latRad := q["lat"] * math.Pi / 180
	cosZenith := math.Sin(latRad)*math.Sin(decl) +
		math.Cos(latRad)*math.Cos(decl)*math.Cos(hourAngle)

	x := -math.Tan(latRad) * math.Tan(decl)
	x = math.Max(-1, math.Min(1, x))
	dayLength := 2 * math.Acos(x) * 12 / math.Pi

	m.out.Set("cosine_zenith_angle", cosZenith)
	m.out.Set("solar_declination", decl)
	m.out.Set("day_length", dayLength)
	return nil
}
