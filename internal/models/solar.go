package models

import (
	"math"

	"github.com/san-kum/quantsim/internal/module"
	"github.com/san-kum/quantsim/internal/quantity"
)

// SolarPosition derives solar geometry from a fractional day-of-year and
// an observer location, using Spencer's Fourier fit for declination and
// the equation of time, and the NOAA hour-angle relations. The time
// input is day-of-year plus hour fraction in local standard time, e.g.
// 200 + 12.0/24 for noon on day 200.
type SolarPosition struct{}

func (SolarPosition) Name() string      { return "solar_position" }
func (SolarPosition) Kind() module.Kind { return module.Direct }

func (SolarPosition) Inputs() []string {
	return []string{"lat", "longitude", "time", "time_zone_offset"}
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
	q, err := m.in.Select("lat", "longitude", "time", "time_zone_offset")
	if err != nil {
		return err
	}

	day := math.Floor(q["time"])
	hour := (q["time"] - day) * 24.0

	g := 2 * math.Pi / 365.0 * (day - 1 + (hour-12)/24.0)
	decl := 0.006918 - 0.399912*math.Cos(g) + 0.070257*math.Sin(g) -
		0.006758*math.Cos(2*g) + 0.000907*math.Sin(2*g) -
		0.002697*math.Cos(3*g) + 0.00148*math.Sin(3*g)

	// Equation of time in minutes.
	eqTime := 229.18 * (0.000075 + 0.001868*math.Cos(g) - 0.032077*math.Sin(g) -
		0.014615*math.Cos(2*g) - 0.040849*math.Sin(2*g))

	offset := eqTime + 4*q["longitude"] - 60*q["time_zone_offset"]
	trueSolarMinutes := hour*60 + offset
	hourAngle := (trueSolarMinutes/4 - 180) * math.Pi / 180

	latRad := q["lat"] * math.Pi / 180
	cosZenith := math.Sin(latRad)*math.Sin(decl) +
		math.Cos(latRad)*math.Cos(decl)*math.Cos(hourAngle)

	// Polar day and night clamp the sunset hour angle.
	x := -math.Tan(latRad) * math.Tan(decl)
	x = math.Max(-1, math.Min(1, x))
	dayLength := 2 * math.Acos(x) * 12 / math.Pi

	m.out.Set("cosine_zenith_angle", cosZenith)
	m.out.Set("solar_declination", decl)
	m.out.Set("day_length", dayLength)
	return nil
}
