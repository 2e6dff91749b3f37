package config

import "sort"

// presets is the built-in definition table. Values are templates;
// GetPreset returns clones.
var presets = map[string]*Config{
	"harmonic": {
		Name:         "harmonic",
		InitialState: map[string]float64{"position": 0, "velocity": 1},
		Parameters:   map[string]float64{"mass": 10, "spring_constant": 0.1, "timestep": 1},
		Drivers:      map[string][]float64{"elapsed_time": series(0, 1, 121)},
		Direct:       []string{"harmonic_energy", "energy_ratio"},
		Differential: []string{"harmonic_oscillator"},
		Solver:       SolverConfig{Method: "rk4", StepSize: 1, RelTol: DefaultRelTol, AbsTol: DefaultAbsTol, MaxSteps: DefaultMaxSteps},
	},
	"thermal": {
		Name:         "thermal",
		InitialState: map[string]float64{"TTc": 0},
		Parameters:   map[string]float64{"timestep": 1, "sowing_time": 0, "tbase": 10},
		Drivers: map[string][]float64{
			"time": series(0, 1, 10),
			"temp": {5, 8, 10, 15, 20, 20, 25, 30, 32, 40},
		},
		Differential: []string{"thermal_time_linear"},
		Solver:       SolverConfig{Method: "euler", StepSize: 1, RelTol: DefaultRelTol, AbsTol: DefaultAbsTol, MaxSteps: DefaultMaxSteps},
	},
	"thermal_mixed": {
		Name:         "thermal_mixed",
		InitialState: map[string]float64{"TTc": 0},
		Parameters:   map[string]float64{"timestep": 1, "sowing_time": 0, "tbase": 10},
		Drivers: map[string][]float64{
			"time": series(0, 1, 10),
			"temp": {5, 8, 10, 15, 20, 20, 25, 30, 32, 40},
		},
		Differential: []string{"thermal_time_linear", "extra:thermal_time_linear"},
		Solver:       SolverConfig{Method: "euler", StepSize: 1, RelTol: DefaultRelTol, AbsTol: DefaultAbsTol, MaxSteps: DefaultMaxSteps},
	},
	"orchard_chill": {
		Name:         "orchard_chill",
		InitialState: map[string]float64{"chill_hours": 0},
		Parameters:   map[string]float64{"timestep": 1, "chill_base": 7.2},
		Drivers: map[string][]float64{
			"time": series(0, 1, 13),
			"temp": {9, 7, 5, 3, 2, 1, 2, 3, 5, 6, 8, 10, 12},
		},
		Differential: []string{"extra:chilling_hours"},
		Solver:       DefaultSolver(),
	},
	"solar_day": {
		Name:         "solar_day",
		InitialState: map[string]float64{},
		Parameters:   map[string]float64{"lat": 40.1, "longitude": -88.2, "time_zone_offset": -6},
		Drivers:      map[string][]float64{"time": series(172, 1.0/24, 25)},
		Direct:       []string{"solar_position"},
		Solver:       SolverConfig{Method: "euler", StepSize: 1, RelTol: DefaultRelTol, AbsTol: DefaultAbsTol, MaxSteps: DefaultMaxSteps},
	},
}

func series(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// GetPreset returns a clone of a built-in definition, or nil if no
// preset has that name.
func GetPreset(name string) *Config {
	cfg, ok := presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
