package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env carries process-environment overrides for the command line tool.
// Variables sit below flags: an explicit flag always wins.
type Env struct {
	DataDir string `env:"QUANTSIM_DATA"   envDefault:".quantsim"`
	Method  string `env:"QUANTSIM_METHOD"`
	NoColor bool   `env:"QUANTSIM_NO_COLOR"`
	Verbose bool   `env:"QUANTSIM_VERBOSE"`
}

// LoadEnv reads the QUANTSIM_* variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}
