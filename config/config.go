// Package config resolves check parameters from dotenv files and the
// process environment, so one binary can run against many parameter sets.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/conformlab/constcheck/check"
)

// Environment variables that carry the three parameters.
const (
	BoundVar      = "CONSTCHECK_BOUND"
	FlagVar       = "CONSTCHECK_FLAG"
	PowerValueVar = "CONSTCHECK_POWER_VALUE"
)

// Load resolves a parameter set. When envFile is non-empty, the file is
// loaded as a dotenv file first; values already present in the process
// environment win over file values, matching godotenv's no-overload
// behavior. Variables that are unset fall back to the reference defaults
// (10, 1, 4). A variable that is set but not an integer is a load error,
// not a constraint violation.
func Load(envFile string) (check.Params, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return check.Params{},
				fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	p := check.DefaultParams()

	var err error

	p.Bound, err = intFromEnv(BoundVar, p.Bound)
	if err != nil {
		return check.Params{}, err
	}

	p.Flag, err = intFromEnv(FlagVar, p.Flag)
	if err != nil {
		return check.Params{}, err
	}

	p.PowerValue, err = intFromEnv(PowerValueVar, p.PowerValue)
	if err != nil {
		return check.Params{}, err
	}

	return p, nil
}

// ParseFile reads a dotenv file without touching the process environment
// and returns the parameter set it describes. Variables absent from the
// file fall back to the reference defaults. Batch runs use this so that
// one file cannot leak values into the next.
func ParseFile(envFile string) (check.Params, error) {
	values, err := godotenv.Read(envFile)
	if err != nil {
		return check.Params{}, fmt.Errorf("reading %s: %w", envFile, err)
	}

	p := check.DefaultParams()

	p.Bound, err = intFromMap(values, BoundVar, p.Bound)
	if err != nil {
		return check.Params{}, err
	}

	p.Flag, err = intFromMap(values, FlagVar, p.Flag)
	if err != nil {
		return check.Params{}, err
	}

	p.PowerValue, err = intFromMap(values, PowerValueVar, p.PowerValue)
	if err != nil {
		return check.Params{}, err
	}

	return p, nil
}

func intFromEnv(name string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}

	return v, nil
}

func intFromMap(values map[string]string, name string, fallback int) (int, error) {
	raw, ok := values[name]
	if !ok {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}

	return v, nil
}
