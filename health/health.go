// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package health implements the BMI, BMR and nutrition calculators.
//
// Inputs may be metric (cm, kg) or imperial (inches, lbs). All functions are
// pure and return an error wrapping ErrInvalidInput for bad input.
package health

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	UnitMetric   = "metric"
	UnitImperial = "imperial"

	GenderMale   = "male"
	GenderFemale = "female"

	cmPerInch = 2.54
	kgPerLb   = 0.453592
)

var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Body is a height and weight in the given unit system
type Body struct {
	Height float64
	Weight float64
	Unit   string
}

// Metric returns height in cm and weight in kg
func (b Body) Metric() (cm, kg float64, err error) {
	if b.Height <= 0 {
		return 0, 0, invalid("height must be greater than 0")
	}
	if b.Weight <= 0 {
		return 0, 0, invalid("weight must be greater than 0")
	}

	switch strings.ToLower(b.Unit) {
	case "", UnitMetric:
		return b.Height, b.Weight, nil
	case UnitImperial:
		return b.Height * cmPerInch, b.Weight * kgPerLb, nil
	default:
		return 0, 0, invalid("unit must be %q or %q", UnitMetric, UnitImperial)
	}
}

func normalizeGender(gender string) (string, error) {
	g := strings.ToLower(strings.TrimSpace(gender))
	if g != GenderMale && g != GenderFemale {
		return "", invalid("gender must be %q or %q", GenderMale, GenderFemale)
	}
	return g, nil
}

func checkAge(age float64) error {
	if age <= 0 {
		return invalid("age must be greater than 0")
	}
	return nil
}

func round(v float64) int {
	return int(math.Round(v))
}
