// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mealplan

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"
)

// OverallMacros is the day's total, formatted as grams
type OverallMacros struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fats    string `json:"fats"`
	Fiber   string `json:"fiber"`
}

// macro reads a numeric macro under either its lower or capitalized key
func macro(m gjson.Result, lower, capitalized string) float64 {
	if v := m.Get(lower); v.Type == gjson.Number {
		return v.Num
	}
	if v := m.Get(capitalized); v.Type == gjson.Number {
		return v.Num
	}
	return 0
}

func grams(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "g"
}

// SumMacros totals the macronutrients of every meal. ok is false when the
// plan has no meals array or every total is zero.
func SumMacros(plan []byte) (OverallMacros, bool) {
	meals := gjson.GetBytes(plan, "meals")
	if !meals.IsArray() {
		return OverallMacros{}, false
	}

	var protein, carbs, fats, fiber float64
	for _, meal := range meals.Array() {
		m := meal.Get("macronutrients")
		if !m.IsObject() {
			continue
		}
		protein += macro(m, "protein", "Protein")
		carbs += macro(m, "carbs", "Carbs")
		fats += macro(m, "fats", "Fats")
		fiber += macro(m, "fiber", "Fiber")
	}

	if protein <= 0 && carbs <= 0 && fats <= 0 && fiber <= 0 {
		return OverallMacros{}, false
	}
	return OverallMacros{
		Protein: grams(protein),
		Carbs:   grams(carbs),
		Fats:    grams(fats),
		Fiber:   grams(fiber),
	}, true
}

// withOverallMacros sets overall_macros on an object plan when there is
// anything to total. Other JSON values pass through unchanged.
func withOverallMacros(plan []byte) ([]byte, error) {
	totals, ok := SumMacros(plan)
	if !ok || !gjson.ParseBytes(plan).IsObject() {
		return plan, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(plan, &fields); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(totals)
	if err != nil {
		return nil, err
	}
	fields["overall_macros"] = encoded
	return json.Marshal(fields)
}
