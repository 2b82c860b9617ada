// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package health

import "strings"

const DefaultActivity = "moderate"

// ActivityMultipliers maps activity level keys to TDEE multipliers
var ActivityMultipliers = map[string]float64{
	"sedentary":  1.2,
	"light":      1.375,
	"moderate":   1.55,
	"active":     1.725,
	"veryActive": 1.9,
}

type Goals struct {
	WeightLoss  int `json:"weight_loss"`
	Maintenance int `json:"maintenance"`
	WeightGain  int `json:"weight_gain"`
}

type BMRResult struct {
	BMR              int            `json:"bmr"`
	TDEE             map[string]int `json:"tdee"`
	SelectedActivity string         `json:"selected_activity"`
	DailyCalories    int            `json:"daily_calories"`
	Goals            Goals          `json:"goals"`
}

// BMR uses the revised Harris-Benedict equation and reports TDEE at every
// activity level. Goals are ±500 kcal around the selected level.
func BMR(body Body, age float64, gender, activity string) (*BMRResult, error) {
	cm, kg, err := body.Metric()
	if err != nil {
		return nil, err
	}
	if err := checkAge(age); err != nil {
		return nil, err
	}
	gender, err = normalizeGender(gender)
	if err != nil {
		return nil, err
	}

	activity = strings.TrimSpace(activity)
	if activity == "" {
		activity = DefaultActivity
	}
	selected, ok := ActivityMultipliers[activity]
	if !ok {
		return nil, invalid("unknown activity level %q", activity)
	}

	var bmr float64
	if gender == GenderMale {
		bmr = 88.362 + 13.397*kg + 4.799*cm - 5.677*age
	} else {
		bmr = 447.593 + 9.247*kg + 3.098*cm - 4.330*age
	}

	tdee := make(map[string]int, len(ActivityMultipliers))
	for level, m := range ActivityMultipliers {
		tdee[level] = round(bmr * m)
	}

	daily := bmr * selected
	return &BMRResult{
		BMR:              round(bmr),
		TDEE:             tdee,
		SelectedActivity: activity,
		DailyCalories:    round(daily),
		Goals: Goals{
			WeightLoss:  round(daily - 500),
			Maintenance: round(daily),
			WeightGain:  round(daily + 500),
		},
	}, nil
}
