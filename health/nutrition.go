// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package health

import "strings"

const (
	GoalWeightLoss  = "weight-loss"
	GoalMaintenance = "maintenance"
	GoalMuscleGain  = "muscle-gain"

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

type goalPlan struct {
	modifier             float64
	protein, carbs, fats float64
}

var goalPlans = map[string]goalPlan{
	GoalWeightLoss:  {-0.2, 0.4, 0.3, 0.3},
	GoalMaintenance: {0, 0.25, 0.45, 0.3},
	GoalMuscleGain:  {0.15, 0.3, 0.45, 0.25},
}

// NutritionResult holds daily targets; macros are grams
type NutritionResult struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
	BMR      int `json:"bmr"`
	TDEE     int `json:"tdee"`
}

func validMultiplier(activity float64) bool {
	for _, m := range ActivityMultipliers {
		if m == activity {
			return true
		}
	}
	return false
}

// Nutrition uses the Mifflin-St Jeor equation, applies the goal's calorie
// modifier and splits the result into macros. An empty goal means maintenance.
func Nutrition(body Body, age float64, gender string, activity float64, goal string) (*NutritionResult, error) {
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
	if !validMultiplier(activity) {
		return nil, invalid("activity must be one of 1.2, 1.375, 1.55, 1.725, 1.9")
	}

	goal = strings.ToLower(strings.TrimSpace(goal))
	if goal == "" {
		goal = GoalMaintenance
	}
	plan, ok := goalPlans[goal]
	if !ok {
		return nil, invalid("goal must be %q, %q or %q", GoalWeightLoss, GoalMaintenance, GoalMuscleGain)
	}

	bmr := 10*kg + 6.25*cm - 5*age
	if gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * activity
	target := tdee * (1 + plan.modifier)

	return &NutritionResult{
		Calories: round(target),
		Protein:  round(target * plan.protein / kcalPerGramProtein),
		Carbs:    round(target * plan.carbs / kcalPerGramCarbs),
		Fats:     round(target * plan.fats / kcalPerGramFat),
		BMR:      round(bmr),
		TDEE:     round(tdee),
	}, nil
}
