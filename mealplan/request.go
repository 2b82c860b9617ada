// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mealplan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	MsgMissingFields = "Missing required fields."
	MsgCaloriesLow   = "Calories value is too low. Please enter a realistic daily calorie target (minimum 1000)."
	MsgHeightLow     = "Height value is too low. Please enter a realistic height (minimum 50 cm)."
	MsgWeightLow     = "Weight value is too low. Please enter a realistic weight (minimum 20 kg)."

	MinCalories = 1000
	MinHeightCm = 50
	MinWeightKg = 20
)

// ValidationError is a request the planner refuses before calling any model
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Request is a validated meal plan request. Profile fields are kept as
// the client sent them so the prompt echoes them verbatim.
type Request struct {
	Cuisine    string
	Calories   float64
	Goal       string
	Age        string
	Gender     string
	Allergies  []string
	MealTiming []string
	DietType   string
	Height     float64
	Weight     float64
}

// truthy mirrors how a loosely typed client treats a JSON value as present
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return r.Exists()
	}
}

func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}

// ParseRequest validates a raw JSON body. Failures are *ValidationError.
func ParseRequest(body []byte) (*Request, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ValidationError{Message: "Invalid JSON"}
	}
	f := gjson.ParseBytes(body)
	if !f.IsObject() {
		return nil, &ValidationError{Message: MsgMissingFields}
	}

	calories := f.Get("calories")
	height := f.Get("height")
	weight := f.Get("weight")
	timing := f.Get("meal_timing")

	for _, key := range []string{"calories", "goal", "age", "gender", "height", "weight"} {
		if !truthy(f.Get(key)) {
			return nil, &ValidationError{Message: MsgMissingFields}
		}
	}
	if !timing.IsArray() || len(timing.Array()) == 0 {
		return nil, &ValidationError{Message: MsgMissingFields}
	}

	if calories.Type != gjson.Number || calories.Num < MinCalories {
		return nil, &ValidationError{Message: MsgCaloriesLow}
	}
	if height.Type != gjson.Number || height.Num < MinHeightCm {
		return nil, &ValidationError{Message: MsgHeightLow}
	}
	if weight.Type != gjson.Number || weight.Num < MinWeightKg {
		return nil, &ValidationError{Message: MsgWeightLow}
	}

	req := &Request{
		Calories:   calories.Num,
		Goal:       f.Get("goal").String(),
		Age:        f.Get("age").String(),
		Gender:     f.Get("gender").String(),
		Allergies:  stringList(f.Get("allergies")),
		MealTiming: stringList(timing),
		Height:     height.Num,
		Weight:     weight.Num,
	}
	if c := f.Get("cuisine"); truthy(c) {
		req.Cuisine = c.String()
	}
	if d := f.Get("diet_type"); truthy(d) {
		req.DietType = d.String()
	}
	return req, nil
}

var dietSentences = map[string]string{
	"veg":       "The meal plan should be strictly vegetarian (no meat, fish, or eggs).",
	"non-veg":   "The meal plan can include both vegetarian and non-vegetarian dishes.",
	"vegan":     "The meal plan should be strictly vegan (no animal products, dairy, eggs, or meat).",
	"eggs_only": "The meal plan should be vegetarian but can include eggs (no meat or fish).",
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildPrompt renders the completion prompt for req
func BuildPrompt(req *Request) string {
	allergies := "none"
	if len(req.Allergies) > 0 {
		allergies = strings.Join(req.Allergies, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a structured JSON meal plan for a %s-year-old %s with a height of %s cm and weight of %s kg, aiming for %s with a daily intake of %s calories.\n",
		req.Age, req.Gender, formatNumber(req.Height), formatNumber(req.Weight), req.Goal, formatNumber(req.Calories))
	fmt.Fprintf(&b, "- Cuisine preference: %s.\n", orDefault(req.Cuisine, "any"))
	fmt.Fprintf(&b, "- Diet type: %s.\n", orDefault(req.DietType, "any"))
	if s, ok := dietSentences[req.DietType]; ok {
		b.WriteString(s + "\n")
	}
	fmt.Fprintf(&b, "- Allergies: %s.\n", allergies)
	fmt.Fprintf(&b, "- Meals: %s.\n", strings.Join(req.MealTiming, ", "))
	b.WriteString(`
Each meal should include:
- Name
- Meal timing
- Calories
- Macronutrient breakdown (Protein, Carbs, Fats, Fiber)
- Ingredients
- Cooking instructions

Return the response in JSON format. Also include the total (overall) protein, carbs, fats, and fiber for the entire day as "overall_macros" at the top level of the meal plan.
`)
	return b.String()
}
