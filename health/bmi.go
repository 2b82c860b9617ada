// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package health

import "math"

type BMIResult struct {
	BMI             float64  `json:"bmi"`
	Category        string   `json:"category"`
	Status          string   `json:"status"`
	Recommendations []string `json:"recommendations"`
}

type bmiBand struct {
	below           float64
	category        string
	status          string
	recommendations []string
}

// bands are checked in order; the last one catches everything
var bands = []bmiBand{
	{18.5, "Underweight", "underweight", []string{
		"Consider consulting with a healthcare provider",
		"Focus on nutrient-dense foods",
		"Include strength training in your routine",
		"Consider healthy weight gain strategies",
	}},
	{25, "Normal Weight", "normal", []string{
		"Maintain your current healthy lifestyle",
		"Continue regular physical activity",
		"Keep a balanced diet",
		"Regular health check-ups",
	}},
	{30, "Overweight", "overweight", []string{
		"Focus on gradual weight loss",
		"Increase physical activity",
		"Consider portion control",
		"Consult with a nutritionist",
	}},
	{math.Inf(1), "Obese", "obese", []string{
		"Consult with healthcare professionals",
		"Create a structured weight loss plan",
		"Focus on sustainable lifestyle changes",
		"Consider professional nutritional guidance",
	}},
}

// BMI computes kg/m² and classifies it. The category is chosen from the
// unrounded value; the reported BMI is rounded to one decimal.
func BMI(body Body) (*BMIResult, error) {
	cm, kg, err := body.Metric()
	if err != nil {
		return nil, err
	}

	m := cm / 100
	bmi := kg / (m * m)

	band := bands[len(bands)-1]
	for _, b := range bands {
		if bmi < b.below {
			band = b
			break
		}
	}

	recs := make([]string, len(band.recommendations))
	copy(recs, band.recommendations)

	return &BMIResult{
		BMI:             math.Round(bmi*10) / 10,
		Category:        band.category,
		Status:          band.status,
		Recommendations: recs,
	}, nil
}
