// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mealplan turns a user profile into an LLM-generated meal plan.

# Requests

ParseRequest validates the raw JSON body with gjson so that type checks
match what the browser sends (a string "2000" is not a calorie count):

	req, err := mealplan.ParseRequest(body)
	var verr *mealplan.ValidationError
	if errors.As(err, &verr) {
		// 400 with verr.Message
	}

# Generation

A Planner posts the prompt to an OpenAI-compatible /chat/completions
endpoint (OpenRouter by default), trying each model in order:

	p := mealplan.New(mealplan.Config{
		BaseURL: cfg.OpenRouterURL,
		APIKey:  cfg.OpenRouterAPIKey,
		SiteURL: cfg.SiteURL,
		Models:  cfg.MealPlanModels,
	})
	plan, err := p.Generate(ctx, req)

Rate limits (HTTP 429 or error.code 429), empty answers and unparseable
answers move on to the next model. Any other upstream error stops the loop
and comes back as *ProviderError. When all models fail the error is
*ExhaustedError carrying the last failure.

The plan is the model's JSON with any markdown fence removed. When it has a
meals array with numeric macronutrients, overall_macros is recomputed from
the meals.
*/
package mealplan
