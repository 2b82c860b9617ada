// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package account

import (
	"strings"
	"unicode/utf8"
)

// A small local list for instant rejection. Breach-corpus checks belong to the auth service.
var commonPasswords = map[string]struct{}{
	"123456": {}, "password": {}, "123456789": {}, "qwerty": {}, "12345678": {},
	"111111": {}, "password123": {}, "12345": {}, "1234567": {}, "letmein": {},
	"abc123": {}, "monkey": {}, "master": {}, "dragon": {}, "sunshine": {},
	"iloveyou": {}, "trustno1": {}, "princess": {}, "adobe123": {}, "admin": {},
	"hello": {}, "welcome": {}, "login": {}, "starwars": {}, "passw0rd": {},
}

const (
	colorNone   = "#ddd"
	colorRed    = "#e74c3c"
	colorOrange = "#f39c12"
	colorYellow = "#f1c40f"
	colorGreen  = "#2ecc71"
	colorDark   = "#27ae60"

	maxScore = 6
)

var strengthLabels = []Strength{
	{Label: "Very weak", Color: colorRed},
	{Label: "Weak", Color: colorOrange},
	{Label: "Okay", Color: colorYellow},
	{Label: "Strong", Color: colorGreen},
	{Label: "Very strong", Color: colorDark},
}

type Strength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Report is the feedback shown next to a password field
type Report struct {
	IsValid   bool     `json:"is_valid"`
	Strength  Strength `json:"strength"`
	Hint      string   `json:"hint"`
	HintColor string   `json:"hint_color"`
}

// IsCommonPassword reports whether the trimmed password is on the common list
func IsCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.TrimSpace(password)]
	return ok
}

func charClasses(password string) int {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}

	n := 0
	for _, b := range []bool{lower, upper, digit, symbol} {
		if b {
			n++
		}
	}
	return n
}

// EstimateStrength scores length and character variety on a 0-6 scale
func EstimateStrength(password string) Strength {
	if password == "" {
		return Strength{Color: colorNone}
	}

	n := utf8.RuneCountInString(password)
	score := 0
	if n >= 12 {
		score += 2
	}
	if n >= 16 {
		score++
	}
	score += min(charClasses(password), 3)
	if n >= 24 {
		score++
	}

	last := len(strengthLabels) - 1
	idx := min(score*last/maxScore, last)

	s := strengthLabels[idx]
	s.Score = score
	return s
}

// ValidatePassword builds the strength report for the trimmed password
func ValidatePassword(password string) Report {
	trimmed := strings.TrimSpace(password)

	if IsCommonPassword(trimmed) {
		return Report{
			Strength:  Strength{Color: colorNone},
			Hint:      ErrPasswordCommon.Error(),
			HintColor: colorRed,
		}
	}

	n := utf8.RuneCountInString(trimmed)
	report := Report{
		IsValid:  n >= MinPasswordLength,
		Strength: EstimateStrength(trimmed),
	}

	switch {
	case n > 0 && n < MinPasswordLength:
		report.Hint = ErrPasswordShort.Error()
		report.HintColor = colorOrange
	case n >= MinPasswordLength && charClasses(trimmed) < 2:
		report.Hint = "Try adding numbers, uppercase letters, or symbols (or use a long passphrase)."
		report.HintColor = colorYellow
	default:
		report.Hint = "Good! Long passphrases are recommended. Consider using a password manager."
		report.HintColor = colorGreen
	}
	return report
}
