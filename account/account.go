// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package account holds the email and password rules applied before any
// request reaches the auth service.
package account

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the minimum accepted length after trimming
const MinPasswordLength = 12

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrEmailRequired   = errors.New("Email is required.")
	ErrInvalidEmail    = errors.New("Please enter a valid email address.")
	ErrPasswordCommon  = errors.New("This password is too common. Choose a different one.")
	ErrPasswordShort   = errors.New("Password should be at least 12 characters.")
	ErrPasswordMissing = errors.New("Password is required.")
)

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail normalizes the address and checks its shape
func ValidateEmail(email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// CheckPassword returns the first rule the password breaks, or nil
func CheckPassword(password string) error {
	trimmed := strings.TrimSpace(password)
	switch {
	case trimmed == "":
		return ErrPasswordMissing
	case IsCommonPassword(trimmed):
		return ErrPasswordCommon
	case utf8.RuneCountInString(trimmed) < MinPasswordLength:
		return ErrPasswordShort
	}
	return nil
}

// IsPasswordValid reports whether the password is long enough and not common
func IsPasswordValid(password string) bool {
	return CheckPassword(password) == nil
}
