// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package credentials

import (
	"errors"
	"strings"
	"unicode"
)

// Password policy failures, surfaced in this fixed order:
// length, uppercase, lowercase, digit, symbol.
var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordNoUpper  = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLower  = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoDigit  = errors.New("password must contain at least one number")
	ErrPasswordNoSymbol = errors.New("password must contain at least one special character (e.g., !@#$%^&*)")
)

const minPasswordLength = 8

// passwordSymbols is the accepted punctuation set.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// ValidatePassword checks the registration password policy and returns the
// first rule that failed, in the fixed order length, uppercase, lowercase,
// digit, symbol. Returns nil when the password satisfies all rules.
func ValidatePassword(password string) error {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if !hasUpper {
		return ErrPasswordNoUpper
	}
	if !hasLower {
		return ErrPasswordNoLower
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	if !hasSymbol {
		return ErrPasswordNoSymbol
	}
	return nil
}
