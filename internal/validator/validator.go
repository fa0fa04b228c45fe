// Package validator provides a custom Validator type for accumulating
// field-level validation errors, plus the format checks every catalog
// field must pass before it reaches the store.
package validator

import "regexp"

// ISSNRX matches the catalog identifier format DDDD-DDDX.
var ISSNRX = regexp.MustCompile(`^[0-9]{4}-[0-9]{3}[0-9Xx]$`)

// daysInMonth is the Gregorian table for a non-leap year, January first.
var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(validator.IsValidISSN(issn), "issn", "must have the format DDDD-DDDX")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

// Matches returns true if value matches the provided compiled regexp.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// IsValidText reports whether every byte of s is printable ASCII (32-126).
// The empty string is valid.
func IsValidText(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 32 || s[i] > 126 {
			return false
		}
	}
	return true
}

// IsValidISSN reports whether s has the format DDDD-DDDX, where the last
// character may be a digit or X in either case. No checksum is computed.
func IsValidISSN(s string) bool {
	return Matches(s, ISSNRX)
}

// IsValidDate reports whether s is a real calendar date written DD.MM.YYYY.
func IsValidDate(s string) bool {
	if len(s) != 10 || s[2] != '.' || s[5] != '.' {
		return false
	}

	day, ok := parseDigits(s[0:2])
	if !ok {
		return false
	}
	month, ok := parseDigits(s[3:5])
	if !ok {
		return false
	}
	year, ok := parseDigits(s[6:10])
	if !ok {
		return false
	}

	if month < 1 || month > 12 {
		return false
	}

	limit := daysInMonth[month-1]
	if month == 2 && IsLeapYear(year) {
		limit = 29
	}

	return day >= 1 && day <= limit
}

// IsLeapYear applies the Gregorian leap-year rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// parseDigits converts an all-digit string to an int. Signs, spaces and
// empty input are rejected.
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
