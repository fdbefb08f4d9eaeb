// Package validation collects field violations for request payloads.
package validation

import (
	"net/mail"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func Email(field, value string, v Violations) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v[field] = "invalid_email"
	}
}

func MinLen(field, value string, n int, v Violations) {
	if len(value) < n {
		v[field] = "too_short"
	}
}

func OneOf(field, value string, allowed []string, v Violations) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

// SalaryRange flags an inverted min/max pair. Zero values are allowed so a
// posting may omit the range entirely.
func SalaryRange(field string, minVal, maxVal float64, v Violations) {
	if minVal < 0 || maxVal < 0 {
		v[field] = "must_not_be_negative"
		return
	}
	if maxVal != 0 && minVal > maxVal {
		v[field] = "min_exceeds_max"
	}
}
