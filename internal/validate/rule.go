// Package validate implements numeric field validation for form inputs. A
// Rule captures the constraints of one field; Check classifies a raw string
// against them and reports failures as RuleError values the UI renders
// inline next to the field.
package validate

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
)

// Kind classifies a validation failure
type Kind int

const (
	// InvalidFormat means the input is not a finite number, or is
	// fractional where an integer is required
	InvalidFormat Kind = iota

	// BelowMinimum means the value is below the allowed range
	BelowMinimum

	// AboveMaximum means the value is above the allowed range
	AboveMaximum

	// ExcludedValue means the value hit a single disallowed value
	// inside the allowed range
	ExcludedValue
)

// RuleError describes one field validation failure
type RuleError struct {
	Kind    Kind
	Message string
}

// Error returns the user-facing message
func (e *RuleError) Error() string {
	return e.Message
}

// Rule holds the numeric constraints of a single form field. Nil bounds mean
// the constraint is absent. An empty input always passes; required-ness is
// layered separately with Required.
type Rule struct {
	Min         *float64
	Max         *float64
	Excluded    *float64
	IntegerOnly bool
}

// Range returns a rule accepting real values in [min, max]
func Range(min, max float64) Rule {
	return Rule{Min: &min, Max: &max}
}

// IntRange returns a rule accepting integer values in [min, max]
func IntRange(min, max int) Rule {
	lo, hi := float64(min), float64(max)
	return Rule{Min: &lo, Max: &hi, IntegerOnly: true}
}

// Exclude returns a copy of the rule that additionally rejects one value
func (r Rule) Exclude(value float64) Rule {
	r.Excluded = &value
	return r
}

// Check validates a raw input string against the rule. Empty or
// whitespace-only input is valid; the field is optional at this level.
func (r Rule) Check(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return &RuleError{Kind: InvalidFormat, Message: "must be a number"}
	}

	if r.IntegerOnly && value != math.Trunc(value) {
		return &RuleError{Kind: InvalidFormat, Message: "must be an integer"}
	}

	if r.Min != nil && value < *r.Min {
		return &RuleError{Kind: BelowMinimum, Message: "must be at least " + formatBound(*r.Min)}
	}

	if r.Max != nil && value > *r.Max {
		return &RuleError{Kind: AboveMaximum, Message: "must be at most " + formatBound(*r.Max)}
	}

	if r.Excluded != nil && value == *r.Excluded {
		return &RuleError{Kind: ExcludedValue, Message: "value " + formatBound(*r.Excluded) + " is not allowed"}
	}

	return nil
}

// Validator adapts the rule to the validator contract Fyne entries expect
func (r Rule) Validator() fyne.StringValidator {
	return r.Check
}

// Required wraps a validator so that empty input fails with the given
// message instead of passing
func Required(message string, next fyne.StringValidator) fyne.StringValidator {
	return func(raw string) error {
		if strings.TrimSpace(raw) == "" {
			return errors.New(message)
		}
		if next == nil {
			return nil
		}
		return next(raw)
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
