// Package calc holds the pieces shared by every calculator package: the
// invalid-input error and a few numeric helpers.
package calc

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every InputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InputError reports a rejected input field. Calculations abort on the first one.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return "Invalid Input: " + e.Message
	}
	return fmt.Sprintf("Invalid Input: %s %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrInvalidInput) true for any InputError.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid builds an InputError for field.
func Invalid(field, format string, args ...interface{}) error {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsInvalidInput reports whether err is (or wraps) an InputError.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// FieldOf returns the offending field name of an InputError, or "".
func FieldOf(err error) string {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Field
	}
	return ""
}

// Finite rejects NaN and infinities.
func Finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid(field, "must be a finite number")
	}
	return nil
}

// Positive requires v > 0.
func Positive(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return Invalid(field, "must be greater than 0")
	}
	return nil
}

// NonNegative requires v >= 0.
func NonNegative(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return Invalid(field, "must not be negative")
	}
	return nil
}

// InRange requires lo <= v <= hi.
func InRange(field string, v, lo, hi float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return Invalid(field, "must be between %g and %g", lo, hi)
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
