package shared

import "fmt"

// Guard helpers - reusable precondition checks invoked by every factory and
// mutator. Each returns a validation error (wrapping ErrInvalidInput) and
// never mutates anything, so callers can check all inputs before committing.

// GuardNotEmpty fails when a required string is empty.
func GuardNotEmpty(entity, field, value string) error {
	if value == "" {
		return NewValidationError(entity, field, field+" is required")
	}
	return nil
}

// GuardPositiveInt fails when value <= 0.
func GuardPositiveInt(entity, field string, value int) error {
	if value <= 0 {
		return NewValidationError(entity, field, field+" must be positive")
	}
	return nil
}

// GuardNonNegativeInt fails when value < 0.
func GuardNonNegativeInt(entity, field string, value int) error {
	if value < 0 {
		return NewValidationError(entity, field, field+" must not be negative")
	}
	return nil
}

// GuardRange fails when value is outside [min, max].
func GuardRange(entity, field string, value, min, max int) error {
	if value < min || value > max {
		return NewValidationError(entity, field,
			fmt.Sprintf("%s must be between %d and %d", field, min, max))
	}
	return nil
}

// GuardMaxLength fails when a string exceeds max characters.
func GuardMaxLength(entity, field, value string, max int) error {
	if len(value) > max {
		return NewValidationError(entity, field,
			fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return nil
}

// GuardPositiveMoney fails when the amount is zero or negative.
func GuardPositiveMoney(entity, field string, m Money) error {
	if !m.IsPositive() {
		return NewValidationError(entity, field, field+" must be positive")
	}
	return nil
}

// GuardNonNegativeMoney fails when the amount is negative.
func GuardNonNegativeMoney(entity, field string, m Money) error {
	if m.IsNegative() {
		return NewValidationError(entity, field, field+" must not be negative")
	}
	return nil
}
