// Package validation provides common validation utilities.
package validation

import "fmt"

// PositiveAmount rejects zero or negative values for the named field.
func PositiveAmount(field string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive, got %v", field, value)
	}
	return nil
}

// NonNegativeAmount rejects negative values for the named field.
func NonNegativeAmount(field string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must not be negative, got %v", field, value)
	}
	return nil
}

// PercentRange rejects values outside [0, 100] for the named field.
func PercentRange(field string, value float64) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%s must be between 0 and 100 percent, got %v", field, value)
	}
	return nil
}
