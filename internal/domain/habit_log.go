package domain

import "fmt"

// HabitLog is a per-day recorded value for one habit activity. Absence of a
// log is distinct from a logged zero.
type HabitLog struct {
	ActivityID string
	Day        Day
	Value      float64
}

// LogKey identifies one habit log row.
type LogKey struct {
	ActivityID string
	Day        Day
}

// PercentageStep is the granularity of percentage habit values.
const PercentageStep = 25

// ValidateHabitValue rejects values that are not representable for the kind
// before they reach storage.
func ValidateHabitValue(kind HabitKind, value float64) error {
	switch kind {
	case HabitBinary:
		if value != 0 && value != 1 {
			return fmt.Errorf("binary habit value must be 0 or 1, got %g", value)
		}
	case HabitPercentage:
		if value < 0 || value > 100 || int(value)%PercentageStep != 0 || value != float64(int(value)) {
			return fmt.Errorf("percentage habit value must be one of 0,25,50,75,100, got %g", value)
		}
	case HabitNumeric:
		if value < 0 {
			return fmt.Errorf("numeric habit value must be non-negative, got %g", value)
		}
	default:
		return fmt.Errorf("unknown habit kind %q", kind)
	}
	return nil
}
