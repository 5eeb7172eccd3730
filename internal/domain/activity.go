package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Activity is a user-named node in the hierarchical activity tree.
// ParentID is an id reference, never an owning pointer; nil means root.
type Activity struct {
	ID       string
	Name     string
	ParentID *string
	Position int
	Habit    *HabitConfig
}

// IsHabit reports whether the activity has a habit configuration.
func (a Activity) IsHabit() bool {
	return a.Habit != nil
}

// HabitKind identifies how a habit's daily value is logged and scored.
type HabitKind string

const (
	HabitBinary     HabitKind = "binary"
	HabitPercentage HabitKind = "percentage"
	HabitNumeric    HabitKind = "numeric"
)

// HabitConfig marks an activity as a habit. At most one config per activity;
// a nil config on the Activity means "not a habit".
type HabitConfig struct {
	Kind HabitKind
	// Unit labels numeric values ("pages", "min"); empty for other kinds.
	Unit string
	// Goal is the optional daily target for numeric habits; must be > 0 when set.
	Goal *float64
	// ConfiguredOn is the first local day the habit existed. Streak evaluation
	// ignores the habit on days before it.
	ConfiguredOn Day
	// Position orders the habit among all habits in tracker views.
	Position int
}

// Validate checks the internal consistency of a habit configuration.
func (c HabitConfig) Validate() error {
	switch c.Kind {
	case HabitBinary, HabitPercentage:
		if c.Unit != "" || c.Goal != nil {
			return fmt.Errorf("unit and goal are only valid for numeric habits")
		}
	case HabitNumeric:
		if c.Goal != nil && *c.Goal <= 0 {
			return fmt.Errorf("habit goal must be positive, got %g", *c.Goal)
		}
	default:
		return fmt.Errorf("unknown habit kind %q", c.Kind)
	}
	return nil
}

// ValidateActivityName rejects names that cannot be stored.
func ValidateActivityName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("activity name required")
	}
	return nil
}
