// Package recurrence turns a task's frequency into a date offset.
package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Unit is the stored freq_type of a task.
type Unit string

const (
	Days     Unit = "days"
	Weeks    Unit = "weeks"
	Months   Unit = "months"
	Years    Unit = "years"
	NoRepeat Unit = "no_repeat"
)

var (
	// ErrNoRepeat means the task has no next due date.
	ErrNoRepeat = errors.New("task does not repeat")
	// ErrInvalidFrequency is returned for non-positive counts.
	ErrInvalidFrequency = errors.New("frequency must be a positive integer")
	ErrUnknownUnit      = errors.New("unknown frequency unit")
)

// Units lists every unit in display order.
func Units() []Unit {
	return []Unit{Days, Weeks, Months, Years, NoRepeat}
}

// ParseUnit accepts the stored names plus "no repeat" and "no-repeat".
func ParseUnit(s string) (Unit, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer(" ", "_", "-", "_").Replace(v)
	switch Unit(v) {
	case Days, Weeks, Months, Years, NoRepeat:
		return Unit(v), nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownUnit)
}

// Offset is a signed count of days, months or years.
type Offset struct {
	Count int
	Unit  Unit
}

// OffsetFor computes the offset between consecutive due dates. Weeks are
// normalized to days. Callers must handle ErrNoRepeat by dropping the task
// from the schedule.
func OffsetFor(freq int, unit Unit) (Offset, error) {
	if unit == NoRepeat {
		return Offset{}, ErrNoRepeat
	}
	if freq <= 0 {
		return Offset{}, fmt.Errorf("%d: %w", freq, ErrInvalidFrequency)
	}
	switch unit {
	case Days, Months, Years:
		return Offset{Count: freq, Unit: unit}, nil
	case Weeks:
		return Offset{Count: 7 * freq, Unit: Days}, nil
	}
	return Offset{}, fmt.Errorf("%q: %w", unit, ErrUnknownUnit)
}

// Modifier renders the offset as an SQLite date modifier, e.g. "+14 days".
func (o Offset) Modifier() string {
	return fmt.Sprintf("%+d %s", o.Count, o.Unit)
}

// Negate flips the direction of the offset.
func (o Offset) Negate() Offset {
	return Offset{Count: -o.Count, Unit: o.Unit}
}

// Apply adds the offset to t. Month and year overflow normalize the same way
// SQLite's DATE() does (Jan 31 + 1 month is Mar 2 or 3).
func (o Offset) Apply(t time.Time) time.Time {
	switch o.Unit {
	case Days:
		return t.AddDate(0, 0, o.Count)
	case Weeks:
		return t.AddDate(0, 0, 7*o.Count)
	case Months:
		return t.AddDate(0, o.Count, 0)
	case Years:
		return t.AddDate(o.Count, 0, 0)
	}
	return t
}
