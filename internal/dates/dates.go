// Package dates converts between user-facing date text and the canonical
// year-first form stored in the database.
//
// Canonical dates are zero-padded YYYY-MM-DD strings, so comparing two of them
// as strings gives the same answer as comparing them chronologically.
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned for text that is not a valid calendar date in the
// expected layout.
var ErrInvalid = errors.New("invalid date")

const canonicalLayout = "%04d-%02d-%02d"

const (
	minYear = 1
	maxYear = 9999
)

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a local calendar date with no time or zone.
type Date struct {
	Month int
	Day   int
	Year  int
}

// Order is a permutation of month, day and year.
type Order string

const (
	MDY Order = "mdy"
	MYD Order = "myd"
	DMY Order = "dmy"
	DYM Order = "dym"
	YMD Order = "ymd"
	YDM Order = "ydm"
)

// Layout describes how dates are typed and shown to the user.
type Layout struct {
	Order     Order
	Delimiter string
}

// DefaultLayout is m/d/y.
var DefaultLayout = Layout{Order: MDY, Delimiter: "/"}

// ParseLayout builds a Layout from config values.
func ParseLayout(order, delimiter string) (Layout, error) {
	o := Order(strings.ToLower(strings.TrimSpace(order)))
	if _, ok := o.positions(); !ok {
		return Layout{}, fmt.Errorf("unknown date order %q", order)
	}
	if delimiter == "" {
		return Layout{}, errors.New("date delimiter is empty")
	}
	if strings.ContainsAny(delimiter, "0123456789") {
		return Layout{}, fmt.Errorf("date delimiter %q contains digits", delimiter)
	}
	return Layout{Order: o, Delimiter: delimiter}, nil
}

// positions returns the index of month, day and year within the order.
func (o Order) positions() ([3]int, bool) {
	if len(o) != 3 {
		return [3]int{}, false
	}
	pos := [3]int{-1, -1, -1}
	for i, c := range string(o) {
		var field int
		switch c {
		case 'm':
			field = 0
		case 'd':
			field = 1
		case 'y':
			field = 2
		default:
			return [3]int{}, false
		}
		if pos[field] != -1 {
			return [3]int{}, false
		}
		pos[field] = i
	}
	return pos, true
}

// Parse reads text holding exactly three integers separated by the layout's
// delimiter and validates the result as a calendar date.
func (l Layout) Parse(text string) (Date, error) {
	pos, ok := l.Order.positions()
	if !ok || l.Delimiter == "" {
		return Date{}, fmt.Errorf("bad layout %q: %w", l.Order, ErrInvalid)
	}
	parts := strings.Split(strings.TrimSpace(text), l.Delimiter)
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%q: %w", text, ErrInvalid)
	}
	var vals [3]int
	for i, p := range parts {
		n, ok := number(strings.TrimSpace(p))
		if !ok {
			return Date{}, fmt.Errorf("%q: %w", text, ErrInvalid)
		}
		vals[i] = n
	}
	d := Date{Month: vals[pos[0]], Day: vals[pos[1]], Year: vals[pos[2]]}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%q: %w", text, ErrInvalid)
	}
	return d, nil
}

// Format renders d in the layout without zero padding.
func (l Layout) Format(d Date) string {
	pos, ok := l.Order.positions()
	if !ok {
		pos, _ = MDY.positions()
	}
	var vals [3]int
	vals[pos[0]] = d.Month
	vals[pos[1]] = d.Day
	vals[pos[2]] = d.Year
	return fmt.Sprintf("%d%s%d%s%d", vals[0], l.Delimiter, vals[1], l.Delimiter, vals[2])
}

// Explain returns a short hint such as "m/d/y".
func (l Layout) Explain() string {
	o := string(l.Order)
	if len(o) != 3 {
		return ""
	}
	return o[0:1] + l.Delimiter + o[1:2] + l.Delimiter + o[2:3]
}

// Today is the current local date in the layout.
func (l Layout) Today() string {
	return l.Format(Today())
}

// CanonicalToUser converts a stored date to the layout.
func (l Layout) CanonicalToUser(canonical string) (string, error) {
	d, err := ParseCanonical(canonical)
	if err != nil {
		return "", err
	}
	return l.Format(d), nil
}

// ToCanonical parses user text and returns its canonical form.
func (l Layout) ToCanonical(text string) (string, error) {
	d, err := l.Parse(text)
	if err != nil {
		return "", err
	}
	return d.Canonical(), nil
}

// Canonical is the zero-padded year-month-day storage form.
func (d Date) Canonical() string {
	return fmt.Sprintf(canonicalLayout, d.Year, d.Month, d.Day)
}

// Valid reports whether d names a real calendar day in years 1 through 9999.
// Wider years would break the fixed-width canonical form.
func (d Date) Valid() bool {
	if d.Year < minYear || d.Year > maxYear {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	max := daysInMonth[d.Month]
	if d.Month == 2 && IsLeap(d.Year) {
		max++
	}
	return d.Day >= 1 && d.Day <= max
}

// number accepts unsigned decimal digits only.
func number(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// Time returns midnight of d in the local zone.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.Local)
}

// IsLeap uses the Gregorian rule.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ParseCanonical reads a YYYY-MM-DD string.
func ParseCanonical(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%q: %w", s, ErrInvalid)
	}
	var vals [3]int
	for i, p := range parts {
		n, ok := number(p)
		if !ok {
			return Date{}, fmt.Errorf("%q: %w", s, ErrInvalid)
		}
		vals[i] = n
	}
	d := Date{Year: vals[0], Month: vals[1], Day: vals[2]}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%q: %w", s, ErrInvalid)
	}
	return d, nil
}

// FromTime takes the calendar date of t in its own zone.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Month: int(m), Day: d, Year: y}
}

// Today is the current local calendar date.
func Today() Date {
	return FromTime(time.Now())
}
