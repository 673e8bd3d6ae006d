package models

import "fmt"

// Shift is the time window a report covers.
type Shift string

const (
	ShiftDay   Shift = "day"
	ShiftNight Shift = "night"
)

// Range returns the human-readable time range of the shift.
func (s Shift) Range() string {
	if s == ShiftNight {
		return "20:00 - 08:00"
	}
	return "08:00 - 20:00"
}

// ParseShift converts a string to a Shift.
func ParseShift(s string) (Shift, error) {
	switch Shift(s) {
	case ShiftDay, ShiftNight:
		return Shift(s), nil
	}
	return "", fmt.Errorf("unknown shift %q (want day or night)", s)
}

// DateMode selects whether the report refers to today or tomorrow.
type DateMode string

const (
	DateToday    DateMode = "today"
	DateTomorrow DateMode = "tomorrow"
)

// ParseDateMode converts a string to a DateMode.
func ParseDateMode(s string) (DateMode, error) {
	switch DateMode(s) {
	case DateToday, DateTomorrow:
		return DateMode(s), nil
	}
	return "", fmt.Errorf("unknown date mode %q (want today or tomorrow)", s)
}
