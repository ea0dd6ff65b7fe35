package types

import (
	"errors"
	"fmt"
	"time"
)

// timeLayout формат времени HH:MM
const timeLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате строки времени
	ErrInvalidTimeString = errors.New("types: invalid time string format")

	// ErrNegativeTime возвращается, когда результат арифметики выходит за пределы суток
	ErrNegativeTime = errors.New("types: time out of day range")
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It is the canonical time-of-day type used across storage, usecases and the API.
type TimeString string

// NewTimeString creates a TimeString from a time.Time (wall-clock part only)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String returns the "HH:MM" representation
func (t TimeString) String() string {
	return string(t)
}

// IsZero returns true if the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks that the value is a well-formed canonical "HH:MM" time
func (t TimeString) Validate() error {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	// time.Parse принимает неканоничное "8:00" - требуем ведущие нули,
	// иначе строковое сравнение и равенство меток слотов ломаются
	if parsed.Format(timeLayout) != string(t) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// MinutesFromMidnight converts the value to minutes since midnight (0..1439)
func (t TimeString) MinutesFromMidnight() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	parsed, _ := time.Parse(timeLayout, string(t))
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns a new TimeString shifted by the given number of minutes.
// Результат должен оставаться в пределах суток (00:00..23:59).
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.MinutesFromMidnight()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %q %+d min", ErrNegativeTime, string(t), minutes)
	}

	return FromMinutes(total), nil
}

// FromMinutes builds a TimeString from minutes since midnight
func FromMinutes(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}

// IsBefore returns true if t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter returns true if t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}
