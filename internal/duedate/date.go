// Package duedate classifies checklist item due dates and builds the
// quick-pick options offered when setting one.
//
// Every function takes the evaluation instant as an argument. Nothing in this
// package reads the wall clock, so repeated evaluations with the same inputs
// produce the same results.
package duedate

import (
	"fmt"
	"strings"
	"time"
)

// DueDate is an optional instant in milliseconds since the Unix epoch.
// The zero value means no due date is set.
type DueDate struct {
	ms  int64
	set bool
}

// None is the absent due date.
var None = DueDate{}

// FromMillis returns a due date at ms milliseconds since the epoch.
func FromMillis(ms int64) DueDate {
	return DueDate{ms: ms, set: true}
}

// FromTime returns a due date at t. A zero t yields None.
func FromTime(t time.Time) DueDate {
	if t.IsZero() {
		return None
	}
	return FromMillis(t.UnixMilli())
}

// IsSet reports whether a due date is present.
func (d DueDate) IsSet() bool { return d.set }

// Millis returns the instant in milliseconds since the epoch, or 0 when absent.
func (d DueDate) Millis() int64 { return d.ms }

// Time returns the instant in loc. It returns the zero time when absent.
// A nil loc means local time.
func (d DueDate) Time(loc *time.Location) time.Time {
	if !d.set {
		return time.Time{}
	}
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(d.ms).In(loc)
}

// Before reports whether d is set and strictly earlier than t.
func (d DueDate) Before(t time.Time) bool {
	return d.set && d.ms < t.UnixMilli()
}

func (d DueDate) String() string {
	if !d.set {
		return "none"
	}
	return d.Time(time.UTC).Format(time.RFC3339Nano)
}

// Mode says how a selected value is interpreted: as a point in time or as a
// duration relative to some start.
type Mode int

const (
	ModeDateTime Mode = iota
	ModeDuration
)

func (m Mode) String() string {
	switch m {
	case ModeDuration:
		return "duration"
	default:
		return "datetime"
	}
}

// ParseMode parses "datetime" or "duration". Empty input means datetime.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "datetime", "date", "absolute":
		return ModeDateTime, nil
	case "duration", "relative":
		return ModeDuration, nil
	default:
		return ModeDateTime, fmt.Errorf("unknown mode %q (expected datetime or duration)", s)
	}
}
