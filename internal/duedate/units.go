package duedate

import "time"

// Unit is the granularity a relative timestamp is displayed in.
type Unit int

const (
	UnitNow Unit = iota // "just now"; carries no value
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitMonth
	UnitYear
)

func (u Unit) String() string {
	switch u {
	case UnitNow:
		return "now"
	case UnitSecond:
		return "second"
	case UnitMinute:
		return "minute"
	case UnitHour:
		return "hour"
	case UnitDay:
		return "day"
	case UnitMonth:
		return "month"
	case UnitYear:
		return "year"
	default:
		return "unknown"
	}
}

// Threshold picks Display when the distance, measured in whole Measure units,
// is at most Within.
type Threshold struct {
	Measure Unit
	Within  int64
	Display Unit
}

// UnitTable is an ordered list of thresholds, finest first, with an explicit
// unit used when none of them match.
type UnitTable struct {
	Steps    []Threshold
	Fallback Unit
}

// PastUnits is used for due dates that have already passed.
var PastUnits = UnitTable{
	Steps: []Threshold{
		{Measure: UnitSecond, Within: 45, Display: UnitNow},
		{Measure: UnitMinute, Within: 59, Display: UnitMinute},
		{Measure: UnitHour, Within: 12, Display: UnitHour},
		{Measure: UnitDay, Within: 30, Display: UnitDay},
		{Measure: UnitMonth, Within: 12, Display: UnitMonth},
	},
	Fallback: UnitYear,
}

// FutureUnits is used for due dates still ahead.
var FutureUnits = UnitTable{
	Steps: []Threshold{
		{Measure: UnitMinute, Within: 59, Display: UnitMinute},
		{Measure: UnitHour, Within: 12, Display: UnitHour},
		{Measure: UnitDay, Within: 30, Display: UnitDay},
		{Measure: UnitMonth, Within: 12, Display: UnitMonth},
	},
	Fallback: UnitYear,
}

// RelativeTime is a distance from now expressed in one unit.
type RelativeTime struct {
	Unit  Unit  `json:"unit"`
	Value int64 `json:"value"`
	Past  bool  `json:"past"`
}

// SelectUnit picks the table for date relative to now (past when date < now)
// and walks it. date must be set.
func SelectUnit(date DueDate, now time.Time) RelativeTime {
	due := time.UnixMilli(date.Millis()).In(now.Location())
	now = time.UnixMilli(now.UnixMilli()).In(now.Location())
	if date.Before(now) {
		rt := PastUnits.Select(due, now)
		rt.Past = true
		return rt
	}
	return FutureUnits.Select(now, due)
}

// Select measures the distance from a to b (a <= b) and returns the first
// matching step, or the fallback unit.
func (t UnitTable) Select(a, b time.Time) RelativeTime {
	for _, st := range t.Steps {
		if measure(st.Measure, a, b) > st.Within {
			continue
		}
		if st.Display == UnitNow {
			return RelativeTime{Unit: UnitNow}
		}
		return RelativeTime{Unit: st.Display, Value: measure(st.Display, a, b)}
	}
	return RelativeTime{Unit: t.Fallback, Value: measure(t.Fallback, a, b)}
}

// measure returns the rounded number of whole u between a and b.
func measure(u Unit, a, b time.Time) int64 {
	d := b.Sub(a)
	switch u {
	case UnitSecond:
		return roundDiv(d, time.Second)
	case UnitMinute:
		return roundDiv(d, time.Minute)
	case UnitHour:
		return roundDiv(d, time.Hour)
	case UnitDay:
		return roundDiv(d, 24*time.Hour)
	case UnitMonth:
		return monthsBetween(a, b)
	case UnitYear:
		m := monthsBetween(a, b)
		y := m / 12
		if m%12 >= 6 {
			y++
		}
		return y
	default:
		return 0
	}
}

func roundDiv(d, unit time.Duration) int64 {
	if d < 0 {
		d = -d
	}
	return int64((d + unit/2) / unit)
}

// monthsBetween counts calendar months from a to b, rounding a partial month
// of at least half its length up.
func monthsBetween(a, b time.Time) int64 {
	if b.Before(a) {
		a, b = b, a
	}
	m := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	for m > 0 && a.AddDate(0, m, 0).After(b) {
		m--
	}
	for !a.AddDate(0, m+1, 0).After(b) {
		m++
	}
	start := a.AddDate(0, m, 0)
	next := a.AddDate(0, m+1, 0)
	if 2*b.Sub(start) >= next.Sub(start) {
		m++
	}
	return int64(m)
}
