package duedate

import "time"

// DueSoonWindow is how far ahead of its due instant an item counts as due soon.
const DueSoonWindow = 12 * time.Hour

// Status is the classification of a due date at one instant.
// Overdue and DueSoon are never both true.
type Status struct {
	Overdue bool `json:"overdue"`
	DueSoon bool `json:"due_soon"`
}

// IsOverdue reports whether date is set and strictly before now.
func IsOverdue(date DueDate, now time.Time) bool {
	return date.Before(now)
}

// IsDueSoon reports whether date is set and falls in (now, now+12h].
func IsDueSoon(date DueDate, now time.Time) bool {
	if !date.IsSet() {
		return false
	}
	diff := time.Duration(date.Millis()-now.UnixMilli()) * time.Millisecond
	return diff > 0 && diff <= DueSoonWindow
}

// Classify evaluates both predicates for date at now.
func Classify(date DueDate, now time.Time) Status {
	return Status{
		Overdue: IsOverdue(date, now),
		DueSoon: IsDueSoon(date, now),
	}
}

// Style selects how a due date indicator is drawn.
type Style int

const (
	StyleNormal Style = iota
	StyleDueSoon
	StyleOverdue
)

// StyleFor maps a status to its style.
func StyleFor(s Status) Style {
	switch {
	case s.Overdue:
		return StyleOverdue
	case s.DueSoon:
		return StyleDueSoon
	default:
		return StyleNormal
	}
}

// Alert reports whether the indicator uses alert colors.
func (s Style) Alert() bool { return s == StyleOverdue || s == StyleDueSoon }

// Emphasized reports whether the label is drawn bold.
func (s Style) Emphasized() bool { return s == StyleOverdue }

func (s Style) String() string {
	switch s {
	case StyleOverdue:
		return "overdue"
	case StyleDueSoon:
		return "due_soon"
	default:
		return "normal"
	}
}
