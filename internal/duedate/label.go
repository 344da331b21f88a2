package duedate

import "time"

const (
	addDueDatePrompt = "Add due date"
	noDueDateLabel   = "No due date"
	lockedTooltip    = "Due date (Available in the Professional plan)"
)

// Label is the text on a due date button.
type Label struct {
	Text string `json:"text"`
	// Relative is nil when no due date is set.
	Relative *RelativeTime `json:"relative,omitempty"`
}

// ButtonLabel returns "Add due date" when date is absent and
// "Due <relative>" otherwise.
func ButtonLabel(date DueDate, now time.Time) Label {
	return English.ButtonLabel(date, now)
}

// ButtonLabel is ButtonLabel using f's language.
func (f *Formatter) ButtonLabel(date DueDate, now time.Time) Label {
	if !date.IsSet() {
		return Label{Text: f.Sprintf(addDueDatePrompt)}
	}
	rt := SelectUnit(date, now)
	return Label{
		Text:     f.Sprintf("Due %s", f.Relative(rt)),
		Relative: &rt,
	}
}

// Tooltip returns "Due on Jan 02" for a set date, or "" when absent.
func Tooltip(date DueDate, loc *time.Location) string {
	return English.Tooltip(date, loc)
}

// Tooltip is Tooltip using f's language.
func (f *Formatter) Tooltip(date DueDate, loc *time.Location) string {
	if !date.IsSet() {
		return ""
	}
	return f.Sprintf("Due on %s", date.Time(loc).Format("Jan 02"))
}
