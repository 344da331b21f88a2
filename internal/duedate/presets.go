package duedate

import (
	"iter"
	"time"
)

// PresetOption is a suggested due date offered for quick selection.
type PresetOption struct {
	Date      DueDate `json:"date"`
	Label     string  `json:"label"`
	Secondary string  `json:"secondary,omitempty"`
	Mode      Mode    `json:"mode"`
	// Selected marks the option that mirrors the current value.
	Selected bool `json:"selected,omitempty"`
}

// EndOfDay returns 23:59:59.999 on t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DefaultOptions yields Today, Tomorrow and Next week, in that order.
// Next week is six calendar days after Tomorrow, not seven after now.
func DefaultOptions(now time.Time) iter.Seq[PresetOption] {
	return English.DefaultOptions(now)
}

// DefaultOptions is DefaultOptions using f's language.
func (f *Formatter) DefaultOptions(now time.Time) iter.Seq[PresetOption] {
	return func(yield func(PresetOption) bool) {
		day := EndOfDay(now)
		if !yield(PresetOption{
			Date:      FromTime(day),
			Label:     f.Sprintf("Today"),
			Secondary: day.Format("Mon"),
			Mode:      ModeDateTime,
		}) {
			return
		}

		day = day.AddDate(0, 0, 1)
		if !yield(PresetOption{
			Date:      FromTime(day),
			Label:     f.Sprintf("Tomorrow"),
			Secondary: day.Format("Mon"),
			Mode:      ModeDateTime,
		}) {
			return
		}

		day = day.AddDate(0, 0, 6)
		yield(PresetOption{
			Date:      FromTime(day),
			Label:     f.Sprintf("Next week"),
			Secondary: day.Format("Mon, Jan 02"),
			Mode:      ModeDateTime,
		})
	}
}

// Options yields the default presets followed, when selected is set, by an
// option for the selected value itself.
func Options(now time.Time, selected DueDate, mode Mode) iter.Seq[PresetOption] {
	return English.Options(now, selected, mode)
}

// Options is Options using f's language.
func (f *Formatter) Options(now time.Time, selected DueDate, mode Mode) iter.Seq[PresetOption] {
	return func(yield func(PresetOption) bool) {
		for opt := range f.DefaultOptions(now) {
			if !yield(opt) {
				return
			}
		}
		if !selected.IsSet() {
			return
		}
		opt := f.OptionFromMillis(selected.Millis(), mode, now.Location())
		opt.Selected = true
		yield(opt)
	}
}

// OptionFromMillis builds an option for a raw value. In ModeDateTime ms is an
// instant; in ModeDuration it is a length of time.
func OptionFromMillis(ms int64, mode Mode, loc *time.Location) PresetOption {
	return English.OptionFromMillis(ms, mode, loc)
}

// OptionFromMillis is OptionFromMillis using f's language.
func (f *Formatter) OptionFromMillis(ms int64, mode Mode, loc *time.Location) PresetOption {
	opt := PresetOption{Date: FromMillis(ms), Mode: mode}
	if mode == ModeDuration {
		opt.Label = f.Duration(time.Duration(ms) * time.Millisecond)
		return opt
	}
	opt.Label = opt.Date.Time(loc).Format("Mon, Jan 02 2006, 3:04 PM")
	return opt
}
