package duedate

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDue is returned for input Parse cannot interpret.
var ErrInvalidDue = errors.New("invalid due date")

var (
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateTime = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ t](\d{2}:\d{2})$`)
	reIn       = regexp.MustCompile(`^in (\d+) (minute|minutes|hour|hours|day|days|week|weeks|month|months)$`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parse interprets a due date typed by a user, relative to now. Day-level
// inputs resolve to the end of that day in now's location.
//
// Accepted forms:
//   - "" or "none" (no due date)
//   - today, tomorrow, next week
//   - in N minutes|hours|days|weeks|months
//   - next <weekday>
//   - +<duration>, e.g. +90m or +2h30m
//   - YYYY-MM-DD, YYYY-MM-DD HH:MM (local to now), RFC3339
func Parse(input string, now time.Time) (DueDate, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	loc := now.Location()

	switch s {
	case "", "none":
		return None, nil
	case "today", "tomorrow", "next week":
		opts := slices.Collect(DefaultOptions(now))
		i := map[string]int{"today": 0, "tomorrow": 1, "next week": 2}[s]
		return opts[i].Date, nil
	}

	if strings.HasPrefix(s, "+") {
		d, err := time.ParseDuration(s[1:])
		if err != nil || d < 0 {
			return None, fmt.Errorf("%w: %q", ErrInvalidDue, input)
		}
		return FromTime(now.Add(d)), nil
	}

	if m := reIn.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return None, fmt.Errorf("%w: %q", ErrInvalidDue, input)
		}
		switch strings.TrimSuffix(m[2], "s") {
		case "minute":
			return FromTime(now.Add(time.Duration(n) * time.Minute)), nil
		case "hour":
			return FromTime(now.Add(time.Duration(n) * time.Hour)), nil
		case "day":
			return FromTime(EndOfDay(now.AddDate(0, 0, n))), nil
		case "week":
			return FromTime(EndOfDay(now.AddDate(0, 0, 7*n))), nil
		case "month":
			return FromTime(EndOfDay(now.AddDate(0, n, 0))), nil
		}
	}

	if name, ok := strings.CutPrefix(s, "next "); ok {
		wd, ok := weekdays[name]
		if !ok {
			return None, fmt.Errorf("%w: unknown weekday %q", ErrInvalidDue, name)
		}
		days := int(wd - now.Weekday())
		if days <= 0 {
			days += 7
		}
		return FromTime(EndOfDay(now.AddDate(0, 0, days))), nil
	}

	if reDateOnly.MatchString(s) {
		t, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			return None, fmt.Errorf("%w: %q", ErrInvalidDue, input)
		}
		return FromTime(EndOfDay(t)), nil
	}

	if m := reDateTime.FindStringSubmatch(s); m != nil {
		t, err := time.ParseInLocation("2006-01-02 15:04", m[1]+" "+m[2], loc)
		if err != nil {
			return None, fmt.Errorf("%w: %q", ErrInvalidDue, input)
		}
		return FromTime(t), nil
	}

	if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(input)); err == nil {
		return FromTime(t), nil
	}

	return None, fmt.Errorf("%w: %q (expected today, tomorrow, next week, in N days, +2h, YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC3339)", ErrInvalidDue, input)
}

// ParseDuration parses a duration-mode value such as "2h", "90m" or "3d".
// A bare number of days may be written with a d suffix.
func ParseDuration(input string) (DueDate, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" || s == "none" {
		return None, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return None, fmt.Errorf("%w: %q", ErrInvalidDue, input)
		}
		return FromMillis((time.Duration(n) * 24 * time.Hour).Milliseconds()), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return None, fmt.Errorf("%w: %q", ErrInvalidDue, input)
	}
	return FromMillis(d.Milliseconds()), nil
}
