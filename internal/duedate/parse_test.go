package duedate

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) // Monday
	at := func(y int, m time.Month, d, h, min int) DueDate {
		return FromTime(time.Date(y, m, d, h, min, 0, 0, time.UTC))
	}

	cases := []struct {
		in   string
		want DueDate
	}{
		{"", None},
		{"none", None},
		{"today", eod(2024, 1, 1, time.UTC)},
		{"Tomorrow", eod(2024, 1, 2, time.UTC)},
		{"next week", eod(2024, 1, 8, time.UTC)},
		{"in 3 days", eod(2024, 1, 4, time.UTC)},
		{"in 1 week", eod(2024, 1, 8, time.UTC)},
		{"in 1 month", eod(2024, 2, 1, time.UTC)},
		{"in 2 hours", at(2024, 1, 1, 12, 0)},
		{"in 15 minutes", at(2024, 1, 1, 10, 15)},
		{"next friday", eod(2024, 1, 5, time.UTC)},
		{"next monday", eod(2024, 1, 8, time.UTC)},
		{"+90m", at(2024, 1, 1, 11, 30)},
		{"2024-02-14", eod(2024, 2, 14, time.UTC)},
		{"2024-02-14 09:30", at(2024, 2, 14, 9, 30)},
		{"2024-02-14T09:30", at(2024, 2, 14, 9, 30)},
		{"2024-02-14T09:30:00Z", at(2024, 2, 14, 9, 30)},
		{"2024-02-14T09:30:00+02:00", at(2024, 2, 14, 7, 30)},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in, now)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for _, in := range []string{"garbage", "next funday", "+-5m", "+soon", "2024-13-40", "in many days"} {
		_, err := Parse(in, now)
		if err == nil {
			t.Fatalf("Parse(%q): expected error", in)
		}
		if !errors.Is(err, ErrInvalidDue) {
			t.Fatalf("Parse(%q): expected ErrInvalidDue, got %v", in, err)
		}
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in      string
		want    DueDate
		wantErr bool
	}{
		{"none", None, false},
		{"2h", FromMillis(2 * 60 * 60 * 1000), false},
		{"90m", FromMillis(90 * 60 * 1000), false},
		{"3d", FromMillis(3 * 24 * 60 * 60 * 1000), false},
		{"-1h", None, true},
		{"xd", None, true},
		{"bogus", None, true},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if tc.wantErr != (err != nil) {
			t.Fatalf("ParseDuration(%q): unexpected error state: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDuration(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
