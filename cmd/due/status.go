package main

import (
	"fmt"
	"time"

	"github.com/bborn/duedate/internal/duedate"
	"github.com/spf13/cobra"
)

// statusReport is the output of `due status`.
type statusReport struct {
	Due     string `json:"due"`
	Overdue bool   `json:"overdue"`
	DueSoon bool   `json:"due_soon"`
	Style   string `json:"style"`
	Label   string `json:"label"`
	Tooltip string `json:"tooltip,omitempty"`
}

func buildStatus(due duedate.DueDate, now time.Time) statusReport {
	st := duedate.Classify(due, now)
	return statusReport{
		Due:     due.String(),
		Overdue: st.Overdue,
		DueSoon: st.DueSoon,
		Style:   duedate.StyleFor(st).String(),
		Label:   duedate.ButtonLabel(due, now).Text,
		Tooltip: duedate.Tooltip(due, now.Location()),
	}
}

// presetRow is one line of `due presets`.
type presetRow struct {
	Label     string `json:"label"`
	Secondary string `json:"secondary,omitempty"`
	Value     string `json:"value"`
	Mode      string `json:"mode"`
	Selected  bool   `json:"selected,omitempty"`
}

func buildPresets(now time.Time, selected duedate.DueDate, mode duedate.Mode) []presetRow {
	var rows []presetRow
	for opt := range duedate.Options(now, selected, mode) {
		value := opt.Date.Time(now.Location()).Format(time.RFC3339)
		if opt.Mode == duedate.ModeDuration {
			value = (time.Duration(opt.Date.Millis()) * time.Millisecond).String()
		}
		rows = append(rows, presetRow{
			Label:     opt.Label,
			Secondary: opt.Secondary,
			Value:     value,
			Mode:      opt.Mode.String(),
			Selected:  opt.Selected,
		})
	}
	return rows
}

// parseNow resolves the --now flag. An empty value means the current time.
func parseNow(value string, current time.Time) (time.Time, error) {
	if value == "" {
		return current, nil
	}
	d, err := duedate.Parse(value, current)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: %w", err)
	}
	if !d.IsSet() {
		return current, nil
	}
	return d.Time(current.Location()), nil
}

// parseDue parses a due value in the given mode.
func parseDue(value string, mode duedate.Mode, now time.Time) (duedate.DueDate, error) {
	if mode == duedate.ModeDuration {
		return duedate.ParseDuration(value)
	}
	return duedate.Parse(value, now)
}

func newStatusCmd() *cobra.Command {
	var nowFlag string
	cmd := &cobra.Command{
		Use:   "status <when>",
		Short: "Classify a due date",
		Long: `Show whether a due date is overdue or due soon, with its button label.

Examples:
  due status tomorrow
  due status "2024-06-01 09:00" --now "2024-06-01T00:00:00Z"
  due status +2h --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			now, err := parseNow(nowFlag, s.now())
			if err != nil {
				return err
			}
			due, err := duedate.Parse(args[0], now)
			if err != nil {
				return err
			}

			report := buildStatus(due, now)
			if opts.json {
				return printJSON(report)
			}

			label := report.Label
			switch report.Style {
			case duedate.StyleOverdue.String():
				label = errorStyle.Bold(true).Render(label)
			case duedate.StyleDueSoon.String():
				label = warningStyle.Render(label)
			}
			fmt.Println(label)
			fmt.Println(dimStyle.Render(fmt.Sprintf("due: %s  style: %s", report.Due, report.Style)))
			return nil
		},
	}
	cmd.Flags().StringVar(&nowFlag, "now", "", "Evaluate relative to this time instead of the clock")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	var (
		selectedFlag string
		modeFlag     string
	)
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List quick due date presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := duedate.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			now := s.now()
			selected, err := parseDue(selectedFlag, mode, now)
			if err != nil {
				return err
			}

			rows := buildPresets(now, selected, mode)
			if opts.json {
				return printJSON(rows)
			}
			for _, r := range rows {
				line := fmt.Sprintf("%-28s %s", r.Label, dimStyle.Render(r.Secondary))
				if r.Selected {
					line = boldStyle.Render("* ") + line
				} else {
					line = "  " + line
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&selectedFlag, "selected", "", "Current value to append as the selected option")
	cmd.Flags().StringVar(&modeFlag, "mode", "datetime", "Value mode: datetime or duration")
	return cmd
}
