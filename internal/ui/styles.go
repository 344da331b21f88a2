package ui

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bborn/duedate/internal/duedate"
	"github.com/charmbracelet/lipgloss"
)

// unicodeSupported caches whether the terminal supports Unicode.
// Initialized once on first call to SupportsUnicode().
var (
	unicodeSupported     bool
	unicodeSupportedOnce sync.Once
)

// SupportsUnicode returns true if the terminal likely supports Unicode characters.
// It checks LANG, LC_ALL, and LC_CTYPE environment variables for UTF-8 indicators.
func SupportsUnicode() bool {
	unicodeSupportedOnce.Do(func() {
		for _, envVar := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
			val := strings.ToLower(os.Getenv(envVar))
			if strings.Contains(val, "utf-8") || strings.Contains(val, "utf8") {
				unicodeSupported = true
				return
			}
		}
	})
	return unicodeSupported
}

// Icon constants - Unicode and ASCII versions
const (
	IconCalendarUnicode = "📅"
	IconAlarmUnicode    = "⏰"
	IconWarningUnicode  = "⚠"
	IconChevronUnicode  = "▾"
	IconLockUnicode     = "🔒"
	IconCursorUnicode   = "›"
	IconCheckUnicode    = "✓"

	IconCalendarASCII = "@"
	IconAlarmASCII    = "~"
	IconWarningASCII  = "!"
	IconChevronASCII  = "v"
	IconLockASCII     = "#"
	IconCursorASCII   = ">"
	IconCheckASCII    = "*"
)

// Icon returns the appropriate icon based on terminal Unicode support.
func Icon(unicodeIcon, asciiIcon string) string {
	if SupportsUnicode() {
		return unicodeIcon
	}
	return asciiIcon
}

// IconFor returns the icon shown on a button in the given style.
func IconFor(style duedate.Style) string {
	switch style {
	case duedate.StyleOverdue:
		return Icon(IconWarningUnicode, IconWarningASCII)
	case duedate.StyleDueSoon:
		return Icon(IconAlarmUnicode, IconAlarmASCII)
	default:
		return Icon(IconCalendarUnicode, IconCalendarASCII)
	}
}

// IconChevron returns the dropdown chevron.
func IconChevron() string { return Icon(IconChevronUnicode, IconChevronASCII) }

// IconLock returns the lock shown on unlicensed controls.
func IconLock() string { return Icon(IconLockUnicode, IconLockASCII) }

// IconCursor returns the picker cursor.
func IconCursor() string { return Icon(IconCursorUnicode, IconCursorASCII) }

// IconCheck marks the selected preset.
func IconCheck() string { return Icon(IconCheckUnicode, IconCheckASCII) }

// Colors - these are updated by refreshStyles() when theme changes
var (
	ColorPrimary   = lipgloss.Color(DefaultTheme.Primary)
	ColorSecondary = lipgloss.Color(DefaultTheme.Secondary)
	ColorMuted     = lipgloss.Color(DefaultTheme.Muted)
	ColorDueSoon   = lipgloss.Color(DefaultTheme.DueSoon)
	ColorOverdue   = lipgloss.Color(DefaultTheme.Overdue)
)

// Base styles - these are updated by refreshStyles() when theme changes
var (
	Dim     = lipgloss.NewStyle().Foreground(ColorMuted)
	Title   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	Warning = lipgloss.NewStyle().Foreground(ColorDueSoon)
	Error   = lipgloss.NewStyle().Foreground(ColorOverdue)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)

	ListItem = lipgloss.NewStyle().
			PaddingLeft(2)

	SelectedListItem = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(ColorPrimary).
				Bold(true)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// alertColor returns the theme color for an alert style.
func alertColor(style duedate.Style, theme Theme) lipgloss.Color {
	if style == duedate.StyleOverdue {
		return lipgloss.Color(theme.Overdue)
	}
	return lipgloss.Color(theme.DueSoon)
}

// ChipStyle is the button container. Alert styles fill the chip with the
// alert color.
func ChipStyle(style duedate.Style, theme Theme) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	if style.Alert() {
		return s.Background(alertColor(style, theme)).Foreground(lipgloss.Color(theme.ChipAlertFg))
	}
	return s.Background(lipgloss.Color(theme.ChipBg)).Foreground(lipgloss.Color(theme.ChipFg))
}

// LabelStyle is the button text. Only overdue labels are bold.
func LabelStyle(style duedate.Style, theme Theme) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(style.Emphasized())
	if style.Alert() {
		return s.Foreground(lipgloss.Color(theme.ChipAlertFg))
	}
	return s.Foreground(lipgloss.Color(theme.ChipFg))
}

// IconStyle is the button icon. The icon is muted unless the style alerts.
func IconStyle(style duedate.Style, theme Theme) lipgloss.Style {
	if style.Alert() {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ChipAlertFg))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted))
}

// RenderButton renders the one-line due date chip for an item.
func RenderButton(date duedate.DueDate, now time.Time, access duedate.Access, theme Theme) string {
	style := duedate.StyleFor(duedate.Classify(date, now))
	controls := duedate.ControlsFor(duedate.VariantButton, access, date, now.Location())
	label := duedate.ButtonLabel(date, now)

	icon := IconFor(style)
	if !access.Licensed {
		icon = IconLock()
	}

	parts := []string{
		IconStyle(style, theme).Render(icon),
		LabelStyle(style, theme).Render(label.Text),
	}
	if controls.ShowChevron {
		parts = append(parts, IconStyle(style, theme).Render(IconChevron()))
	}
	return ChipStyle(style, theme).Render(strings.Join(parts, " "))
}
