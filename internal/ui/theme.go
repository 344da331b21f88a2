// Package ui renders due date controls in the terminal.
package ui

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines all colors used by the due date controls.
type Theme struct {
	Name string `json:"name"`

	// Core colors
	Primary   string `json:"primary"`   // Selections, highlights
	Secondary string `json:"secondary"` // Secondary labels, help keys
	Muted     string `json:"muted"`     // Dimmed text, idle icons

	// Due colors
	DueSoon string `json:"due_soon"` // Due within the next 12 hours
	Overdue string `json:"overdue"`  // Past due

	// Chip colors
	ChipBg      string `json:"chip_bg"`       // Button background
	ChipFg      string `json:"chip_fg"`       // Button label
	ChipAlertFg string `json:"chip_alert_fg"` // Label on an alert background
}

// BuiltinThemes contains all built-in themes.
var BuiltinThemes = map[string]Theme{
	"default": DefaultTheme,
	"nord":    NordTheme,
	"gruvbox": GruvboxTheme,
}

// DefaultTheme is the stock palette.
var DefaultTheme = Theme{
	Name: "default",

	Primary:   "#7C3AED", // Purple
	Secondary: "#06B6D4", // Cyan
	Muted:     "#6B7280", // Gray

	DueSoon: "#F59E0B", // Amber
	Overdue: "#EF4444", // Red

	ChipBg:      "#333333",
	ChipFg:      "#FFFFFF",
	ChipAlertFg: "#111111",
}

// NordTheme is inspired by the Nord color palette - arctic, bluish tones.
var NordTheme = Theme{
	Name: "nord",

	Primary:   "#88C0D0", // Nord8 - frost
	Secondary: "#81A1C1", // Nord9 - frost
	Muted:     "#4C566A", // Nord3 - polar night

	DueSoon: "#EBCB8B", // Nord13 - aurora yellow
	Overdue: "#BF616A", // Nord11 - aurora red

	ChipBg:      "#3B4252", // Nord1
	ChipFg:      "#ECEFF4", // Nord6
	ChipAlertFg: "#2E3440", // Nord0
}

// GruvboxTheme is inspired by the Gruvbox color scheme - retro, earthy tones.
var GruvboxTheme = Theme{
	Name: "gruvbox",

	Primary:   "#83A598", // Aqua
	Secondary: "#B8BB26", // Green
	Muted:     "#665C54", // Gray

	DueSoon: "#FABD2F", // Yellow
	Overdue: "#FB4934", // Red

	ChipBg:      "#3C3836",
	ChipFg:      "#EBDBB2",
	ChipAlertFg: "#282828",
}

// currentTheme is the active theme.
var currentTheme = DefaultTheme

// CurrentTheme returns the current theme.
func CurrentTheme() Theme {
	return currentTheme
}

// GetTheme returns the built-in theme called name.
func GetTheme(name string) (Theme, error) {
	theme, ok := BuiltinThemes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme: %s", name)
	}
	return theme, nil
}

// SetTheme sets the current theme by name.
func SetTheme(name string) error {
	theme, err := GetTheme(name)
	if err != nil {
		return err
	}
	currentTheme = theme
	refreshStyles()
	return nil
}

// LoadTheme activates the named theme, keeping the default when the name
// is empty or unknown.
func LoadTheme(name string) {
	if name == "" || SetTheme(name) != nil {
		currentTheme = DefaultTheme
		refreshStyles()
	}
}

// SetThemeFromJSON sets a custom theme from JSON.
func SetThemeFromJSON(data string) error {
	var theme Theme
	if err := json.Unmarshal([]byte(data), &theme); err != nil {
		return fmt.Errorf("parse theme: %w", err)
	}
	if theme.Name == "" {
		theme.Name = "custom"
	}
	currentTheme = theme
	refreshStyles()
	return nil
}

// ListThemes returns the names of all built-in themes, sorted.
func ListThemes() []string {
	names := make([]string, 0, len(BuiltinThemes))
	for name := range BuiltinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// refreshStyles updates the package styles after a theme change.
func refreshStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.Muted)
	ColorDueSoon = lipgloss.Color(t.DueSoon)
	ColorOverdue = lipgloss.Color(t.Overdue)

	Dim = lipgloss.NewStyle().Foreground(ColorMuted)
	Title = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	Warning = lipgloss.NewStyle().Foreground(ColorDueSoon)
	Error = lipgloss.NewStyle().Foreground(ColorOverdue)

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
}
