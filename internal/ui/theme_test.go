package ui

import (
	"reflect"
	"testing"
)

func TestListThemes(t *testing.T) {
	got := ListThemes()
	want := []string{"default", "gruvbox", "nord"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListThemes() = %v, want %v", got, want)
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("default")

	for _, name := range ListThemes() {
		if err := SetTheme(name); err != nil {
			t.Errorf("SetTheme(%q) failed: %v", name, err)
		}
		if CurrentTheme().Name != name {
			t.Errorf("CurrentTheme().Name = %q, want %q", CurrentTheme().Name, name)
		}
	}

	if err := SetTheme("nonexistent"); err == nil {
		t.Error("SetTheme(nonexistent) should fail")
	}
}

func TestLoadTheme(t *testing.T) {
	defer SetTheme("default")

	tests := []struct {
		name      string
		setting   string
		wantTheme string
	}{
		{"loads saved theme", "nord", "nord"},
		{"uses default on empty", "", "default"},
		{"uses default on invalid theme", "invalid_theme", "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetTheme("gruvbox")
			LoadTheme(tt.setting)
			if CurrentTheme().Name != tt.wantTheme {
				t.Errorf("got theme %q, want %q", CurrentTheme().Name, tt.wantTheme)
			}
		})
	}
}

func TestGetTheme(t *testing.T) {
	theme, err := GetTheme("nord")
	if err != nil {
		t.Fatalf("GetTheme(nord): %v", err)
	}
	if theme.Overdue != NordTheme.Overdue {
		t.Errorf("unexpected nord theme: %+v", theme)
	}
	if _, err := GetTheme("solarized"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestSetThemeFromJSON(t *testing.T) {
	defer SetTheme("default")

	if err := SetThemeFromJSON(`{"primary":"#000000","due_soon":"#111111","overdue":"#222222"}`); err != nil {
		t.Fatalf("SetThemeFromJSON: %v", err)
	}
	theme := CurrentTheme()
	if theme.Name != "custom" || theme.DueSoon != "#111111" {
		t.Errorf("unexpected custom theme: %+v", theme)
	}
	if string(ColorOverdue) != "#222222" {
		t.Errorf("expected styles refreshed, ColorOverdue = %q", ColorOverdue)
	}

	if err := SetThemeFromJSON("{"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestThemeColors(t *testing.T) {
	for name, theme := range BuiltinThemes {
		t.Run(name, func(t *testing.T) {
			if theme.Name != name {
				t.Errorf("theme registered as %q is named %q", name, theme.Name)
			}
			for field, v := range map[string]string{
				"Primary":     theme.Primary,
				"Secondary":   theme.Secondary,
				"Muted":       theme.Muted,
				"DueSoon":     theme.DueSoon,
				"Overdue":     theme.Overdue,
				"ChipBg":      theme.ChipBg,
				"ChipFg":      theme.ChipFg,
				"ChipAlertFg": theme.ChipAlertFg,
			} {
				if v == "" {
					t.Errorf("%s color is empty", field)
				}
			}
			if theme.DueSoon == theme.Overdue {
				t.Error("due soon and overdue colors must differ")
			}
		})
	}
}
