package config

import (
	"path/filepath"
	"testing"

	"github.com/bborn/duedate/internal/db"
)

func newTestConfig(t *testing.T) (*Config, *db.DB) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return New(database), database
}

func TestDefaults(t *testing.T) {
	t.Setenv("DUE_PLAN", "")
	cfg, _ := newTestConfig(t)

	if cfg.Plan != PlanProfessional {
		t.Errorf("expected default plan %q, got %q", PlanProfessional, cfg.Plan)
	}
	if !cfg.Licensed() {
		t.Error("expected default plan to be licensed")
	}
	if cfg.Theme != "default" {
		t.Errorf("expected default theme, got %q", cfg.Theme)
	}
	if cfg.Location == nil {
		t.Error("expected a location")
	}
}

func TestSetPlan(t *testing.T) {
	t.Setenv("DUE_PLAN", "")
	cfg, database := newTestConfig(t)

	if err := cfg.Set(SettingPlan, "Starter"); err != nil {
		t.Fatalf("set plan: %v", err)
	}
	if cfg.Plan != PlanStarter || cfg.Licensed() {
		t.Fatalf("expected unlicensed starter plan, got %q", cfg.Plan)
	}
	if v, _ := database.GetSetting(SettingPlan); v != PlanStarter {
		t.Fatalf("expected stored plan, got %q", v)
	}

	if err := cfg.Set(SettingPlan, "gold"); err == nil {
		t.Fatal("expected error for unknown plan")
	}
	if err := cfg.Set(SettingPlan, "enterprise"); err != nil {
		t.Fatalf("set plan: %v", err)
	}
	if !cfg.Licensed() {
		t.Fatal("expected enterprise to be licensed")
	}
}

func TestPlanEnvOverride(t *testing.T) {
	t.Setenv("DUE_PLAN", "starter")
	cfg, _ := newTestConfig(t)

	if err := cfg.Set(SettingPlan, PlanProfessional); err != nil {
		t.Fatalf("set plan: %v", err)
	}
	if cfg.Plan != PlanStarter {
		t.Fatalf("expected DUE_PLAN to win, got %q", cfg.Plan)
	}
}

func TestSetTimezone(t *testing.T) {
	cfg, _ := newTestConfig(t)

	if err := cfg.Set(SettingTimezone, "Mars/Olympus"); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
	if err := cfg.Set(SettingTimezone, "UTC"); err != nil {
		t.Fatalf("set timezone: %v", err)
	}
	got, err := cfg.Get(SettingTimezone)
	if err != nil || got != "UTC" {
		t.Fatalf("expected UTC, got %q (%v)", got, err)
	}
}

func TestUnknownSetting(t *testing.T) {
	cfg, _ := newTestConfig(t)
	if err := cfg.Set("color", "red"); err == nil {
		t.Error("expected error setting unknown key")
	}
	if _, err := cfg.Get("color"); err == nil {
		t.Error("expected error getting unknown key")
	}
}
