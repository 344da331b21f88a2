// Package config provides application configuration from database.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bborn/duedate/internal/db"
)

// Config holds application configuration loaded from database.
type Config struct {
	db       *db.DB
	Plan     string
	Theme    string
	Location *time.Location
}

// Setting keys
const (
	SettingPlan     = "plan"
	SettingTheme    = "theme"
	SettingTimezone = "timezone"
)

// Plans
const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// Keys lists the settings `due config` accepts.
var Keys = []string{SettingPlan, SettingTheme, SettingTimezone}

// New creates a config from database.
func New(database *db.DB) *Config {
	cfg := &Config{db: database}
	cfg.load()
	return cfg
}

func (c *Config) load() {
	c.Plan = PlanProfessional
	if v, err := c.db.GetSetting(SettingPlan); err == nil && v != "" {
		c.Plan = v
	}
	if v := os.Getenv("DUE_PLAN"); v != "" {
		c.Plan = v
	}
	c.Plan = strings.ToLower(strings.TrimSpace(c.Plan))

	c.Theme = "default"
	if v, err := c.db.GetSetting(SettingTheme); err == nil && v != "" {
		c.Theme = v
	}

	c.Location = time.Local
	if v, err := c.db.GetSetting(SettingTimezone); err == nil && v != "" {
		if loc, err := time.LoadLocation(v); err == nil {
			c.Location = loc
		}
	}
}

// Licensed reports whether the plan includes due dates.
func (c *Config) Licensed() bool {
	return c.Plan == PlanProfessional || c.Plan == PlanEnterprise
}

// Set validates and stores a setting, then reloads.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case SettingPlan:
		switch strings.ToLower(value) {
		case PlanStarter, PlanProfessional, PlanEnterprise:
			value = strings.ToLower(value)
		default:
			return fmt.Errorf("unknown plan %q (expected starter, professional or enterprise)", value)
		}
	case SettingTimezone:
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", value, err)
		}
	case SettingTheme:
		if value == "" {
			return fmt.Errorf("empty theme")
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := c.db.SetSetting(key, value); err != nil {
		return err
	}
	c.load()
	return nil
}

// Get returns the effective value of a setting.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case SettingPlan:
		return c.Plan, nil
	case SettingTheme:
		return c.Theme, nil
	case SettingTimezone:
		return c.Location.String(), nil
	default:
		return "", fmt.Errorf("unknown setting %q", key)
	}
}
