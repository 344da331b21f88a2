package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// KeybindingConfig represents a single keybinding configuration.
type KeybindingConfig struct {
	Keys []string `yaml:"keys"` // Key(s) that trigger the action
	Help string   `yaml:"help"` // Help text displayed in the UI
}

// KeybindingsConfig holds the customizable keybindings of the due date picker.
type KeybindingsConfig struct {
	Open   *KeybindingConfig `yaml:"open,omitempty"`
	Up     *KeybindingConfig `yaml:"up,omitempty"`
	Down   *KeybindingConfig `yaml:"down,omitempty"`
	Select *KeybindingConfig `yaml:"select,omitempty"`
	Reset  *KeybindingConfig `yaml:"reset,omitempty"`
	Custom *KeybindingConfig `yaml:"custom,omitempty"`
	Back   *KeybindingConfig `yaml:"back,omitempty"`
	Quit   *KeybindingConfig `yaml:"quit,omitempty"`
}

// DefaultKeybindingsConfigPath returns the default path for the keybindings config file.
func DefaultKeybindingsConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "due", "keybindings.yaml")
}

// LoadKeybindings loads keybindings from the default config path.
// Returns nil if the file doesn't exist (not an error - just use defaults).
func LoadKeybindings() (*KeybindingsConfig, error) {
	return LoadKeybindingsFromPath(DefaultKeybindingsConfigPath())
}

// LoadKeybindingsFromPath loads keybindings from a specific path.
// Returns nil if the file doesn't exist (not an error - just use defaults).
func LoadKeybindingsFromPath(path string) (*KeybindingsConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var config KeybindingsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// GenerateDefaultKeybindingsYAML generates a YAML string with all default keybindings.
func GenerateDefaultKeybindingsYAML() string {
	return `# Due date picker keybindings
# Each keybinding has:
#   keys: list of key(s) that trigger the action (e.g., ["enter"], ["ctrl+r", "r"])
#   help: text shown in the help line
#
# Only include keybindings you want to customize.
# Omitted keybindings will use defaults.

open:
  keys: ["enter", " "]
  help: "open"

up:
  keys: ["up", "k"]
  help: "up"

down:
  keys: ["down", "j"]
  help: "down"

select:
  keys: ["enter"]
  help: "set"

reset:
  keys: ["x"]
  help: "no due date"

custom:
  keys: ["c"]
  help: "custom"

back:
  keys: ["esc"]
  help: "close"

quit:
  keys: ["ctrl+c", "q"]
  help: "quit"
`
}
