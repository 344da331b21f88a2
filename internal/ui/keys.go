package ui

import (
	"strings"

	"github.com/bborn/duedate/internal/config"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the picker key bindings.
type KeyMap struct {
	Open   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Reset  key.Binding
	Custom key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings to show in the mini help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Reset, k.Custom, k.Back}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Up, k.Down, k.Select},
		{k.Reset, k.Custom, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "set"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "no due date"),
		),
		Custom: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "custom"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ApplyKeybindingsConfig overrides bindings present in cfg. A nil cfg
// returns km unchanged.
func ApplyKeybindingsConfig(km KeyMap, cfg *config.KeybindingsConfig) KeyMap {
	if cfg == nil {
		return km
	}
	apply(&km.Open, cfg.Open)
	apply(&km.Up, cfg.Up)
	apply(&km.Down, cfg.Down)
	apply(&km.Select, cfg.Select)
	apply(&km.Reset, cfg.Reset)
	apply(&km.Custom, cfg.Custom)
	apply(&km.Back, cfg.Back)
	apply(&km.Quit, cfg.Quit)
	return km
}

func apply(b *key.Binding, kc *config.KeybindingConfig) {
	if kc == nil || len(kc.Keys) == 0 {
		return
	}
	desc := b.Help().Desc
	if kc.Help != "" {
		desc = kc.Help
	}
	*b = key.NewBinding(
		key.WithKeys(kc.Keys...),
		key.WithHelp(strings.Join(kc.Keys, "/"), desc),
	)
}
