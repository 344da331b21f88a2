package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bborn/duedate/internal/clock"
	"github.com/bborn/duedate/internal/duedate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RefreshInterval is how often the picker re-reads the clock.
const RefreshInterval = 30 * time.Second

// DueChangedMsg is emitted when the user picks or clears a due date.
type DueChangedMsg struct {
	Due  duedate.DueDate
	Mode duedate.Mode
}

type refreshMsg time.Time

// PickerOptions configures a PickerModel.
type PickerOptions struct {
	Due      duedate.DueDate
	Mode     duedate.Mode
	Access   duedate.Access
	Theme    Theme
	Keys     KeyMap
	Clock    clock.Clock
	Location *time.Location
	// QuitOnChange ends the program after a change, for one-shot pickers.
	QuitOnChange bool
}

// PickerModel is the due date button and its preset popup.
type PickerModel struct {
	due    duedate.DueDate
	mode   duedate.Mode
	access duedate.Access
	theme  Theme
	keys   KeyMap
	clock  clock.Clock
	loc    *time.Location
	now    time.Time

	open    bool
	cursor  int
	options []duedate.PresetOption
	custom  bool
	input   textinput.Model
	err     string
	upgrade bool

	quitOnChange bool
	changed      bool
}

// NewPickerModel creates a closed picker.
func NewPickerModel(opts PickerOptions) *PickerModel {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Theme.Name == "" {
		opts.Theme = CurrentTheme()
	}
	if len(opts.Keys.Up.Keys()) == 0 {
		opts.Keys = DefaultKeyMap()
	}

	ti := textinput.New()
	ti.Placeholder = "tomorrow, in 3 days, 2024-06-01 09:00..."
	ti.CharLimit = 40
	ti.Width = 36

	m := &PickerModel{
		due:          opts.Due,
		mode:         opts.Mode,
		access:       opts.Access,
		theme:        opts.Theme,
		keys:         opts.Keys,
		clock:        opts.Clock,
		loc:          opts.Location,
		input:        ti,
		quitOnChange: opts.QuitOnChange,
	}
	m.refresh()
	return m
}

// Due returns the current due date.
func (m *PickerModel) Due() duedate.DueDate { return m.due }

// Mode returns the current due mode.
func (m *PickerModel) Mode() duedate.Mode { return m.mode }

// IsOpen reports whether the preset popup is showing.
func (m *PickerModel) IsOpen() bool { return m.open }

// Changed reports whether the user changed the due date.
func (m *PickerModel) Changed() bool { return m.changed }

// Options returns the presets currently offered.
func (m *PickerModel) Options() []duedate.PresetOption { return m.options }

// refresh re-reads the clock and rebuilds the presets.
func (m *PickerModel) refresh() {
	m.now = m.clock.Now().In(m.loc)
	m.options = slices.Collect(duedate.Options(m.now, m.due, m.mode))
	if m.cursor >= m.rowCount() {
		m.cursor = m.rowCount() - 1
	}
}

// rowCount is the presets plus the reset row when a date is set.
func (m *PickerModel) rowCount() int {
	n := len(m.options)
	if m.due.IsSet() {
		n++
	}
	return n
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Init starts the refresh tick.
func (m *PickerModel) Init() tea.Cmd {
	return tick()
}

// Update handles messages.
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.refresh()
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.custom {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// The upgrade notice lasts until the next key press.
	m.upgrade = false

	if m.custom {
		switch msg.Type {
		case tea.KeyEnter:
			return m.submitCustom()
		case tea.KeyEsc:
			m.custom = false
			m.err = ""
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if !m.open {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Open):
			res := duedate.Click(duedate.VariantButton, m.access)
			m.upgrade = res.ShowUpgrade
			if res.Open {
				m.open = true
				m.cursor = 0
				m.refresh()
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.open = false
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Reset):
		if m.due.IsSet() {
			return m.change(duedate.None, duedate.ModeDateTime)
		}
	case key.Matches(msg, m.keys.Custom):
		m.custom = true
		m.err = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Select):
		if m.cursor >= len(m.options) {
			return m.change(duedate.None, duedate.ModeDateTime)
		}
		opt := m.options[m.cursor]
		return m.change(opt.Date, opt.Mode)
	}
	return m, nil
}

func (m *PickerModel) submitCustom() (tea.Model, tea.Cmd) {
	var (
		due duedate.DueDate
		err error
	)
	mode := m.mode
	if mode == duedate.ModeDuration {
		due, err = duedate.ParseDuration(m.input.Value())
	} else {
		mode = duedate.ModeDateTime
		due, err = duedate.Parse(m.input.Value(), m.now)
	}
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.custom = false
	m.input.Blur()
	return m.change(due, mode)
}

func (m *PickerModel) change(due duedate.DueDate, mode duedate.Mode) (tea.Model, tea.Cmd) {
	m.due = due
	m.mode = mode
	m.open = false
	m.changed = true
	m.refresh()

	msg := DueChangedMsg{Due: due, Mode: mode}
	emit := func() tea.Msg { return msg }
	if m.quitOnChange {
		return m, tea.Sequence(emit, tea.Quit)
	}
	return m, emit
}

// View renders the picker.
func (m *PickerModel) View() string {
	var b strings.Builder
	b.WriteString(RenderButton(m.due, m.now, m.access, m.theme))

	controls := duedate.ControlsFor(duedate.VariantButton, m.access, m.due, m.loc)
	if controls.Tooltip != "" {
		b.WriteString("  " + Dim.Render(controls.Tooltip))
	}
	if m.upgrade {
		locked := duedate.ControlsFor(duedate.VariantHoverMenu, m.access, m.due, m.loc)
		b.WriteString("\n" + Warning.Render(IconLock()+" "+locked.LockedTooltip))
	}

	if m.open {
		b.WriteString("\n" + Box.Render(m.renderPopup(controls)))
	}
	return b.String()
}

func (m *PickerModel) renderPopup(controls duedate.Controls) string {
	lines := []string{Title.Render("Due date")}
	for i, opt := range m.options {
		label := opt.Label
		if opt.Selected {
			label = IconCheck() + " " + label
		}
		if opt.Secondary != "" {
			label += "  " + Dim.Render(opt.Secondary)
		}
		lines = append(lines, m.renderRow(i, label))
	}
	if controls.ShowReset {
		lines = append(lines, m.renderRow(len(m.options), controls.ResetLabel))
	}

	if m.custom {
		lines = append(lines, "", m.input.View())
		if m.err != "" {
			lines = append(lines, Error.Render(m.err))
		}
	}

	lines = append(lines, "", m.renderHelp())
	return strings.Join(lines, "\n")
}

func (m *PickerModel) renderRow(i int, label string) string {
	if i == m.cursor && !m.custom {
		return SelectedListItem.Render(IconCursor() + " " + label)
	}
	return ListItem.Render("  " + label)
}

func (m *PickerModel) renderHelp() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", HelpKey.Render(b.Help().Key), HelpDesc.Render(b.Help().Desc)))
	}
	return strings.Join(parts, "  ")
}
