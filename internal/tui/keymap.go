package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// View state
	ToggleView    key.Binding
	NextMetric    key.Binding
	PrevMetric    key.Binding
	NextMonth     key.Binding
	PrevMonth     key.Binding
	CycleSort     key.Binding
	ToggleOrder   key.Binding
	CycleRegion   key.Binding
	CycleCategory key.Binding
	CycleCustomer key.Binding
	Reset         key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "go to start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "go to end"),
		),

		ToggleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "yearly/monthly view"),
		),
		NextMetric: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "next metric"),
		),
		PrevMetric: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "previous metric"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous month"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort column"),
		),
		ToggleOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle sort order"),
		),
		CycleRegion: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "cycle region filter"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle category filter"),
		),
		CycleCustomer: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "cycle customer filter"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0", "esc"),
			key.WithHelp("0/Esc", "reset filters"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleView, k.NextMetric, k.CycleRegion, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.ToggleView, k.NextMetric, k.PrevMetric, k.NextMonth, k.PrevMonth},
		{k.CycleSort, k.ToggleOrder, k.CycleRegion, k.CycleCategory, k.CycleCustomer, k.Reset},
		{k.Help, k.Quit},
	}
}
