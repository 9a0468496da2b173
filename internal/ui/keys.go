package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings outside of search entry. While
// the search prompt is open, printable keys edit the query instead and
// only a small fixed set of control keys is honored.
type keyMap struct {
	// Global
	Quit key.Binding

	// Selection
	Up       key.Binding
	Down     key.Binding
	JumpUp   key.Binding
	JumpDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Reselect key.Binding

	// Search
	Search     key.Binding
	ExitSearch key.Binding
	ClearQuery key.Binding

	// Playback
	Play        key.Binding
	Pause       key.Binding
	Stop        key.Binding
	Next        key.Binding
	Previous    key.Binding
	SeekForward key.Binding
	SeekBack    key.Binding

	// Modes
	Repeat  key.Binding
	Random  key.Binding
	Single  key.Binding
	Oneshot key.Binding
	Consume key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),

		// Selection
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		JumpUp: key.NewBinding(
			key.WithKeys("K", "pgup"),
			key.WithHelp("K/pgup", "Jump up"),
		),
		JumpDown: key.NewBinding(
			key.WithKeys("J", "pgdown"),
			key.WithHelp("J/pgdown", "Jump down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Reselect: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Select playing song"),
		),

		// Search
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		ExitSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave search, clear query"),
		),
		ClearQuery: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Clear query"),
		),

		// Playback
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Play selected song"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Toggle pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys(";"),
			key.WithHelp(";", "Stop"),
		),
		Next: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Next song"),
		),
		Previous: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Previous song"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Seek forwards"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Seek backwards"),
		),

		// Modes
		Repeat: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Toggle repeat"),
		),
		Random: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Toggle random"),
		),
		Single: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Toggle single"),
		),
		Oneshot: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Toggle oneshot"),
		),
		Consume: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Toggle consume"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Play, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Selection
		{k.Up, k.Down, k.JumpUp, k.JumpDown, k.Top, k.Bottom, k.Reselect},
		// Search
		{k.Search, k.ExitSearch, k.ClearQuery},
		// Playback
		{k.Play, k.Pause, k.Stop, k.Next, k.Previous, k.SeekForward, k.SeekBack},
		// Modes
		{k.Repeat, k.Random, k.Single, k.Oneshot, k.Consume},
		// General
		{k.Quit},
	}
}
