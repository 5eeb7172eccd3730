package ui

import "github.com/charmbracelet/bubbles/key"

// dashboardKeyMap defines key bindings for the tracking dashboard
type dashboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Pause  key.Binding
	Resume key.Binding
	End    key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// ShortHelp returns the compact help line
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Resume, k.End, k.Quit, k.Help}
}

// FullHelp returns the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Pause, k.Resume, k.End},
		{k.Quit, k.Help},
	}
}

func defaultDashboardKeys() dashboardKeyMap {
	return dashboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume"),
		),
		End: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end timer"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "end session"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// reviewKeyMap defines key bindings for the review screen
type reviewKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Remove  key.Binding
	Edit    key.Binding
	Commit  key.Binding
	Discard key.Binding
}

// ShortHelp returns the compact help line
func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Remove, k.Commit, k.Discard}
}

// FullHelp returns the expanded help view
func (k reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Edit, k.Remove},
		{k.Commit, k.Discard},
	}
}

func defaultReviewKeys() reviewKeyMap {
	return reviewKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "include/exclude"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit duration"),
		),
		Commit: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "commit"),
		),
		Discard: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "discard"),
		),
	}
}
