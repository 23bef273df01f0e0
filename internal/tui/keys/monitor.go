package keys

import "github.com/charmbracelet/bubbles/key"

// MonitorKeys are the key bindings of the monitor view
type MonitorKeys struct {
	Quit         key.Binding
	Help         key.Binding
	Clear        key.Binding
	Pause        key.Binding
	HideRealtime key.Binding
}

func NewMonitorKeys() MonitorKeys {
	return MonitorKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear events"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause"),
		),
		HideRealtime: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "toggle clock/sense"),
		),
	}
}

func (k MonitorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Pause, k.Clear, k.Quit}
}

func (k MonitorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Clear, k.HideRealtime},
		{k.Help, k.Quit},
	}
}
