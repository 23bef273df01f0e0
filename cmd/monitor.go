/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/allbin/go-midi"
	"github.com/allbin/go-midi/internal/tui/components"
	"github.com/allbin/go-midi/internal/tui/keys"
	"github.com/allbin/go-midi/internal/tui/models"
	"github.com/allbin/go-midi/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch incoming MIDI messages",
	Long: `Open the input port and show incoming MIDI messages in a live table.

The input port is taken from --input, falling back to --output and then to
the first port. Timing clock and active sensing are hidden by default.

Examples:
  midictl monitor
  midictl monitor --input x-touch
  midictl monitor -i /dev/snd/midiC1D0`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMonitorTUI(); err != nil {
			exitWithError("Monitor failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

// monitorModel represents the Bubble Tea model for the monitor command
type monitorModel struct {
	*models.MonitorModel
	events    *components.EventTable
	statusBar *components.StatusBar
	help      help.Model
	keys      keys.MonitorKeys
}

func monitorSelector() string {
	if s := viper.GetString("input"); s != "" {
		return s
	}
	if s := viper.GetString("output"); s != "" {
		return s
	}
	return "0"
}

func newMonitorModel(selector string) *monitorModel {
	m := &monitorModel{
		MonitorModel: models.NewMonitorModel(selector),
		events:       components.NewEventTable(0, 0), // sized by WindowSizeMsg
		statusBar:    components.NewStatusBar("MIDI Monitor", selector),
		help:         help.New(),
		keys:         keys.NewMonitorKeys(),
	}
	m.statusBar.SetConnecting()
	return m
}

func runMonitorTUI() error {
	m := newMonitorModel(monitorSelector())

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Connect in background so the UI comes up immediately
	go func() {
		conn, err := openConnection(true)
		if err != nil {
			log.Debug().Err(err).Msg("Monitor connection failed")
			p.Send(models.ConnectionStatusMsg{Connected: false, Error: err})
			return
		}
		if !m.SetConn(conn) {
			// Quit before the connection came up
			conn.Close()
			return
		}
		p.Send(models.ConnectionStatusMsg{Connected: true})

		ctx := m.GetContext()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-conn.Events():
				if !ok {
					if ctx.Err() == nil {
						p.Send(models.ConnectionStatusMsg{Connected: false, Error: streamError(conn)})
					}
					return
				}
				p.Send(models.EventMsg{Event: ev})
			}
		}
	}()

	_, err := p.Run()

	m.Cleanup()
	return err
}

// streamError explains why the event stream of conn ended
func streamError(conn *midi.Conn) error {
	if err := conn.Err(); err != nil {
		return fmt.Errorf("input stopped: %w", err)
	}
	return midi.ErrConnectionClosed
}

func (m *monitorModel) Init() tea.Cmd {
	return nil
}

func (m *monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Status bar and help line, plus the content border
		verticalMargin := 4
		m.events.SetSize(msg.Width-2, msg.Height-verticalMargin)
		m.statusBar.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.SetReady(true)

	case models.ConnectionStatusMsg:
		m.SetConnected(msg.Connected)
		if msg.Error != nil {
			m.SetError(msg.Error)
			m.statusBar.SetDisconnected(msg.Error)
			break
		}
		if conn := m.GetConn(); conn != nil {
			if in, ok := conn.InputPort(); ok {
				m.statusBar.SetPortName(in.Name)
			}
		}
		m.statusBar.SetConnected()

	case models.EventMsg:
		if m.IsReady() && !m.IsPaused() {
			m.events.Add(msg.Event)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Cleanup()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Clear):
			m.events.Clear()
		case key.Matches(msg, m.keys.Pause):
			m.statusBar.SetPaused(m.TogglePaused())
		case key.Matches(msg, m.keys.HideRealtime):
			m.events.ToggleRealtime()
		}
	}

	return m, nil
}

func (m *monitorModel) View() string {
	var content string
	switch {
	case !m.IsReady():
		content = "Initializing..."
	case m.GetError() != nil && m.events.Len() == 0:
		content = styles.ErrorStyle.Render(fmt.Sprintf("✗ %s", formatError(m.GetError())))
	default:
		content = m.events.View()
	}

	timestamp := time.Now().Format("15:04:05")
	statusBar := m.statusBar.View(m.IsConnected(), m.events.Len(), timestamp)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ContentBorderStyle.Render(content),
		statusBar,
		m.help.View(m.keys),
	)
}
