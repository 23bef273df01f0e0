package components

import (
	"fmt"
	"strings"

	"github.com/allbin/go-midi/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

type StatusBar struct {
	title    string
	portName string
	status   string
	err      error
	width    int
	paused   bool
}

func NewStatusBar(title, portName string) *StatusBar {
	return &StatusBar{
		title:    title,
		portName: portName,
		status:   "Initializing...",
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetPortName(name string) {
	sb.portName = name
}

func (sb *StatusBar) SetPaused(paused bool) {
	sb.paused = paused
}

func (sb *StatusBar) SetConnecting() {
	sb.status = "Connecting..."
	sb.err = nil
}

func (sb *StatusBar) SetConnected() {
	sb.status = "Connected - listening for events..."
	sb.err = nil
}

// SetDisconnected records why the connection ended. err is shown as is,
// so MIDI errors appear in their "{category} error: {message}" form.
func (sb *StatusBar) SetDisconnected(err error) {
	if err != nil {
		sb.status = err.Error()
		sb.err = err
		return
	}
	sb.status = "Disconnected"
	sb.err = nil
}

func (sb *StatusBar) Status() string {
	return sb.status
}

// View renders the single-line status bar
func (sb *StatusBar) View(connected bool, eventCount int, timestamp string) string {
	var state styles.StatusType
	switch {
	case sb.err != nil:
		state = styles.StatusError
	case connected:
		state = styles.StatusConnected
	default:
		state = styles.StatusConnecting
	}

	indicator := styles.GetStatusStyle(state).Render("●")
	title := styles.TitleStyle.Render(sb.title)
	port := lipgloss.NewStyle().Foreground(styles.Blue).Render(sb.portName)

	mode := "LIVE"
	if sb.paused {
		mode = "PAUSED"
	}
	right := lipgloss.NewStyle().Foreground(styles.Subtext0).
		Render(fmt.Sprintf("%s │ %d events │ %s", mode, eventCount, timestamp))

	left := strings.Join([]string{title, indicator, port, sb.status}, " ")

	gap := sb.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
