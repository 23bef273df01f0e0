package components

import (
	"fmt"
	"strings"

	"github.com/allbin/go-midi"
	"github.com/allbin/go-midi/internal/tui/styles"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Oldest events are dropped past this many
const maxEvents = 5000

// EventTable lists received MIDI events, newest at the bottom
type EventTable struct {
	table        table.Model
	events       []midi.Event
	hideRealtime bool
}

func NewEventTable(width, height int) *EventTable {
	if width < 60 {
		width = 60
	}
	if height < 5 {
		height = 5
	}

	t := table.New(
		table.WithColumns(eventColumns(width)),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtext0).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Text)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(styles.Surface1).
		Bold(false)
	t.SetStyles(s)

	return &EventTable{
		table:        t,
		events:       make([]midi.Event, 0),
		hideRealtime: true,
	}
}

func eventColumns(width int) []table.Column {
	timeWidth := 14
	chWidth := 4
	typeWidth := 18
	valueWidth := 7

	hexWidth := width - timeWidth - chWidth - typeWidth - 2*valueWidth - 12
	if hexWidth < 12 {
		hexWidth = 12
	}

	return []table.Column{
		{Title: "Time", Width: timeWidth},
		{Title: "Ch", Width: chWidth},
		{Title: "Type", Width: typeWidth},
		{Title: "Data 1", Width: valueWidth},
		{Title: "Data 2", Width: valueWidth},
		{Title: "Hex", Width: hexWidth},
	}
}

func (et *EventTable) SetSize(width, height int) {
	if width < 60 {
		width = 60
	}
	et.table.SetColumns(eventColumns(width))
	et.table.SetHeight(height)
	et.table.SetWidth(width)
	et.table.UpdateViewport()
}

// Add appends an event and scrolls to it
func (et *EventTable) Add(ev midi.Event) {
	et.events = append(et.events, ev)
	if len(et.events) > maxEvents {
		et.events = et.events[len(et.events)-maxEvents:]
	}
	et.refresh()
	et.table.GotoBottom()
}

func (et *EventTable) Clear() {
	et.events = et.events[:0]
	et.refresh()
}

// ToggleRealtime shows or hides clock and active sensing, returning
// whether they are now hidden
func (et *EventTable) ToggleRealtime() bool {
	et.hideRealtime = !et.hideRealtime
	et.refresh()
	return et.hideRealtime
}

func (et *EventTable) Len() int {
	return len(et.events)
}

func (et *EventTable) refresh() {
	rows := make([]table.Row, 0, len(et.events))
	for _, ev := range et.events {
		if et.hideRealtime && isRealtime(ev.Message) {
			continue
		}
		rows = append(rows, FormatEventRow(ev))
	}
	et.table.SetRows(rows)
	et.table.UpdateViewport()
}

func (et *EventTable) View() string {
	return et.table.View()
}

func isRealtime(msg midi.Message) bool {
	return msg.Status() >= midi.TimingClock
}

// FormatEventRow renders an event as a table row
func FormatEventRow(ev midi.Event) table.Row {
	msg := ev.Message

	ch := ""
	if c := msg.Channel(); c >= 0 {
		ch = fmt.Sprintf("%d", c)
	}

	name := msg.String()
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name = name[:i]
	}

	var d1, d2 string
	if msg.Type() != midi.SysExStart {
		if len(msg) > 1 {
			d1 = fmt.Sprintf("%d", msg[1])
		}
		if len(msg) > 2 {
			d2 = fmt.Sprintf("%d", msg[2])
		}
	}

	return table.Row{
		ev.Time.Format("15:04:05.000"),
		ch,
		name,
		d1,
		d2,
		strings.ToUpper(fmt.Sprintf("% x", []byte(msg))),
	}
}
