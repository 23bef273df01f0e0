/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/allbin/go-midi"
	"github.com/allbin/go-midi/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available MIDI ports",
	Long: `List the ALSA raw MIDI devices on the system.

Every raw MIDI device can be used both as input and as output. The index
in the first column can be used as a port selector:

  midictl list
  midictl list --table
  midictl --output 1 send cc 7 100`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, err := midi.NewTransport()
		if err != nil {
			exitWithError("Transport init failed", err)
		}

		ports, err := midi.ListPorts(transport)
		if err != nil {
			exitWithError("Listing ports failed", err)
		}
		log.Debug().Int("count", len(ports)).Msg("Enumerated ports")

		filter, _ := cmd.Flags().GetString("filter")
		tableFormat, _ := cmd.Flags().GetBool("table")

		indexed := filterPorts(ports, filter)
		if len(indexed) == 0 {
			if filter != "" {
				fmt.Printf("No MIDI ports found matching filter: %s\n", filter)
			} else {
				fmt.Println("No MIDI ports found")
			}
			return
		}

		if tableFormat {
			fmt.Printf("Found %d MIDI port(s):\n\n", len(indexed))
			fmt.Println(renderTable(indexed))
		} else {
			fmt.Print(renderSimple(indexed))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("filter", "f", "", "Only show ports whose name or card contains this text")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// indexedPort keeps a port's position in the full list, which is what an
// index selector refers to
type indexedPort struct {
	Index int
	Port  midi.PortInfo
}

func filterPorts(ports []midi.PortInfo, filter string) []indexedPort {
	needle := strings.ToLower(filter)
	var out []indexedPort
	for i, p := range ports {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.CardID), needle) {
			out = append(out, indexedPort{Index: i, Port: p})
		}
	}
	return out
}

const (
	columnKeyIndex = "index"
	columnKeyPath  = "path"
	columnKeyName  = "name"
	columnKeyDesc  = "description"
)

// renderTable renders the port list as a static bordered table
func renderTable(ports []indexedPort) string {
	columns := []table.Column{
		table.NewColumn(columnKeyIndex, "#", 4),
		table.NewColumn(columnKeyPath, "Path", 20),
		table.NewColumn(columnKeyName, "Name", 28),
		table.NewColumn(columnKeyDesc, "Description", 28),
	}

	rows := make([]table.Row, 0, len(ports))
	for _, p := range ports {
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyIndex: p.Index,
			columnKeyPath:  p.Port.Path,
			columnKeyName:  p.Port.Name,
			columnKeyDesc:  p.Port.Description,
		}))
	}

	return table.New(columns).
		WithRows(rows).
		BorderRounded().
		HeaderStyle(lipgloss.NewStyle().Bold(true).Foreground(styles.Mauve)).
		WithBaseStyle(lipgloss.NewStyle().Foreground(styles.Text).BorderForeground(styles.Surface2)).
		View()
}

// renderSimple renders one port per line
func renderSimple(ports []indexedPort) string {
	var b strings.Builder
	for _, p := range ports {
		fmt.Fprintf(&b, "%d\t%s\t%s\n", p.Index, p.Port.Path, p.Port.Name)
	}
	return b.String()
}
