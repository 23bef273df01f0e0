/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/allbin/go-midi"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <port>",
	Short: "Display detailed information about a MIDI port",
	Long: `Display what is known about a raw MIDI port.

Examples:
  midictl info 0
  midictl info /dev/snd/midiC1D0
  midictl info x-touch`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		transport, err := midi.NewTransport()
		if err != nil {
			exitWithError("Transport init failed", err)
		}

		ports, err := midi.ListPorts(transport)
		if err != nil {
			exitWithError("Listing ports failed", err)
		}

		port, err := midi.FindOutputPort(ports, args[0])
		if err != nil {
			exitWithError("Port lookup failed", err)
		}

		fmt.Print(formatPortInfo(port))
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func formatPortInfo(port midi.PortInfo) string {
	s := fmt.Sprintf("Port Information: %s\n\n", port.Path)
	s += fmt.Sprintf("  Name:        %s\n", port.Name)
	s += fmt.Sprintf("  Description: %s\n", port.Description)
	s += fmt.Sprintf("  Card:        %d\n", port.Card)
	s += fmt.Sprintf("  Device:      %d\n", port.Device)
	if port.CardID != "" {
		s += fmt.Sprintf("  Card ID:     %s\n", port.CardID)
	}
	return s
}
