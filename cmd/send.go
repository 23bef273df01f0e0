/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/allbin/go-midi"
	"github.com/allbin/go-midi/internal/tui/styles"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a MIDI message to the output port",
	Long: `Send a single MIDI message to the configured output port.

The message channel defaults to the global channel (--global-channel or
global_channel in the config file) and can be overridden per message with
--channel. Channels are numbered 0-15.

Examples:
  midictl send note-on 60 100
  midictl send cc 7 127 --channel 2
  midictl --output x-touch send pc 5
  midictl send bend 8192
  midictl send raw "F0 7E 7F 06 01 F7"`,
}

var noteOnCmd = &cobra.Command{
	Use:   "note-on <note> <velocity>",
	Short: "Send a note on message",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		data := mustParseDataBytes(args)
		runSend(cmd, func(ch int) (midi.Message, error) { return midi.NoteOn(ch, data[0], data[1]) })
	},
}

var noteOffCmd = &cobra.Command{
	Use:   "note-off <note> [velocity]",
	Short: "Send a note off message",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		data := mustParseDataBytes(args)
		velocity := uint8(0)
		if len(data) > 1 {
			velocity = data[1]
		}
		runSend(cmd, func(ch int) (midi.Message, error) { return midi.NoteOff(ch, data[0], velocity) })
	},
}

var ccCmd = &cobra.Command{
	Use:   "cc <controller> <value>",
	Short: "Send a control change message",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		data := mustParseDataBytes(args)
		runSend(cmd, func(ch int) (midi.Message, error) { return midi.ControlChange(ch, data[0], data[1]) })
	},
}

var pcCmd = &cobra.Command{
	Use:   "pc <program>",
	Short: "Send a program change message",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data := mustParseDataBytes(args)
		runSend(cmd, func(ch int) (midi.Message, error) { return midi.ProgramChange(ch, data[0]) })
	},
}

var bendCmd = &cobra.Command{
	Use:   "bend <value>",
	Short: "Send a pitch bend message (0-16383, center 8192)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		value, err := strconv.ParseUint(args[0], 0, 14)
		if err != nil {
			exitWithError("Invalid pitch bend value", fmt.Errorf("pitch bend must be 0-16383: %w", err))
		}
		runSend(cmd, func(ch int) (midi.Message, error) { return midi.PitchBend(ch, uint16(value)) })
	},
}

var rawCmd = &cobra.Command{
	Use:   "raw <hex bytes>",
	Short: "Send raw bytes given in hex",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := parseHexBytes(strings.Join(args, ""))
		if err != nil {
			exitWithError("Invalid hex data", err)
		}
		runSend(cmd, func(int) (midi.Message, error) { return midi.Message(data), nil })
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.AddCommand(noteOnCmd, noteOffCmd, ccCmd, pcCmd, bendCmd, rawCmd)

	sendCmd.PersistentFlags().IntP("channel", "c", -1, "Message channel 0-15 (default: global channel)")
}

// messageChannel returns the --channel flag, falling back to the global
// channel when it was not given
func messageChannel(cmd *cobra.Command) int {
	if cmd.Flags().Changed("channel") {
		ch, _ := cmd.Flags().GetInt("channel")
		return ch
	}
	return viper.GetInt("global_channel")
}

func runSend(cmd *cobra.Command, build func(channel int) (midi.Message, error)) {
	msg, err := build(messageChannel(cmd))
	if err != nil {
		exitWithError("Invalid message", err)
	}

	conn, err := openConnection(false)
	if err != nil {
		exitWithError("Connection failed", err)
	}

	fmt.Printf("%s Sending %s to %s\n", styles.InfoStyle.Render("→"), msg, conn.OutputPort().Name)
	log.Debug().Hex("bytes", msg).Str("port", conn.OutputPort().Path).Msg("Sending message")

	if step, err := deliver(conn, msg); err != nil {
		exitWithError(step, err)
	}

	fmt.Printf("%s Sent %d bytes\n", styles.SuccessStyle.Render("✓"), len(msg))
}

// messageSender is the part of *midi.Conn that deliver uses
type messageSender interface {
	Send(msg midi.Message) error
	Close() error
}

// deliver sends msg and closes conn. Closing drains the output, so a close
// failure means the message may not have reached the device. step names
// the stage that failed.
func deliver(conn messageSender, msg midi.Message) (step string, err error) {
	if err := conn.Send(msg); err != nil {
		conn.Close()
		return "Send failed", err
	}
	if err := conn.Close(); err != nil {
		return "Close failed", err
	}
	return "", nil
}

// mustParseDataBytes parses 7-bit data values, exiting on the first bad one
func mustParseDataBytes(args []string) []uint8 {
	data := make([]uint8, len(args))
	for i, arg := range args {
		v, err := parseDataByte(arg)
		if err != nil {
			exitWithError("Invalid data value", err)
		}
		data[i] = v
	}
	return data
}

// parseDataByte accepts decimal, 0x hex or 0o octal values in 0-127
func parseDataByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil || v > 127 {
		return 0, fmt.Errorf("data value %q must be 0-127", s)
	}
	return uint8(v), nil
}

func parseHexBytes(hexStr string) ([]byte, error) {
	// Remove common hex prefixes and whitespace
	hexStr = strings.ReplaceAll(hexStr, " ", "")
	hexStr = strings.ReplaceAll(hexStr, "0x", "")
	hexStr = strings.ReplaceAll(hexStr, "0X", "")

	if hexStr == "" {
		return nil, fmt.Errorf("no data given")
	}
	if len(hexStr)%2 != 0 {
		return nil, fmt.Errorf("hex string must have even length")
	}

	result := make([]byte, 0, len(hexStr)/2)
	for i := 0; i < len(hexStr); i += 2 {
		hexByte := hexStr[i : i+2]
		b, err := strconv.ParseUint(hexByte, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte '%s': %w", hexByte, err)
		}
		result = append(result, byte(b))
	}

	return result, nil
}
