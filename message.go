package midi

import (
	"fmt"
	"strings"
)

// Channel voice message types (high nibble of the status byte)
const (
	TypeNoteOff           byte = 0x80
	TypeNoteOn            byte = 0x90
	TypePolyAftertouch    byte = 0xA0
	TypeControlChange     byte = 0xB0
	TypeProgramChange     byte = 0xC0
	TypeChannelAftertouch byte = 0xD0
	TypePitchBend         byte = 0xE0
)

// System message status bytes
const (
	SysExStart  byte = 0xF0
	SysExEnd    byte = 0xF7
	TimingClock byte = 0xF8
	Start       byte = 0xFA
	Continue    byte = 0xFB
	Stop        byte = 0xFC
	ActiveSense byte = 0xFE
	SystemReset byte = 0xFF
)

const maxDataValue = 0x7F

// Message is one complete MIDI message as it appears on the wire
type Message []byte

// Status returns the status byte, or 0 for an empty message
func (m Message) Status() byte {
	if len(m) == 0 {
		return 0
	}
	return m[0]
}

// Type returns the message type. For channel messages the channel bits are
// cleared; system messages return their full status byte.
func (m Message) Type() byte {
	s := m.Status()
	if s >= 0xF0 {
		return s
	}
	return s & 0xF0
}

// Channel returns the channel of a channel message, and -1 for system messages
func (m Message) Channel() int {
	s := m.Status()
	if s < 0x80 || s >= 0xF0 {
		return -1
	}
	return int(s & 0x0F)
}

// String formats the message as its name, channel and bytes in hex
func (m Message) String() string {
	var name string
	switch m.Type() {
	case TypeNoteOff:
		name = "NoteOff"
	case TypeNoteOn:
		name = "NoteOn"
	case TypePolyAftertouch:
		name = "PolyAftertouch"
	case TypeControlChange:
		name = "ControlChange"
	case TypeProgramChange:
		name = "ProgramChange"
	case TypeChannelAftertouch:
		name = "ChannelAftertouch"
	case TypePitchBend:
		name = "PitchBend"
	case SysExStart:
		name = "SysEx"
	case TimingClock:
		name = "Clock"
	case Start:
		name = "Start"
	case Continue:
		name = "Continue"
	case Stop:
		name = "Stop"
	case ActiveSense:
		name = "ActiveSense"
	case SystemReset:
		name = "Reset"
	default:
		name = "System"
	}

	hex := make([]string, len(m))
	for i, b := range m {
		hex[i] = fmt.Sprintf("%02X", b)
	}
	if ch := m.Channel(); ch >= 0 {
		return fmt.Sprintf("%s ch=%d [%s]", name, ch, strings.Join(hex, " "))
	}
	return fmt.Sprintf("%s [%s]", name, strings.Join(hex, " "))
}

// channelMessage builds a channel voice message. Data bytes are masked to
// seven bits.
func channelMessage(msgType byte, channel int, data ...byte) (Message, error) {
	ch, err := ValidateMidiChannel(channel)
	if err != nil {
		return nil, err
	}
	msg := make(Message, 0, 1+len(data))
	msg = append(msg, msgType|byte(ch))
	for _, b := range data {
		msg = append(msg, b&maxDataValue)
	}
	return msg, nil
}

// NoteOff builds a note off message
func NoteOff(channel int, note, velocity uint8) (Message, error) {
	return channelMessage(TypeNoteOff, channel, note, velocity)
}

// NoteOn builds a note on message
func NoteOn(channel int, note, velocity uint8) (Message, error) {
	return channelMessage(TypeNoteOn, channel, note, velocity)
}

// PolyAftertouch builds a per-note pressure message
func PolyAftertouch(channel int, note, pressure uint8) (Message, error) {
	return channelMessage(TypePolyAftertouch, channel, note, pressure)
}

// ControlChange builds a control change message
func ControlChange(channel int, controller, value uint8) (Message, error) {
	return channelMessage(TypeControlChange, channel, controller, value)
}

// ProgramChange builds a program change message
func ProgramChange(channel int, program uint8) (Message, error) {
	return channelMessage(TypeProgramChange, channel, program)
}

// ChannelAftertouch builds a channel pressure message
func ChannelAftertouch(channel int, pressure uint8) (Message, error) {
	return channelMessage(TypeChannelAftertouch, channel, pressure)
}

// PitchBend builds a pitch bend message from a 14-bit value, 8192 being
// the center position.
func PitchBend(channel int, value uint16) (Message, error) {
	return channelMessage(TypePitchBend, channel, byte(value&maxDataValue), byte(value>>7))
}

// dataLength returns how many data bytes follow a status byte, or -1 for
// SysEx which runs until SysExEnd.
func dataLength(status byte) int {
	switch {
	case status < 0xF0:
		switch status & 0xF0 {
		case TypeProgramChange, TypeChannelAftertouch:
			return 1
		default:
			return 2
		}
	case status == SysExStart:
		return -1
	case status == 0xF1, status == 0xF3: // time code quarter frame, song select
		return 1
	case status == 0xF2: // song position
		return 2
	default:
		return 0
	}
}

// Parser splits a raw byte stream into messages. It keeps running status
// across calls to Feed and is not safe for concurrent use.
type Parser struct {
	status  byte
	pending Message
	inSysEx bool
}

// Feed consumes data and returns the messages completed by it
func (p *Parser) Feed(data []byte) []Message {
	var out []Message
	for _, b := range data {
		switch {
		case b >= TimingClock:
			// Real-time bytes may appear anywhere, even inside SysEx
			out = append(out, Message{b})

		case p.inSysEx:
			if b == SysExEnd {
				p.pending = append(p.pending, b)
				out = append(out, p.pending)
				p.pending = nil
				p.inSysEx = false
				continue
			}
			if b&0x80 != 0 {
				// Unterminated SysEx; drop it and reparse b as a new status
				p.pending = nil
				p.inSysEx = false
				out = append(out, p.Feed([]byte{b})...)
				continue
			}
			p.pending = append(p.pending, b)

		case b == SysExStart:
			p.inSysEx = true
			p.status = 0
			p.pending = Message{b}

		case b&0x80 != 0:
			p.pending = Message{b}
			if b < 0xF0 {
				p.status = b
			} else {
				p.status = 0
			}
			if dataLength(b) == 0 {
				out = append(out, p.pending)
				p.pending = nil
			}

		default:
			if len(p.pending) == 0 {
				if p.status == 0 {
					continue // stray data byte
				}
				p.pending = Message{p.status}
			}
			p.pending = append(p.pending, b)
			if len(p.pending)-1 == dataLength(p.pending[0]) {
				out = append(out, p.pending)
				p.pending = nil
			}
		}
	}
	return out
}

// Reset drops any partial message and the running status
func (p *Parser) Reset() {
	*p = Parser{}
}
