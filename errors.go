package midi

import (
	"errors"
	"fmt"

	"github.com/allbin/go-midi/rawmidi"
)

// Kind identifies one of the failure modes of a MIDI controller connection.
// The set is closed: every failure in this package maps to exactly one Kind.
type Kind int

const (
	KindInitFailure Kind = iota + 1
	KindPortEnumerationFailure
	KindSendFailure
	KindInputPortNotFound
	KindOutputPortNotFound
	KindInvalidGlobalChannel
	KindInvalidControlMode
	KindInvalidLedMode
	KindInvalidMidiChannel
	KindConnectionClosed
)

// String returns the variant name, e.g. "SendFailure"
func (k Kind) String() string {
	switch k {
	case KindInitFailure:
		return "InitFailure"
	case KindPortEnumerationFailure:
		return "PortEnumerationFailure"
	case KindSendFailure:
		return "SendFailure"
	case KindInputPortNotFound:
		return "InputPortNotFound"
	case KindOutputPortNotFound:
		return "OutputPortNotFound"
	case KindInvalidGlobalChannel:
		return "InvalidGlobalChannel"
	case KindInvalidControlMode:
		return "InvalidControlMode"
	case KindInvalidLedMode:
		return "InvalidLedMode"
	case KindInvalidMidiChannel:
		return "InvalidMidiChannel"
	case KindConnectionClosed:
		return "ConnectionClosed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error type returned by this package. It is a small
// value: copying it copies the kind, the offending value and a reference to
// the wrapped transport failure.
//
// Values must come from the Err* sentinels or the constructors in this
// file. The zero Error has no kind and is never returned by this package.
type Error struct {
	kind  Kind
	value int
	cause error
}

// Kind sentinels for use with errors.Is. Is matches on kind alone, so
// errors.Is(err, ErrInvalidGlobalChannel) holds for any offending channel.
var (
	ErrInitFailure            = Error{kind: KindInitFailure}
	ErrPortEnumerationFailure = Error{kind: KindPortEnumerationFailure}
	ErrSendFailure            = Error{kind: KindSendFailure}
	ErrInputPortNotFound      = Error{kind: KindInputPortNotFound}
	ErrOutputPortNotFound     = Error{kind: KindOutputPortNotFound}
	ErrInvalidGlobalChannel   = Error{kind: KindInvalidGlobalChannel}
	ErrInvalidControlMode     = Error{kind: KindInvalidControlMode}
	ErrInvalidLedMode         = Error{kind: KindInvalidLedMode}
	ErrInvalidMidiChannel     = Error{kind: KindInvalidMidiChannel}
	ErrConnectionClosed       = Error{kind: KindConnectionClosed}
)

// FromInit wraps a transport initialization failure. A nil err gives an
// InitFailure without a cause.
func FromInit(err *rawmidi.InitError) Error {
	if err == nil {
		return ErrInitFailure
	}
	return Error{kind: KindInitFailure, cause: err}
}

// FromPortInfo wraps a transport port enumeration failure. A nil err gives
// a PortEnumerationFailure without a cause.
func FromPortInfo(err *rawmidi.PortInfoError) Error {
	if err == nil {
		return ErrPortEnumerationFailure
	}
	return Error{kind: KindPortEnumerationFailure, cause: err}
}

// FromSend wraps a transport send failure. A nil err gives a SendFailure
// without a cause.
func FromSend(err *rawmidi.SendError) Error {
	if err == nil {
		return ErrSendFailure
	}
	return Error{kind: KindSendFailure, cause: err}
}

// InvalidGlobalChannel reports a rejected global channel
func InvalidGlobalChannel(channel int) Error {
	return Error{kind: KindInvalidGlobalChannel, value: channel}
}

// InvalidControlMode reports a rejected control mode
func InvalidControlMode(mode int) Error {
	return Error{kind: KindInvalidControlMode, value: mode}
}

// InvalidLedMode reports a rejected LED mode
func InvalidLedMode(mode int) Error {
	return Error{kind: KindInvalidLedMode, value: mode}
}

// InvalidMidiChannel reports a rejected per-message channel
func InvalidMidiChannel(channel int) Error {
	return Error{kind: KindInvalidMidiChannel, value: channel}
}

// Kind returns the failure mode
func (e Error) Kind() Kind { return e.kind }

// Value returns the rejected value of the four invalid-parameter kinds, and
// zero for every other kind.
func (e Error) Value() int { return e.value }

// Render returns the category label and message for the error. The label
// "Midir Init" is shared by all three transport kinds; log consumers match
// on it, so port enumeration and send failures keep it too.
func (e Error) Render() (category, message string) {
	switch e.kind {
	case KindInitFailure, KindPortEnumerationFailure, KindSendFailure:
		return "Midir Init", causeText(e.cause)
	case KindInputPortNotFound:
		return "MIDI input ports", "MIDI input device was not found."
	case KindOutputPortNotFound:
		return "MIDI output ports", "MIDI output device was not found."
	case KindInvalidGlobalChannel:
		return "Invalid global MIDI channel",
			fmt.Sprintf("Channel %d is not a valid global channel. Expected 0-15.", e.value)
	case KindInvalidControlMode:
		return "Invalid control mode",
			fmt.Sprintf("%d is not a valid control mode. Expected 0-5.", e.value)
	case KindInvalidLedMode:
		return "Invalid LED mode",
			fmt.Sprintf("%d is not a valid global channel. Expected 0 or 1.", e.value)
	case KindInvalidMidiChannel:
		// The accepted range is 0-15; the text has said 0-16 since the first
		// release and is kept as is.
		return "Invalid MIDI channel",
			fmt.Sprintf("Channel %d is not a valid global channel. Expected 0-16.", e.value)
	case KindConnectionClosed:
		return "Connection closed", "Connection closed"
	default:
		return e.kind.String(), "unclassified error"
	}
}

// Render is the package level form of Error.Render
func Render(e Error) (category, message string) {
	return e.Render()
}

// Error returns "{category} error: {message}"
func (e Error) Error() string {
	category, message := e.Render()
	return category + " error: " + message
}

// Description returns a short description of the failure
func (e Error) Description() string {
	switch e.kind {
	case KindInitFailure, KindPortEnumerationFailure, KindSendFailure:
		return causeText(e.cause)
	case KindInputPortNotFound:
		return "MIDI input device was not found."
	case KindOutputPortNotFound:
		return "MIDI output device was not found."
	case KindInvalidGlobalChannel:
		return "Invalid global MIDI channel."
	case KindInvalidControlMode:
		return "Invalid control mode."
	case KindInvalidLedMode:
		return "Invalid LED mode."
	case KindInvalidMidiChannel:
		return "Invalid MIDI channel."
	case KindConnectionClosed:
		return "Connection closed."
	default:
		return e.kind.String()
	}
}

// Cause returns the wrapped transport failure, or nil for the kinds that
// do not wrap one.
func (e Error) Cause() error {
	switch e.kind {
	case KindInitFailure, KindPortEnumerationFailure, KindSendFailure:
		return e.cause
	default:
		return nil
	}
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e Error) Unwrap() error { return e.Cause() }

// Is reports whether target is an Error of the same kind
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.kind == e.kind
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// The helpers below are applied to the error of every transport call. An
// Error passes through untouched; anything else is boxed into the native
// failure type of that call site before it is wrapped.

func initFailure(err error) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		return e
	}
	var native *rawmidi.InitError
	if !errors.As(err, &native) {
		native = &rawmidi.InitError{Op: "initialize MIDI transport", Err: err}
	}
	return FromInit(native)
}

func portInfoFailure(err error) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		return e
	}
	var native *rawmidi.PortInfoError
	if !errors.As(err, &native) {
		native = &rawmidi.PortInfoError{Path: "MIDI transport", Err: err}
	}
	return FromPortInfo(native)
}

func sendFailure(path string, err error) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		return e
	}
	var native *rawmidi.SendError
	if !errors.As(err, &native) {
		native = &rawmidi.SendError{Path: path, Err: err}
	}
	return FromSend(native)
}
