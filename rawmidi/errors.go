package rawmidi

import (
	"errors"
	"fmt"
)

var (
	// ErrShortWrite is reported inside a SendError when the device accepted
	// fewer bytes than the message length.
	ErrShortWrite = errors.New("short write to raw MIDI device")
	// ErrClosed is returned by Read and Write on a closed device handle.
	ErrClosed = errors.New("raw MIDI device is closed")
)

// InitError reports that the transport, or a device handle, could not be set up.
type InitError struct {
	Op   string
	Path string
	Err  error
}

func (e *InitError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("could not %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// PortInfoError reports a failure while enumerating or describing ports.
type PortInfoError struct {
	Path string
	Err  error
}

func (e *PortInfoError) Error() string {
	return fmt.Sprintf("could not retrieve port info from %s: %v", e.Path, e.Err)
}

func (e *PortInfoError) Unwrap() error { return e.Err }

// SendError reports a failed write to an output device.
type SendError struct {
	Path string
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("error while sending MIDI message to %s: %v", e.Path, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }
