// Package midi provides a small, idiomatic Go library for talking to MIDI
// controllers over the Linux ALSA raw MIDI interface.
//
// The package owns a single error type, Error, that classifies every
// failure that can occur while discovering, connecting to and sending to a
// device, and the validation rules for device parameters (global channel,
// control mode, LED mode) and per-message channels.
//
// # Basic Usage
//
// Connect to the first raw MIDI device and send a control change:
//
//	conn, err := midi.Open()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	err = conn.ControlChange(0, 7, 100)
//
// # Configuration Options
//
// Use functional options to select ports and device parameters:
//
//	conn, err := midi.Open(
//	    midi.WithOutputPort("X-TOUCH"),
//	    midi.WithInputPort("X-TOUCH"),
//	    midi.WithGlobalChannel(10),
//	    midi.WithLedMode(midi.LedModeOn),
//	)
//
// A port selector matches a device path, a port name, an index into the
// port list, or a case-insensitive substring of the name.
//
// # Receiving
//
// When an input port is configured, incoming bytes are parsed into
// messages and delivered on Events:
//
//	for ev := range conn.Events() {
//	    fmt.Println(ev.Time.Format("15:04:05.000"), ev.Message)
//	}
//
// # Error Handling
//
// Every error returned by this package is an Error. Its Kind tells the
// failure modes apart, and the kind sentinels work with errors.Is:
//
//	if errors.Is(err, midi.ErrOutputPortNotFound) {
//	    // No matching device plugged in
//	}
//
// Transport failures wrap the original rawmidi error, reachable through
// Cause, errors.Unwrap or errors.As:
//
//	var sendErr *rawmidi.SendError
//	if errors.As(err, &sendErr) {
//	    fmt.Println("write to", sendErr.Path, "failed:", sendErr.Err)
//	}
//
// Rejected parameters keep the offending value:
//
//	_, err := midi.ValidateGlobalChannel(16)
//	var e midi.Error
//	errors.As(err, &e)
//	e.Value() // 16
//	e.Error() // "Invalid global MIDI channel error: Channel 16 is not a valid global channel. Expected 0-15."
//
// Error values are immutable and safe to share between goroutines.
//
// # Default Configuration
//
//   - GlobalChannel: 0
//   - ControlMode: 0
//   - LedMode: off
//   - WriteTimeout: 1 second
//   - EventBuffer: 256 events
package midi
