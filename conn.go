package midi

import (
	"context"
	"sync"
	"time"

	"github.com/allbin/go-midi/rawmidi"
)

// OutputPort is an open port that messages are written to
type OutputPort interface {
	Write(data []byte) (int, error)
	Close() error
}

// InputPort is an open port that raw bytes are read from. Read may return
// (0, nil) when no data is available yet.
type InputPort interface {
	Read(buf []byte) (int, error)
	Close() error
}

// Transport discovers and opens ports. Implementations report failures
// with the rawmidi error types; other errors are boxed into them.
type Transport interface {
	Ports() ([]PortInfo, error)
	OpenOutput(port PortInfo) (OutputPort, error)
	OpenInput(port PortInfo) (InputPort, error)
}

// rawTransport adapts a rawmidi.Client to Transport
type rawTransport struct {
	client *rawmidi.Client
}

// NewTransport initializes the ALSA raw MIDI transport
func NewTransport() (Transport, error) {
	client, err := rawmidi.New()
	if err != nil {
		return nil, initFailure(err)
	}
	return rawTransport{client: client}, nil
}

func (t rawTransport) Ports() ([]PortInfo, error) {
	return t.client.Ports()
}

func (t rawTransport) OpenOutput(port PortInfo) (OutputPort, error) {
	out, err := t.client.OpenOutput(port)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t rawTransport) OpenInput(port PortInfo) (InputPort, error) {
	in, err := t.client.OpenInput(port)
	if err != nil {
		return nil, err
	}
	return in, nil
}

// Event is a message received on the input port
type Event struct {
	Time    time.Time
	Message Message
}

// Conn is a connection to a MIDI controller
type Conn struct {
	mu      sync.RWMutex
	config  Config
	outPort PortInfo
	inPort  PortInfo
	output  OutputPort
	input   InputPort
	events  chan Event
	stop    chan struct{}
	done    chan struct{}
	closed  bool
	readErr error
}

// Open connects to a controller through the ALSA raw MIDI transport
func Open(opts ...Option) (*Conn, error) {
	t, err := NewTransport()
	if err != nil {
		return nil, err
	}
	return Connect(t, opts...)
}

// Connect resolves the configured ports on t and opens them. The input
// port is only opened when WithInputPort was given.
func Connect(t Transport, opts ...Option) (*Conn, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	ports, err := ListPorts(t)
	if err != nil {
		return nil, err
	}

	outPort, err := FindOutputPort(ports, config.OutputPort)
	if err != nil {
		return nil, err
	}

	var inPort PortInfo
	if config.InputPort != "" {
		inPort, err = FindInputPort(ports, config.InputPort)
		if err != nil {
			return nil, err
		}
	}

	output, err := t.OpenOutput(outPort)
	if err != nil {
		return nil, initFailure(err)
	}

	c := &Conn{
		config:  config,
		outPort: outPort,
		output:  output,
	}

	if config.InputPort != "" {
		input, err := t.OpenInput(inPort)
		if err != nil {
			output.Close()
			return nil, initFailure(err)
		}
		c.inPort = inPort
		c.input = input
		c.events = make(chan Event, config.EventBuffer)
		c.stop = make(chan struct{})
		c.done = make(chan struct{})
		go c.readLoop()
	}

	return c, nil
}

// readLoop parses input bytes into events until Close or a read failure.
// Either way the events channel is closed on return; a read failure is kept
// for Err.
func (c *Conn) readLoop() {
	defer close(c.done)
	defer close(c.events)

	var parser Parser
	buf := make([]byte, 1024)
	for {
		select {
		case <-c.stop:
			return
		default:
		}

		n, err := c.input.Read(buf)
		if err != nil {
			select {
			case <-c.stop:
				// Closing the input is what failed the read
			default:
				c.mu.Lock()
				c.readErr = err
				c.mu.Unlock()
			}
			return
		}
		if n == 0 {
			continue
		}

		now := time.Now()
		for _, msg := range parser.Feed(buf[:n]) {
			select {
			case c.events <- Event{Time: now, Message: msg}:
			case <-c.stop:
				return
			}
		}
	}
}

// Err returns the error that ended the input stream. It is nil while the
// stream is running, when no input port was opened, and when the stream
// ended because of Close.
func (c *Conn) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.readErr
}

// Config returns the configuration the connection was opened with
func (c *Conn) Config() Config {
	return c.config
}

// OutputPort returns the port messages are sent to
func (c *Conn) OutputPort() PortInfo {
	return c.outPort
}

// InputPort returns the input port, if one was opened
func (c *Conn) InputPort() (PortInfo, bool) {
	return c.inPort, c.input != nil
}

// Events returns the channel of received messages. It is nil when no input
// port was configured and is closed once the input side shuts down.
func (c *Conn) Events() <-chan Event {
	return c.events
}

// Send writes a message, bounded by the configured write timeout
func (c *Conn) Send(msg Message) error {
	if c.config.WriteTimeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), c.config.WriteTimeout)
		defer cancel()
		return c.SendContext(ctx, msg)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrConnectionClosed
	}

	_, err := c.output.Write(msg)
	return sendFailure(c.outPort.Path, err)
}

// SendContext writes a message, giving up when ctx is done. Cancellation
// is reported as a send failure wrapping the context error.
//
// A write already handed to the device is not aborted: after a timeout the
// message may still arrive, so retrying can deliver it twice.
func (c *Conn) SendContext(ctx context.Context, msg Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case <-ctx.Done():
		return sendFailure(c.outPort.Path, ctx.Err())
	default:
	}

	resultCh := make(chan error, 1)
	go func() {
		_, err := c.output.Write(msg)
		resultCh <- err
	}()

	select {
	case err := <-resultCh:
		return sendFailure(c.outPort.Path, err)
	case <-ctx.Done():
		return sendFailure(c.outPort.Path, ctx.Err())
	}
}

// NoteOn sends a note on message on the given channel
func (c *Conn) NoteOn(channel int, note, velocity uint8) error {
	msg, err := NoteOn(channel, note, velocity)
	if err != nil {
		return err
	}
	return c.Send(msg)
}

// NoteOff sends a note off message on the given channel
func (c *Conn) NoteOff(channel int, note, velocity uint8) error {
	msg, err := NoteOff(channel, note, velocity)
	if err != nil {
		return err
	}
	return c.Send(msg)
}

// ControlChange sends a control change message on the given channel
func (c *Conn) ControlChange(channel int, controller, value uint8) error {
	msg, err := ControlChange(channel, controller, value)
	if err != nil {
		return err
	}
	return c.Send(msg)
}

// ProgramChange sends a program change message on the given channel
func (c *Conn) ProgramChange(channel int, program uint8) error {
	msg, err := ProgramChange(channel, program)
	if err != nil {
		return err
	}
	return c.Send(msg)
}

// PitchBend sends a 14-bit pitch bend message on the given channel
func (c *Conn) PitchBend(channel int, value uint16) error {
	msg, err := PitchBend(channel, value)
	if err != nil {
		return err
	}
	return c.Send(msg)
}

// Close tears the connection down. Every later call, Close included,
// returns ErrConnectionClosed.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrConnectionClosed
	}
	c.closed = true
	c.mu.Unlock()

	if c.input != nil {
		close(c.stop)
		// Input close failures lose no data
		c.input.Close()
		<-c.done
	}

	return sendFailure(c.outPort.Path, c.output.Close())
}
