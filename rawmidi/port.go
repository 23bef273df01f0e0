package rawmidi

import (
	"errors"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// SNDRV_RAWMIDI_IOCTL_DRAIN, _IOW('W', 0x31, int) with the asm-generic
// ioctl encoding
const ioctlDrain = 0x40045731

// SNDRV_RAWMIDI_STREAM_OUTPUT
const streamOutput = 0

// Poll interval for input reads, in milliseconds. Bounds how long Close
// waits for an in-flight Read.
const pollTimeoutMs = 100

// ErrNotDirectory is wrapped by New when the device path exists but is not
// a directory.
var ErrNotDirectory = errors.New("not a directory")

// Client is the entry point to the raw MIDI transport
type Client struct {
	dir string
}

// New checks that the ALSA device directory is present and returns a client
// bound to it.
func New() (*Client, error) {
	return newClient(devDir)
}

func newClient(dir string) (*Client, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &InitError{Op: "initialize ALSA raw MIDI in", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &InitError{Op: "initialize ALSA raw MIDI in", Path: dir, Err: ErrNotDirectory}
	}
	return &Client{dir: dir}, nil
}

// Ports lists the raw MIDI devices under the client's device directory
func (c *Client) Ports() ([]PortInfo, error) {
	return listPortsIn(c.dir)
}

// OpenOutput opens a device for writing
func (c *Client) OpenOutput(port PortInfo) (*Output, error) {
	fd, err := unix.Open(port.Path, unix.O_WRONLY|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &InitError{Op: "open output port", Path: port.Path, Err: err}
	}
	return &Output{fd: fd, path: port.Path}, nil
}

// OpenInput opens a device for reading. Reads never block for longer than
// the internal poll interval.
func (c *Client) OpenInput(port PortInfo) (*Input, error) {
	fd, err := unix.Open(port.Path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &InitError{Op: "open input port", Path: port.Path, Err: err}
	}
	return &Input{fd: fd, path: port.Path}, nil
}

// Output is an open raw MIDI device used for sending
type Output struct {
	mu     sync.Mutex
	fd     int
	path   string
	closed bool
}

// Write sends data to the device. A write is either complete or reported
// as a SendError.
func (o *Output) Write(data []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return 0, &SendError{Path: o.path, Err: ErrClosed}
	}

	n, err := unix.Write(o.fd, data)
	if err != nil {
		return 0, &SendError{Path: o.path, Err: err}
	}
	if n < len(data) {
		return n, &SendError{Path: o.path, Err: ErrShortWrite}
	}
	return n, nil
}

// Close waits for pending output to be transmitted and closes the device
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return &SendError{Path: o.path, Err: ErrClosed}
	}
	o.closed = true

	// Not every driver implements drain; the close below still flushes.
	drainErr := unix.IoctlSetPointerInt(o.fd, ioctlDrain, streamOutput)
	if err := unix.Close(o.fd); err != nil {
		return &SendError{Path: o.path, Err: err}
	}
	if drainErr != nil && !errors.Is(drainErr, unix.ENOTTY) && !errors.Is(drainErr, unix.EINVAL) {
		return &SendError{Path: o.path, Err: drainErr}
	}
	return nil
}

// Input is an open raw MIDI device used for receiving
type Input struct {
	mu     sync.RWMutex
	fd     int
	path   string
	closed bool
}

// Read returns whatever bytes are available. It returns (0, nil) when no
// data arrived within the poll interval and io.EOF once the device is gone.
func (in *Input) Read(buf []byte) (int, error) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	if in.closed {
		return 0, ErrClosed
	}

	fds := []unix.PollFd{{Fd: int32(in.fd), Events: unix.POLLIN}}
	ready, err := unix.Poll(fds, pollTimeoutMs)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, err
	}
	if ready == 0 {
		return 0, nil
	}
	if fds[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
		return 0, io.EOF
	}

	n, err := unix.Read(in.fd, buf)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return 0, nil
		}
		if errors.Is(err, unix.ENODEV) {
			return 0, io.EOF
		}
		return 0, err
	}
	return n, nil
}

// Close closes the device. It waits for an in-flight Read to return.
func (in *Input) Close() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.closed {
		return ErrClosed
	}
	in.closed = true
	return unix.Close(in.fd)
}
