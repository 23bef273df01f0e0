package cmd

import (
	"io"
	"sync"

	"github.com/allbin/go-midi"
)

type stubOutput struct {
	mu       sync.Mutex
	written  []midi.Message
	writeErr error
	closeErr error
	closed   bool
}

func (o *stubOutput) Write(data []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.writeErr != nil {
		return 0, o.writeErr
	}
	o.written = append(o.written, append(midi.Message(nil), data...))
	return len(data), nil
}

func (o *stubOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return o.closeErr
}

// stubInput fails every read with readErr, or blocks until closed
type stubInput struct {
	readErr error
	done    chan struct{}
	once    sync.Once
}

func (in *stubInput) Read([]byte) (int, error) {
	if in.readErr != nil {
		return 0, in.readErr
	}
	<-in.done
	return 0, io.EOF
}

func (in *stubInput) Close() error {
	in.once.Do(func() { close(in.done) })
	return nil
}

type stubTransport struct {
	output *stubOutput
	input  *stubInput
}

func newStubTransport() *stubTransport {
	return &stubTransport{
		output: &stubOutput{},
		input:  &stubInput{done: make(chan struct{})},
	}
}

func (s *stubTransport) Ports() ([]midi.PortInfo, error) {
	return cmdTestPorts, nil
}

func (s *stubTransport) OpenOutput(midi.PortInfo) (midi.OutputPort, error) {
	return s.output, nil
}

func (s *stubTransport) OpenInput(midi.PortInfo) (midi.InputPort, error) {
	return s.input, nil
}
