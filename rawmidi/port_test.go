package rawmidi

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewClientMissingDirectory(t *testing.T) {
	_, err := newClient("/nonexistent/snd")
	if err == nil {
		t.Fatal("Expected error for missing device directory")
	}

	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("Expected *InitError, got %T", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist in chain, got %v", initErr.Err)
	}
}

func TestNewClientNotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "snd")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	_, err := newClient(file)
	if !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Expected ErrNotDirectory, got %v", err)
	}
}

func TestOpenNonExistentDevice(t *testing.T) {
	client, err := newClient(t.TempDir())
	if err != nil {
		t.Fatalf("newClient failed: %v", err)
	}

	port := PortInfo{Path: "/dev/snd/midiC99D99"}

	_, err = client.OpenOutput(port)
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("Expected *InitError from OpenOutput, got %T", err)
	}
	if initErr.Path != port.Path {
		t.Errorf("Expected path %s, got %s", port.Path, initErr.Path)
	}

	_, err = client.OpenInput(port)
	if !errors.As(err, &initErr) {
		t.Fatalf("Expected *InitError from OpenInput, got %T", err)
	}
}

func TestOutputWriteAndClose(t *testing.T) {
	client, err := newClient(t.TempDir())
	if err != nil {
		t.Fatalf("newClient failed: %v", err)
	}

	// /dev/null accepts writes and rejects the drain ioctl with ENOTTY
	out, err := client.OpenOutput(PortInfo{Path: "/dev/null"})
	if err != nil {
		t.Fatalf("OpenOutput failed: %v", err)
	}

	n, err := out.Write([]byte{0x90, 0x3c, 0x7f})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 bytes written, got %d", n)
	}

	if err := out.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	_, err = out.Write([]byte{0x80, 0x3c, 0x00})
	var sendErr *SendError
	if !errors.As(err, &sendErr) {
		t.Fatalf("Expected *SendError after close, got %T", err)
	}
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed in chain, got %v", sendErr.Err)
	}

	if err := out.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed on second close, got %v", err)
	}
}

func TestInputReadAfterClose(t *testing.T) {
	client, err := newClient(t.TempDir())
	if err != nil {
		t.Fatalf("newClient failed: %v", err)
	}

	in, err := client.OpenInput(PortInfo{Path: "/dev/null"})
	if err != nil {
		t.Fatalf("OpenInput failed: %v", err)
	}
	if err := in.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	_, err = in.Read(make([]byte, 16))
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		err      error
		expected string
	}{
		{&InitError{Op: "initialize ALSA raw MIDI in", Path: "/dev/snd", Err: cause}, "could not initialize ALSA raw MIDI in /dev/snd: boom"},
		{&InitError{Op: "initialize", Err: cause}, "could not initialize: boom"},
		{&PortInfoError{Path: "/dev/snd", Err: cause}, "could not retrieve port info from /dev/snd: boom"},
		{&SendError{Path: "/dev/snd/midiC1D0", Err: cause}, "error while sending MIDI message to /dev/snd/midiC1D0: boom"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.expected {
			t.Errorf("Error() = %q, expected %q", got, tt.expected)
		}
		if !errors.Is(tt.err, cause) {
			t.Errorf("%T does not unwrap to its cause", tt.err)
		}
		if !strings.Contains(tt.err.Error(), "boom") {
			t.Errorf("%T message lost the cause text", tt.err)
		}
	}
}
