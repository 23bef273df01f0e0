package models

import (
	"errors"
	"testing"

	"github.com/allbin/go-midi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorModelState(t *testing.T) {
	m := NewMonitorModel("X-TOUCH")

	assert.Equal(t, "X-TOUCH", m.GetSelector())
	assert.False(t, m.IsConnected())
	assert.False(t, m.IsPaused())
	assert.Nil(t, m.GetConn())

	assert.True(t, m.TogglePaused())
	assert.False(t, m.TogglePaused())

	m.SetConnected(true)
	m.SetReady(true)
	assert.True(t, m.IsConnected())
	assert.True(t, m.IsReady())
}

func TestMonitorModelCleanupCancelsContext(t *testing.T) {
	m := NewMonitorModel("")
	m.Cleanup()

	select {
	case <-m.GetContext().Done():
	default:
		t.Fatal("context not cancelled by Cleanup")
	}
}

type nopOutput struct{ closed bool }

func (o *nopOutput) Write(data []byte) (int, error) { return len(data), nil }
func (o *nopOutput) Close() error { o.closed = true; return nil }

type nopTransport struct{ output *nopOutput }

func (t *nopTransport) Ports() ([]midi.PortInfo, error) {
	return []midi.PortInfo{{Name: "X-TOUCH MINI", Path: "/dev/snd/midiC1D0", Card: 1}}, nil
}

func (t *nopTransport) OpenOutput(midi.PortInfo) (midi.OutputPort, error) {
	return t.output, nil
}

func (t *nopTransport) OpenInput(midi.PortInfo) (midi.InputPort, error) {
	return nil, errors.New("no input")
}

func TestSetConnAfterCleanup(t *testing.T) {
	tr := &nopTransport{output: &nopOutput{}}
	conn, err := midi.Connect(tr)
	require.NoError(t, err)

	m := NewMonitorModel("X-TOUCH")
	m.Cleanup()

	assert.False(t, m.SetConn(conn))
	assert.Nil(t, m.GetConn())
	assert.False(t, tr.output.closed, "rejected connection stays with the caller")
	require.NoError(t, conn.Close())
}

func TestCleanupClosesStoredConn(t *testing.T) {
	tr := &nopTransport{output: &nopOutput{}}
	conn, err := midi.Connect(tr)
	require.NoError(t, err)

	m := NewMonitorModel("X-TOUCH")
	require.True(t, m.SetConn(conn))
	assert.Same(t, conn, m.GetConn())

	m.Cleanup()
	assert.True(t, tr.output.closed)
	assert.Nil(t, m.GetConn())
}
