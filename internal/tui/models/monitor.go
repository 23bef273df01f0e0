package models

import (
	"context"
	"sync"

	"github.com/allbin/go-midi"
)

// ConnectionStatusMsg reports the outcome of connecting, or the end of
// the input stream
type ConnectionStatusMsg struct {
	Connected bool
	Error     error
}

// EventMsg carries one received MIDI event into the program
type EventMsg struct {
	Event midi.Event
}

// MonitorModel holds the connection state shared by the monitor view and
// its reader goroutine
type MonitorModel struct {
	conn     *midi.Conn
	selector string

	connected bool
	err       error
	ready     bool
	paused    bool

	cancel context.CancelFunc
	ctx    context.Context
	mu     sync.RWMutex
}

func NewMonitorModel(selector string) *MonitorModel {
	ctx, cancel := context.WithCancel(context.Background())

	return &MonitorModel{
		selector: selector,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (m *MonitorModel) GetConn() *midi.Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conn
}

// SetConn stores conn unless Cleanup already ran. On false the caller
// still owns conn and must close it.
func (m *MonitorModel) SetConn(conn *midi.Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctx.Err() != nil {
		return false
	}
	m.conn = conn
	return true
}

func (m *MonitorModel) GetSelector() string {
	return m.selector
}

func (m *MonitorModel) IsConnected() bool {
	return m.connected
}

func (m *MonitorModel) SetConnected(connected bool) {
	m.connected = connected
}

func (m *MonitorModel) GetError() error {
	return m.err
}

func (m *MonitorModel) SetError(err error) {
	m.err = err
}

func (m *MonitorModel) IsReady() bool {
	return m.ready
}

func (m *MonitorModel) SetReady(ready bool) {
	m.ready = ready
}

func (m *MonitorModel) IsPaused() bool {
	return m.paused
}

func (m *MonitorModel) TogglePaused() bool {
	m.paused = !m.paused
	return m.paused
}

func (m *MonitorModel) GetContext() context.Context {
	return m.ctx
}

// Cleanup stops the reader goroutine and closes the connection
func (m *MonitorModel) Cleanup() {
	if m.cancel != nil {
		m.cancel()
	}

	m.mu.Lock()
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.mu.Unlock()
}
