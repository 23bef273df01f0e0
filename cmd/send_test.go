package cmd

import (
	"errors"
	"testing"

	"github.com/allbin/go-midi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataByte(t *testing.T) {
	tests := []struct {
		in      string
		want    uint8
		wantErr bool
	}{
		{"0", 0, false},
		{"60", 60, false},
		{"127", 127, false},
		{"0x7F", 127, false},
		{"128", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDataByte(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHexBytes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr bool
	}{
		{"spaced", "F0 7E 7F 06 01 F7", []byte{0xF0, 0x7E, 0x7F, 0x06, 0x01, 0xF7}, false},
		{"continuous", "903C40", []byte{0x90, 0x3C, 0x40}, false},
		{"prefixed", "0xB0 0x07 0x64", []byte{0xB0, 0x07, 0x64}, false},
		{"lowercase", "c005", []byte{0xC0, 0x05}, false},
		{"odd length", "903", nil, true},
		{"bad digit", "9G", nil, true},
		{"empty", "  ", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHexBytes(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSendCommandTree(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range sendCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"note-on", "note-off", "cc", "pc", "bend", "raw"} {
		assert.True(t, names[want], "missing send subcommand %s", want)
	}

	flag := sendCmd.PersistentFlags().Lookup("channel")
	require.NotNil(t, flag)
	assert.Equal(t, "-1", flag.DefValue)
}

func TestDeliver(t *testing.T) {
	msg := midi.Message{0x90, 0x3C, 0x64}

	t.Run("sent and closed", func(t *testing.T) {
		st := newStubTransport()
		conn, err := midi.Connect(st)
		require.NoError(t, err)

		step, err := deliver(conn, msg)
		require.NoError(t, err)
		assert.Empty(t, step)
		assert.Equal(t, []midi.Message{msg}, st.output.written)
		assert.True(t, st.output.closed)
	})

	t.Run("close failure is reported", func(t *testing.T) {
		st := newStubTransport()
		st.output.closeErr = errors.New("drain failed")
		conn, err := midi.Connect(st)
		require.NoError(t, err)

		step, err := deliver(conn, msg)
		assert.Equal(t, "Close failed", step)
		assert.ErrorIs(t, err, midi.ErrSendFailure)
		assert.Contains(t, formatError(err), "drain failed")
	})

	t.Run("send failure still closes", func(t *testing.T) {
		st := newStubTransport()
		st.output.writeErr = errors.New("no such device")
		conn, err := midi.Connect(st, midi.WithWriteTimeout(0))
		require.NoError(t, err)

		step, err := deliver(conn, msg)
		assert.Equal(t, "Send failed", step)
		assert.ErrorIs(t, err, midi.ErrSendFailure)
		assert.True(t, st.output.closed)
	})
}
