package cmd

import (
	"errors"
	"testing"

	"github.com/allbin/go-midi"
	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "global channel",
			err:  midi.InvalidGlobalChannel(16),
			want: []string{"Invalid global MIDI channel", " error: ", "Channel 16 is not a valid global channel. Expected 0-15."},
		},
		{
			name: "midi channel keeps its range text",
			err:  midi.InvalidMidiChannel(20),
			want: []string{"Invalid MIDI channel", "Channel 20 is not a valid global channel. Expected 0-16."},
		},
		{
			name: "wrapped",
			err:  errors.Join(errors.New("opening"), midi.ErrOutputPortNotFound),
			want: []string{"MIDI output ports", "MIDI output device was not found."},
		},
		{
			name: "foreign",
			err:  errors.New("plain failure"),
			want: []string{"plain failure"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatError(tt.err)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestValidateSettings(t *testing.T) {
	results := validateSettings(15, 6, 1, []int{0, 16})

	assert.Len(t, results, 5)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, midi.ErrInvalidControlMode)
	assert.NoError(t, results[2].Err)
	assert.NoError(t, results[3].Err)
	assert.ErrorIs(t, results[4].Err, midi.ErrInvalidMidiChannel)
	assert.Equal(t, 16, results[4].Value)
}
