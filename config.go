package midi

import (
	"errors"
	"time"
)

// ErrInvalidConfig is returned by options given a value that is not a
// device parameter, such as a negative timeout.
var ErrInvalidConfig = errors.New("invalid MIDI connection configuration")

// Config holds the configuration for a controller connection
type Config struct {
	InputPort     string // Port selector; empty disables input
	OutputPort    string // Port selector; empty picks the first port
	GlobalChannel int
	ControlMode   int
	LedMode       int
	WriteTimeout  time.Duration // Upper bound for Send
	EventBuffer   int           // Capacity of the Events channel
}

// Option is a functional option for configuring a connection
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		GlobalChannel: 0,
		ControlMode:   0,
		LedMode:       LedModeOff,
		WriteTimeout:  time.Second,
		EventBuffer:   256,
	}
}

// Validate re-checks the device parameters of a config built by hand
func (c Config) Validate() error {
	if _, err := ValidateGlobalChannel(c.GlobalChannel); err != nil {
		return err
	}
	if _, err := ValidateControlMode(c.ControlMode); err != nil {
		return err
	}
	if _, err := ValidateLedMode(c.LedMode); err != nil {
		return err
	}
	return nil
}

// WithInputPort selects the input port and enables the Events channel
func WithInputPort(selector string) Option {
	return func(c *Config) error {
		c.InputPort = selector
		return nil
	}
}

// WithOutputPort selects the output port
func WithOutputPort(selector string) Option {
	return func(c *Config) error {
		c.OutputPort = selector
		return nil
	}
}

// WithGlobalChannel sets the device-wide channel (0-15)
func WithGlobalChannel(channel int) Option {
	return func(c *Config) error {
		ch, err := ValidateGlobalChannel(channel)
		if err != nil {
			return err
		}
		c.GlobalChannel = ch
		return nil
	}
}

// WithControlMode sets the control mode (0-5)
func WithControlMode(mode int) Option {
	return func(c *Config) error {
		m, err := ValidateControlMode(mode)
		if err != nil {
			return err
		}
		c.ControlMode = m
		return nil
	}
}

// WithLedMode sets the LED mode (0 or 1)
func WithLedMode(mode int) Option {
	return func(c *Config) error {
		m, err := ValidateLedMode(mode)
		if err != nil {
			return err
		}
		c.LedMode = m
		return nil
	}
}

// WithWriteTimeout bounds how long Send waits for the device. Zero means
// no bound.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 {
			return ErrInvalidConfig
		}
		c.WriteTimeout = timeout
		return nil
	}
}

// WithEventBuffer sets the capacity of the Events channel
func WithEventBuffer(size int) Option {
	return func(c *Config) error {
		if size <= 0 {
			return ErrInvalidConfig
		}
		c.EventBuffer = size
		return nil
	}
}
