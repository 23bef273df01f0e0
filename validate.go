package midi

// Legal ranges of the device parameters
const (
	MaxChannel     = 15
	MaxControlMode = 5
	LedModeOff     = 0
	LedModeOn      = 1
)

// ValidateGlobalChannel accepts a device-wide channel in 0-15
func ValidateGlobalChannel(channel int) (int, error) {
	if channel < 0 || channel > MaxChannel {
		return 0, InvalidGlobalChannel(channel)
	}
	return channel, nil
}

// ValidateControlMode accepts a control mode in 0-5
func ValidateControlMode(mode int) (int, error) {
	if mode < 0 || mode > MaxControlMode {
		return 0, InvalidControlMode(mode)
	}
	return mode, nil
}

// ValidateLedMode accepts LedModeOff or LedModeOn
func ValidateLedMode(mode int) (int, error) {
	if mode != LedModeOff && mode != LedModeOn {
		return 0, InvalidLedMode(mode)
	}
	return mode, nil
}

// ValidateMidiChannel accepts a per-message channel in 0-15
func ValidateMidiChannel(channel int) (int, error) {
	if channel < 0 || channel > MaxChannel {
		return 0, InvalidMidiChannel(channel)
	}
	return channel, nil
}
