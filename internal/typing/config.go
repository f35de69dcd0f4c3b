// Package typing simulates human keyboard input: cadence, punctuation pauses,
// typos with self-correction and quoted-string awareness.
package typing

import (
	"math"
	"time"
)

const (
	defaultWPM           = 100
	defaultAccuracy      = 1.0
	defaultBackspaceHold = 100 * time.Millisecond
	defaultCorrection    = 0.4
	defaultAbortKey      = KeyEscape
	defaultLanguage      = "plaintext"
)

// Config defines a typing session. It is passed by value and never mutated
// by the engine.
type Config struct {
	WPM           float64
	Accuracy      float64
	BackspaceHold time.Duration
	Correction    float64
	StartKey      string
	AbortKey      string
	CodeMode      bool
	Language      string

	SmartQuotes bool

	// Reserved formatting toggles. They are carried through to the emission
	// policy but do not change output or timing.
	AutoIndent    bool
	SmartBrackets bool
	AutoComplete  bool
	ShiftEnter    bool
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		WPM:           defaultWPM,
		Accuracy:      defaultAccuracy,
		BackspaceHold: defaultBackspaceHold,
		Correction:    defaultCorrection,
		AbortKey:      defaultAbortKey,
		Language:      defaultLanguage,
		SmartQuotes:   true,
		SmartBrackets: true,
		AutoComplete:  true,
	}
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	if _, err := BaseDelay(c.WPM); err != nil {
		return err
	}
	if !inUnitRange(c.Accuracy) {
		return &ConfigError{Field: "accuracy", Reason: "must be between 0 and 1"}
	}
	if !inUnitRange(c.Correction) {
		return &ConfigError{Field: "correction", Reason: "must be between 0 and 1"}
	}
	if c.BackspaceHold < 0 {
		return &ConfigError{Field: "backspace-hold", Reason: "must be >= 0"}
	}
	return nil
}

func inUnitRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
