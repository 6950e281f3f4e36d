package model

import "time"

// Default phase lengths used when a configured value is out of range.
const (
	DefaultFocusDuration      = 25 * time.Minute
	DefaultShortBreakDuration = 5 * time.Minute
	DefaultLongBreakDuration  = 15 * time.Minute
	DefaultCyclesBeforeLong   = 4
)

// PomodoroConfig contains the phase schedule for the timer engine.
type PomodoroConfig struct {
	FocusDuration         time.Duration
	ShortBreakDuration    time.Duration
	LongBreakDuration     time.Duration
	CyclesBeforeLongBreak int
}

// DefaultPomodoroConfig returns the classic 25/5/15 schedule.
func DefaultPomodoroConfig() PomodoroConfig {
	return PomodoroConfig{
		FocusDuration:         DefaultFocusDuration,
		ShortBreakDuration:    DefaultShortBreakDuration,
		LongBreakDuration:     DefaultLongBreakDuration,
		CyclesBeforeLongBreak: DefaultCyclesBeforeLong,
	}
}

// Normalized returns a copy with out-of-range values replaced by defaults.
// Durations must be at least one second, the cycle count at least one.
func (config PomodoroConfig) Normalized() PomodoroConfig {
	if config.FocusDuration < time.Second {
		config.FocusDuration = DefaultFocusDuration
	}
	if config.ShortBreakDuration < time.Second {
		config.ShortBreakDuration = DefaultShortBreakDuration
	}
	if config.LongBreakDuration < time.Second {
		config.LongBreakDuration = DefaultLongBreakDuration
	}
	if config.CyclesBeforeLongBreak < 1 {
		config.CyclesBeforeLongBreak = DefaultCyclesBeforeLong
	}
	return config
}
