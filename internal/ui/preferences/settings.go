package preferences

import (
	"time"

	"redtomato/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	FocusDuration         time.Duration
	ShortBreakDuration    time.Duration
	LongBreakDuration     time.Duration
	CyclesBeforeLongBreak int

	IdlePauseEnabled bool
	IdlePauseAfter   time.Duration
	Autostart        bool

	// Task is the label recorded with each completed focus phase.
	Task string
}

// DefaultSettings returns default settings for Red Tomato.
func DefaultSettings() Settings {
	return Settings{
		FocusDuration:         model.DefaultFocusDuration,
		ShortBreakDuration:    model.DefaultShortBreakDuration,
		LongBreakDuration:     model.DefaultLongBreakDuration,
		CyclesBeforeLongBreak: model.DefaultCyclesBeforeLong,
		IdlePauseEnabled:      false,
		IdlePauseAfter:        10 * time.Minute,
		Autostart:             false,
	}
}

// PomodoroConfig converts settings to the engine schedule.
func (settings Settings) PomodoroConfig() model.PomodoroConfig {
	return model.PomodoroConfig{
		FocusDuration:         settings.FocusDuration,
		ShortBreakDuration:    settings.ShortBreakDuration,
		LongBreakDuration:     settings.LongBreakDuration,
		CyclesBeforeLongBreak: settings.CyclesBeforeLongBreak,
	}.Normalized()
}
