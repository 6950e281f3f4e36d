package pomodoro

// Phase represents the purpose of the current timer interval.
type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Valid reports whether the phase is one of the known values.
func (phase Phase) Valid() bool {
	switch phase {
	case PhaseFocus, PhaseShortBreak, PhaseLongBreak:
		return true
	}
	return false
}

// Status represents the run state of the timer.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// Valid reports whether the status is one of the known values.
func (status Status) Valid() bool {
	switch status {
	case StatusIdle, StatusRunning, StatusPaused:
		return true
	}
	return false
}
