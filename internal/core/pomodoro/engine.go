// Package pomodoro implements the focus/break timer state machine.
//
// The engine never reads the clock and owns no goroutine: the host calls
// Tick with the current wall time once per UI frame and issues commands
// from the same goroutine. Phase completions surface as one-shot fields
// that the host drains with the Take* accessors; at most one completion
// is pending at a time and a later completion overwrites an undrained one.
package pomodoro

import (
	"fmt"
	"time"

	"redtomato/internal/core/model"
)

// Engine tracks the current phase, its countdown and the completed
// focus-cycle count.
type Engine struct {
	config model.PomodoroConfig

	phase            Phase
	status           Status
	remainingSeconds int64
	totalSeconds     int64
	completedCycles  int
	lastTick         time.Time

	pendingFinishedPhase Phase
	hasFinishedPhase     bool
	pendingFocusSeconds  int64
	hasFocusSeconds      bool
}

// Snapshot is the serializable subset of engine state.
type Snapshot struct {
	Phase                Phase
	Status               Status
	RemainingSeconds     int64
	TotalSeconds         int64
	CompletedFocusCycles int
}

// New creates an idle engine in the focus phase.
func New(config model.PomodoroConfig) *Engine {
	return &Engine{
		config: config.Normalized(),
		phase:  PhaseFocus,
		status: StatusIdle,
	}
}

// Restore creates an engine from a persisted snapshot. Snapshots that
// violate the state invariants fall back to the fresh idle state; the
// caller is expected to have demoted a Running status to Paused already.
func Restore(config model.PomodoroConfig, snapshot Snapshot) *Engine {
	engine := New(config)
	if !snapshot.Phase.Valid() || !snapshot.Status.Valid() {
		return engine
	}
	if snapshot.RemainingSeconds < 0 || snapshot.TotalSeconds < 0 ||
		snapshot.RemainingSeconds > snapshot.TotalSeconds ||
		snapshot.CompletedFocusCycles < 0 {
		return engine
	}

	engine.phase = snapshot.Phase
	engine.completedCycles = snapshot.CompletedFocusCycles
	if snapshot.Status == StatusIdle {
		return engine
	}
	engine.status = snapshot.Status
	engine.remainingSeconds = snapshot.RemainingSeconds
	engine.totalSeconds = snapshot.TotalSeconds
	return engine
}

// UpdateConfig replaces the phase schedule. The new durations apply from
// the next Start; a countdown already in flight keeps its total.
func (engine *Engine) UpdateConfig(config model.PomodoroConfig) {
	engine.config = config.Normalized()
}

// Start begins the current phase from its full configured duration.
func (engine *Engine) Start() {
	total := engine.phaseSeconds(engine.phase)
	engine.totalSeconds = total
	engine.remainingSeconds = total
	engine.status = StatusRunning
	engine.lastTick = time.Time{}
}

// TogglePause freezes a running countdown or resumes a paused one.
// No-op while idle.
func (engine *Engine) TogglePause() {
	switch engine.status {
	case StatusRunning:
		engine.status = StatusPaused
		engine.lastTick = time.Time{}
	case StatusPaused:
		engine.status = StatusRunning
		engine.lastTick = time.Time{}
	}
}

// Stop abandons the current countdown and returns to idle. The phase and
// the completed-cycle count are kept.
func (engine *Engine) Stop() {
	engine.status = StatusIdle
	engine.remainingSeconds = 0
	engine.totalSeconds = 0
	engine.lastTick = time.Time{}
}

// SetPhase switches to the given phase and stops. A manual switch never
// credits a focus cycle.
func (engine *Engine) SetPhase(phase Phase) {
	if !phase.Valid() {
		return
	}
	engine.phase = phase
	engine.Stop()
}

// ResetCyclesAndStop clears the cycle count, returns to the focus phase
// and stops.
func (engine *Engine) ResetCyclesAndStop() {
	engine.completedCycles = 0
	engine.phase = PhaseFocus
	engine.Stop()
}

// Tick advances the countdown to the given wall time. The first tick
// after starting or resuming only establishes the baseline. Whole
// elapsed seconds are charged and the baseline advances by exactly that
// amount, so sub-second fractions carry over to the next tick. A tick
// that drains the countdown fires the phase transition once, no matter
// how large the elapsed delta was.
func (engine *Engine) Tick(now time.Time) {
	if engine.status != StatusRunning {
		return
	}
	if engine.lastTick.IsZero() {
		engine.lastTick = now
		return
	}
	if now.Before(engine.lastTick) {
		// Clock went backwards; re-baseline instead of charging time.
		engine.lastTick = now
		return
	}

	elapsed := int64(now.Sub(engine.lastTick) / time.Second)
	if elapsed <= 0 {
		return
	}
	engine.lastTick = engine.lastTick.Add(time.Duration(elapsed) * time.Second)

	engine.remainingSeconds -= elapsed
	if engine.remainingSeconds <= 0 {
		engine.remainingSeconds = 0
		engine.finishPhase()
	}
}

func (engine *Engine) finishPhase() {
	finished := engine.phase
	total := engine.totalSeconds

	engine.pendingFinishedPhase = finished
	engine.hasFinishedPhase = true

	if finished == PhaseFocus {
		engine.pendingFocusSeconds = total
		engine.hasFocusSeconds = true
		engine.completedCycles++
		if engine.completedCycles >= engine.config.CyclesBeforeLongBreak {
			engine.phase = PhaseLongBreak
			engine.completedCycles = 0
		} else {
			engine.phase = PhaseShortBreak
		}
	} else {
		engine.phase = PhaseFocus
	}

	// The next phase is armed but not started; the user starts it.
	engine.Stop()
}

// TakeFinishedPhase returns the phase that just completed, if any, and
// clears it. The host must act on it at most once per completion.
func (engine *Engine) TakeFinishedPhase() (Phase, bool) {
	if !engine.hasFinishedPhase {
		return "", false
	}
	engine.hasFinishedPhase = false
	return engine.pendingFinishedPhase, true
}

// TakeLastCompletedFocusDuration returns the length in seconds of the
// focus phase that just completed, if any, and clears it.
func (engine *Engine) TakeLastCompletedFocusDuration() (int64, bool) {
	if !engine.hasFocusSeconds {
		return 0, false
	}
	engine.hasFocusSeconds = false
	return engine.pendingFocusSeconds, true
}

// Phase returns the current phase.
func (engine *Engine) Phase() Phase { return engine.phase }

// Status returns the current run state.
func (engine *Engine) Status() Status { return engine.status }

// CompletedFocusCycles returns the focus cycles completed since the last
// long break or reset.
func (engine *Engine) CompletedFocusCycles() int { return engine.completedCycles }

// RemainingSeconds returns the seconds left in the current countdown.
func (engine *Engine) RemainingSeconds() int64 { return engine.remainingSeconds }

// TotalSeconds returns the full length of the current phase instance.
func (engine *Engine) TotalSeconds() int64 { return engine.totalSeconds }

// Config returns the active phase schedule.
func (engine *Engine) Config() model.PomodoroConfig { return engine.config }

// RemainingDisplay formats the remaining time as "MM:SS".
func (engine *Engine) RemainingDisplay() string {
	seconds := engine.remainingSeconds
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress returns the remaining fraction of the current phase in
// [0, 1], or 0 when no phase is active.
func (engine *Engine) Progress() float64 {
	if engine.totalSeconds <= 0 {
		return 0
	}
	progress := float64(engine.remainingSeconds) / float64(engine.totalSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Snapshot captures the serializable state for session persistence.
func (engine *Engine) Snapshot() Snapshot {
	return Snapshot{
		Phase:                engine.phase,
		Status:               engine.status,
		RemainingSeconds:     engine.remainingSeconds,
		TotalSeconds:         engine.totalSeconds,
		CompletedFocusCycles: engine.completedCycles,
	}
}

func (engine *Engine) phaseSeconds(phase Phase) int64 {
	var duration time.Duration
	switch phase {
	case PhaseFocus:
		duration = engine.config.FocusDuration
	case PhaseShortBreak:
		duration = engine.config.ShortBreakDuration
	case PhaseLongBreak:
		duration = engine.config.LongBreakDuration
	}
	return int64(duration / time.Second)
}
