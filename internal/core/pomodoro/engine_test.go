package pomodoro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redtomato/internal/core/model"
)

func testConfig() model.PomodoroConfig {
	return model.PomodoroConfig{
		FocusDuration:         1500 * time.Second,
		ShortBreakDuration:    300 * time.Second,
		LongBreakDuration:     900 * time.Second,
		CyclesBeforeLongBreak: 4,
	}
}

// runPhase starts the current phase and ticks it to completion.
func runPhase(t *testing.T, engine *Engine, start time.Time) time.Time {
	t.Helper()
	engine.Start()
	engine.Tick(start)
	total := engine.TotalSeconds()
	end := start.Add(time.Duration(total) * time.Second)
	engine.Tick(end)
	require.Equal(t, StatusIdle, engine.Status())
	return end
}

func TestNewStartsIdleInFocus(t *testing.T) {
	engine := New(testConfig())

	assert.Equal(t, PhaseFocus, engine.Phase())
	assert.Equal(t, StatusIdle, engine.Status())
	assert.EqualValues(t, 0, engine.RemainingSeconds())
	assert.EqualValues(t, 0, engine.TotalSeconds())
	assert.Equal(t, 0, engine.CompletedFocusCycles())
}

func TestStartLoadsConfiguredDuration(t *testing.T) {
	tests := []struct {
		name  string
		phase Phase
		want  int64
	}{
		{name: "focus", phase: PhaseFocus, want: 1500},
		{name: "short break", phase: PhaseShortBreak, want: 300},
		{name: "long break", phase: PhaseLongBreak, want: 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(testConfig())
			engine.SetPhase(tt.phase)
			engine.Start()

			assert.Equal(t, StatusRunning, engine.Status())
			assert.Equal(t, tt.want, engine.RemainingSeconds())
			assert.Equal(t, tt.want, engine.TotalSeconds())
		})
	}
}

func TestTickCountsDownWholeSeconds(t *testing.T) {
	engine := New(testConfig())
	engine.Start()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base) // baseline only
	assert.EqualValues(t, 1500, engine.RemainingSeconds())

	engine.Tick(base.Add(1 * time.Second))
	assert.EqualValues(t, 1499, engine.RemainingSeconds())

	engine.Tick(base.Add(10 * time.Second))
	assert.EqualValues(t, 1490, engine.RemainingSeconds())
}

func TestTickCarriesSubSecondFractions(t *testing.T) {
	engine := New(testConfig())
	engine.Start()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)

	// Four 400 ms frames: the countdown must not lose the fractions.
	for i := 1; i <= 4; i++ {
		engine.Tick(base.Add(time.Duration(i) * 400 * time.Millisecond))
	}
	assert.EqualValues(t, 1499, engine.RemainingSeconds())
}

func TestTickMonotoneNonIncreasing(t *testing.T) {
	engine := New(testConfig())
	engine.Start()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	previous := engine.RemainingSeconds()
	deltas := []time.Duration{0, 500 * time.Millisecond, time.Second, 3 * time.Second, 3 * time.Second, 90 * time.Second}

	now := base
	for _, delta := range deltas {
		now = now.Add(delta)
		engine.Tick(now)
		remaining := engine.RemainingSeconds()
		assert.LessOrEqual(t, remaining, previous)
		previous = remaining
	}
}

func TestTickZeroElapsedIsNoop(t *testing.T) {
	engine := New(testConfig())
	engine.Start()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	engine.Tick(base)

	assert.EqualValues(t, 1500, engine.RemainingSeconds())
	_, finished := engine.TakeFinishedPhase()
	assert.False(t, finished)
}

func TestTickClockGoingBackStalls(t *testing.T) {
	engine := New(testConfig())
	engine.Start()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	engine.Tick(base.Add(-time.Hour))
	assert.EqualValues(t, 1500, engine.RemainingSeconds())

	// The countdown resumes from the rewound baseline.
	engine.Tick(base.Add(-time.Hour + 2*time.Second))
	assert.EqualValues(t, 1498, engine.RemainingSeconds())
}

func TestTickWhileNotRunningIsNoop(t *testing.T) {
	engine := New(testConfig())
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	engine.Tick(now) // idle
	assert.Equal(t, StatusIdle, engine.Status())

	engine.Start()
	engine.Tick(now)
	engine.TogglePause()
	engine.Tick(now.Add(time.Hour))
	assert.EqualValues(t, 1500, engine.RemainingSeconds())
}

func TestFocusCompletionTransition(t *testing.T) {
	engine := New(testConfig())
	engine.Start()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	engine.Tick(base.Add(1500 * time.Second))

	phase, ok := engine.TakeFinishedPhase()
	require.True(t, ok)
	assert.Equal(t, PhaseFocus, phase)

	duration, ok := engine.TakeLastCompletedFocusDuration()
	require.True(t, ok)
	assert.EqualValues(t, 1500, duration)

	assert.Equal(t, 1, engine.CompletedFocusCycles())
	assert.Equal(t, PhaseShortBreak, engine.Phase())
	assert.Equal(t, StatusIdle, engine.Status())
	assert.EqualValues(t, 0, engine.RemainingSeconds())
	assert.EqualValues(t, 0, engine.TotalSeconds())
}

func TestBreakCompletionDoesNotCreditCycle(t *testing.T) {
	engine := New(testConfig())
	engine.SetPhase(PhaseShortBreak)

	end := runPhase(t, engine, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	_ = end

	phase, ok := engine.TakeFinishedPhase()
	require.True(t, ok)
	assert.Equal(t, PhaseShortBreak, phase)

	_, ok = engine.TakeLastCompletedFocusDuration()
	assert.False(t, ok)

	assert.Equal(t, 0, engine.CompletedFocusCycles())
	assert.Equal(t, PhaseFocus, engine.Phase())
}

func TestFourthFocusLeadsToLongBreak(t *testing.T) {
	engine := New(testConfig())
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	for cycle := 1; cycle <= 3; cycle++ {
		require.Equal(t, PhaseFocus, engine.Phase())
		now = runPhase(t, engine, now)
		assert.Equal(t, cycle, engine.CompletedFocusCycles())
		require.Equal(t, PhaseShortBreak, engine.Phase())
		now = runPhase(t, engine, now)
	}

	require.Equal(t, PhaseFocus, engine.Phase())
	now = runPhase(t, engine, now)

	phase, ok := engine.TakeFinishedPhase()
	require.True(t, ok)
	assert.Equal(t, PhaseFocus, phase)
	assert.Equal(t, PhaseLongBreak, engine.Phase())
	assert.Equal(t, 0, engine.CompletedFocusCycles())

	// The long break hands back to focus.
	runPhase(t, engine, now)
	assert.Equal(t, PhaseFocus, engine.Phase())
}

func TestLargeDeltaCollapsesToSingleCompletion(t *testing.T) {
	engine := New(testConfig())
	engine.Start()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	// Several phase lengths at once, e.g. the machine was suspended.
	engine.Tick(base.Add(4 * time.Hour))

	phase, ok := engine.TakeFinishedPhase()
	require.True(t, ok)
	assert.Equal(t, PhaseFocus, phase)
	assert.Equal(t, 1, engine.CompletedFocusCycles())
	assert.Equal(t, PhaseShortBreak, engine.Phase())
	assert.Equal(t, StatusIdle, engine.Status())

	// No further completion without another Start.
	engine.Tick(base.Add(8 * time.Hour))
	_, ok = engine.TakeFinishedPhase()
	assert.False(t, ok)
}

func TestTakeAccessorsAreOneShot(t *testing.T) {
	engine := New(testConfig())
	runPhase(t, engine, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))

	_, ok := engine.TakeFinishedPhase()
	require.True(t, ok)
	_, ok = engine.TakeFinishedPhase()
	assert.False(t, ok)

	_, ok = engine.TakeLastCompletedFocusDuration()
	require.True(t, ok)
	_, ok = engine.TakeLastCompletedFocusDuration()
	assert.False(t, ok)
}

func TestTogglePauseIsItsOwnInverse(t *testing.T) {
	engine := New(testConfig())
	engine.Start()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	engine.Tick(base.Add(5 * time.Second))
	remaining := engine.RemainingSeconds()

	engine.TogglePause()
	assert.Equal(t, StatusPaused, engine.Status())
	engine.TogglePause()
	assert.Equal(t, StatusRunning, engine.Status())
	assert.Equal(t, remaining, engine.RemainingSeconds())
}

func TestTogglePauseIdleIsNoop(t *testing.T) {
	engine := New(testConfig())
	engine.TogglePause()
	assert.Equal(t, StatusIdle, engine.Status())
}

func TestPausedWallTimeIsNotCharged(t *testing.T) {
	engine := New(testConfig())
	engine.Start()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	engine.Tick(base.Add(10 * time.Second))
	require.EqualValues(t, 1490, engine.RemainingSeconds())

	engine.TogglePause()
	engine.TogglePause()

	// First tick after resuming re-establishes the baseline.
	engine.Tick(base.Add(10 * time.Minute))
	assert.EqualValues(t, 1490, engine.RemainingSeconds())
	engine.Tick(base.Add(10*time.Minute + 2*time.Second))
	assert.EqualValues(t, 1488, engine.RemainingSeconds())
}

func TestStopFromAnyState(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(engine *Engine)
	}{
		{name: "idle", prepare: func(engine *Engine) {}},
		{name: "running", prepare: func(engine *Engine) { engine.Start() }},
		{name: "paused", prepare: func(engine *Engine) {
			engine.Start()
			engine.TogglePause()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(testConfig())
			tt.prepare(engine)
			engine.Stop()

			assert.Equal(t, StatusIdle, engine.Status())
			assert.EqualValues(t, 0, engine.RemainingSeconds())
			assert.EqualValues(t, 0, engine.TotalSeconds())
		})
	}
}

func TestSetPhaseWhileRunningStops(t *testing.T) {
	engine := New(testConfig())
	engine.Start()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	engine.Tick(base.Add(1490 * time.Second))
	require.EqualValues(t, 10, engine.RemainingSeconds())

	engine.SetPhase(PhaseShortBreak)

	assert.Equal(t, PhaseShortBreak, engine.Phase())
	assert.Equal(t, StatusIdle, engine.Status())
	assert.EqualValues(t, 0, engine.RemainingSeconds())
	assert.Equal(t, 0, engine.CompletedFocusCycles())
	_, ok := engine.TakeFinishedPhase()
	assert.False(t, ok)
}

func TestResetCyclesAndStop(t *testing.T) {
	engine := New(testConfig())
	now := runPhase(t, engine, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	_ = now
	require.Equal(t, 1, engine.CompletedFocusCycles())

	engine.ResetCyclesAndStop()

	assert.Equal(t, 0, engine.CompletedFocusCycles())
	assert.Equal(t, PhaseFocus, engine.Phase())
	assert.Equal(t, StatusIdle, engine.Status())
}

func TestRemainingDisplay(t *testing.T) {
	engine := New(testConfig())
	assert.Equal(t, "00:00", engine.RemainingDisplay())

	engine.Start()
	assert.Equal(t, "25:00", engine.RemainingDisplay())

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	engine.Tick(base.Add(61 * time.Second))
	assert.Equal(t, "23:59", engine.RemainingDisplay())
}

func TestProgress(t *testing.T) {
	engine := New(testConfig())
	assert.Zero(t, engine.Progress())

	engine.Start()
	assert.InDelta(t, 1.0, engine.Progress(), 1e-9)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	engine.Tick(base.Add(750 * time.Second))
	assert.InDelta(t, 0.5, engine.Progress(), 1e-9)

	engine.Stop()
	assert.Zero(t, engine.Progress())
}

func TestRestoreKeepsConsistentSnapshots(t *testing.T) {
	config := testConfig()

	snapshot := Snapshot{
		Phase:                PhaseShortBreak,
		Status:               StatusPaused,
		RemainingSeconds:     120,
		TotalSeconds:         300,
		CompletedFocusCycles: 2,
	}
	engine := Restore(config, snapshot)

	assert.Equal(t, PhaseShortBreak, engine.Phase())
	assert.Equal(t, StatusPaused, engine.Status())
	assert.EqualValues(t, 120, engine.RemainingSeconds())
	assert.EqualValues(t, 300, engine.TotalSeconds())
	assert.Equal(t, 2, engine.CompletedFocusCycles())
}

func TestRestoreRejectsBrokenSnapshots(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
	}{
		{name: "unknown phase", snapshot: Snapshot{Phase: "nap", Status: StatusIdle}},
		{name: "unknown status", snapshot: Snapshot{Phase: PhaseFocus, Status: "sleeping"}},
		{name: "remaining above total", snapshot: Snapshot{
			Phase: PhaseFocus, Status: StatusPaused, RemainingSeconds: 500, TotalSeconds: 300,
		}},
		{name: "negative cycles", snapshot: Snapshot{
			Phase: PhaseFocus, Status: StatusIdle, CompletedFocusCycles: -1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := Restore(testConfig(), tt.snapshot)
			assert.Equal(t, PhaseFocus, engine.Phase())
			assert.Equal(t, StatusIdle, engine.Status())
			assert.EqualValues(t, 0, engine.RemainingSeconds())
			assert.Equal(t, 0, engine.CompletedFocusCycles())
		})
	}
}

func TestRestoreIdleZeroesCountdown(t *testing.T) {
	engine := Restore(testConfig(), Snapshot{
		Phase:                PhaseLongBreak,
		Status:               StatusIdle,
		RemainingSeconds:     100,
		TotalSeconds:         900,
		CompletedFocusCycles: 1,
	})

	assert.Equal(t, PhaseLongBreak, engine.Phase())
	assert.EqualValues(t, 0, engine.RemainingSeconds())
	assert.EqualValues(t, 0, engine.TotalSeconds())
}

func TestSnapshotRoundTrip(t *testing.T) {
	engine := New(testConfig())
	engine.Start()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.Tick(base)
	engine.Tick(base.Add(30 * time.Second))
	engine.TogglePause()

	restored := Restore(testConfig(), engine.Snapshot())
	assert.Equal(t, engine.Snapshot(), restored.Snapshot())
}

func TestUpdateConfigAppliesOnNextStart(t *testing.T) {
	engine := New(testConfig())
	engine.Start()
	require.EqualValues(t, 1500, engine.TotalSeconds())

	updated := testConfig()
	updated.FocusDuration = 50 * time.Minute
	engine.UpdateConfig(updated)
	assert.EqualValues(t, 1500, engine.TotalSeconds())

	engine.Start()
	assert.EqualValues(t, 3000, engine.TotalSeconds())
}

func TestNormalizedConfigBackfillsDefaults(t *testing.T) {
	engine := New(model.PomodoroConfig{})
	engine.Start()
	assert.EqualValues(t, int64(model.DefaultFocusDuration/time.Second), engine.TotalSeconds())
	assert.Equal(t, model.DefaultCyclesBeforeLong, engine.Config().CyclesBeforeLongBreak)
}
