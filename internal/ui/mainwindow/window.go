package mainwindow

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"redtomato/internal/core/pomodoro"
)

// Accent colors per phase: focus green, short break amber, long break red.
var (
	focusAccent = color.NRGBA{R: 100, G: 220, B: 130, A: 255}
	shortAccent = color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	longAccent  = color.NRGBA{R: 217, G: 17, B: 83, A: 255}

	backgroundColor = color.NRGBA{R: 18, G: 18, B: 24, A: 255}
	clockColor      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	dotStrokeColor  = color.NRGBA{R: 80, G: 80, B: 90, A: 255}
)

// Callbacks defines main window action handlers.
type Callbacks struct {
	OnStartPause  func()
	OnStop        func()
	OnSelectPhase func(pomodoro.Phase)
	OnReset       func()
	OnTaskChanged func(string)
	OnHistory     func()
	OnPreferences func()
	OnClose       func()
}

// View is the render state pushed by the host once per tick.
type View struct {
	Phase            pomodoro.Phase
	Status           pomodoro.Status
	Remaining        string
	Progress         float64
	CompletedCycles  int
	CyclesBeforeLong int
}

// Window is the timer window.
type Window struct {
	window    fyne.Window
	callbacks Callbacks

	phaseLabel *canvas.Text
	clock      *canvas.Text
	progress   *widget.ProgressBar
	startPause *widget.Button
	stop       *widget.Button
	phaseRow   map[pomodoro.Phase]*widget.Button
	dots       *fyne.Container
	taskEntry  *widget.Entry

	view View
}

// New creates the main window.
func New(app fyne.App, task string, callbacks Callbacks) *Window {
	window := app.NewWindow("Red Tomato")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	mainWindow := &Window{
		window:    window,
		callbacks: callbacks,
		phaseRow:  make(map[pomodoro.Phase]*widget.Button),
	}

	mainWindow.phaseLabel = canvas.NewText("Focus", focusAccent)
	mainWindow.phaseLabel.Alignment = fyne.TextAlignCenter
	mainWindow.phaseLabel.TextSize = 18

	mainWindow.clock = canvas.NewText("00:00", clockColor)
	mainWindow.clock.Alignment = fyne.TextAlignCenter
	mainWindow.clock.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	mainWindow.clock.TextSize = 56

	mainWindow.progress = widget.NewProgressBar()
	mainWindow.progress.TextFormatter = func() string { return "" }

	mainWindow.startPause = widget.NewButton("Start", func() {
		if mainWindow.callbacks.OnStartPause != nil {
			mainWindow.callbacks.OnStartPause()
		}
	})
	mainWindow.stop = widget.NewButton("Stop", func() {
		if mainWindow.callbacks.OnStop != nil {
			mainWindow.callbacks.OnStop()
		}
	})
	mainWindow.stop.Disable()

	phaseButtons := container.NewHBox(layout.NewSpacer())
	for _, phase := range []pomodoro.Phase{pomodoro.PhaseFocus, pomodoro.PhaseShortBreak, pomodoro.PhaseLongBreak} {
		phase := phase
		button := widget.NewButton(phaseTitle(phase), func() {
			if mainWindow.callbacks.OnSelectPhase != nil {
				mainWindow.callbacks.OnSelectPhase(phase)
			}
		})
		mainWindow.phaseRow[phase] = button
		phaseButtons.Add(button)
	}
	phaseButtons.Add(layout.NewSpacer())

	mainWindow.dots = container.NewHBox()

	mainWindow.taskEntry = widget.NewEntry()
	mainWindow.taskEntry.SetPlaceHolder("What are you working on?")
	mainWindow.taskEntry.SetText(task)
	mainWindow.taskEntry.OnChanged = func(text string) {
		if mainWindow.callbacks.OnTaskChanged != nil {
			mainWindow.callbacks.OnTaskChanged(text)
		}
	}

	resetButton := widget.NewButton("Reset session", func() {
		if mainWindow.callbacks.OnReset != nil {
			mainWindow.callbacks.OnReset()
		}
	})
	historyButton := widget.NewButton("History", func() {
		if mainWindow.callbacks.OnHistory != nil {
			mainWindow.callbacks.OnHistory()
		}
	})
	preferencesButton := widget.NewButton("Preferences", func() {
		if mainWindow.callbacks.OnPreferences != nil {
			mainWindow.callbacks.OnPreferences()
		}
	})

	background := canvas.NewRectangle(backgroundColor)
	content := container.NewVBox(
		layout.NewSpacer(),
		mainWindow.phaseLabel,
		mainWindow.clock,
		mainWindow.progress,
		container.NewHBox(layout.NewSpacer(), mainWindow.startPause, mainWindow.stop, layout.NewSpacer()),
		phaseButtons,
		container.NewHBox(layout.NewSpacer(), mainWindow.dots, layout.NewSpacer()),
		mainWindow.taskEntry,
		container.NewHBox(layout.NewSpacer(), resetButton, historyButton, preferencesButton, layout.NewSpacer()),
		layout.NewSpacer(),
	)

	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(380, 420))
	window.SetCloseIntercept(func() {
		if mainWindow.callbacks.OnClose != nil {
			mainWindow.callbacks.OnClose()
		}
	})

	return mainWindow
}

// Show displays the window.
func (mainWindow *Window) Show() {
	mainWindow.window.Show()
	mainWindow.window.RequestFocus()
}

// Hide hides the window; the tray keeps the timer reachable.
func (mainWindow *Window) Hide() {
	mainWindow.window.Hide()
}

// Task returns the current task entry text.
func (mainWindow *Window) Task() string {
	return mainWindow.taskEntry.Text
}

// Refresh pushes the current engine state into the widgets.
func (mainWindow *Window) Refresh(view View) {
	previous := mainWindow.view
	mainWindow.view = view

	accent := phaseAccent(view.Phase)
	if view.Phase != previous.Phase || view.Remaining == "" {
		mainWindow.phaseLabel.Text = phaseTitle(view.Phase)
		mainWindow.phaseLabel.Color = accent
		mainWindow.phaseLabel.Refresh()
	}
	if view.Remaining != previous.Remaining {
		mainWindow.clock.Text = view.Remaining
		mainWindow.clock.Refresh()
	}
	mainWindow.progress.SetValue(view.Progress)

	switch view.Status {
	case pomodoro.StatusIdle:
		mainWindow.startPause.SetText("Start")
		mainWindow.stop.Disable()
	case pomodoro.StatusRunning:
		mainWindow.startPause.SetText("Pause")
		mainWindow.stop.Enable()
	case pomodoro.StatusPaused:
		mainWindow.startPause.SetText("Resume")
		mainWindow.stop.Enable()
	}

	for phase, button := range mainWindow.phaseRow {
		if view.Status == pomodoro.StatusIdle {
			button.Enable()
		} else {
			button.Disable()
		}
		importance := widget.MediumImportance
		if phase == view.Phase {
			importance = widget.HighImportance
		}
		if button.Importance != importance {
			button.Importance = importance
			button.Refresh()
		}
	}

	if view.CompletedCycles != previous.CompletedCycles || view.CyclesBeforeLong != previous.CyclesBeforeLong {
		mainWindow.rebuildDots(view.CyclesBeforeLong, view.CompletedCycles)
	}
}

// rebuildDots renders the completed-cycle row: one circle per pomodoro
// before the long break, filled once completed.
func (mainWindow *Window) rebuildDots(total, done int) {
	mainWindow.dots.RemoveAll()
	for i := 0; i < total; i++ {
		dot := canvas.NewCircle(color.Transparent)
		dot.StrokeColor = dotStrokeColor
		dot.StrokeWidth = 1.5
		if i < done {
			dot.FillColor = longAccent
		}
		mainWindow.dots.Add(container.NewGridWrap(fyne.NewSize(16, 16), dot))
	}
	mainWindow.dots.Refresh()
}

func phaseTitle(phase pomodoro.Phase) string {
	switch phase {
	case pomodoro.PhaseShortBreak:
		return "Short break"
	case pomodoro.PhaseLongBreak:
		return "Long break"
	default:
		return "Focus"
	}
}

func phaseAccent(phase pomodoro.Phase) color.NRGBA {
	switch phase {
	case pomodoro.PhaseShortBreak:
		return shortAccent
	case pomodoro.PhaseLongBreak:
		return longAccent
	default:
		return focusAccent
	}
}
