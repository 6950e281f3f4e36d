package main

import (
	"errors"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"redtomato/internal/core/pomodoro"
	"redtomato/internal/platform"
	"redtomato/internal/storage"
	"redtomato/internal/ui/history"
	"redtomato/internal/ui/mainwindow"
	"redtomato/internal/ui/preferences"
	"redtomato/internal/ui/tray"
	"redtomato/resources"
)

const (
	appName    = "Red Tomato"
	appDirName = "red-tomato"

	tickInterval      = time.Second
	idleCheckInterval = 5 * time.Second
	historyLimit      = 50
)

type hostApp struct {
	engine   *pomodoro.Engine
	settings preferences.Settings

	settingsPath string
	sessionPath  string
	records      *storage.RecordStore

	window      *mainwindow.Window
	historyView *history.Window
	prefsView   *preferences.Window
	trayManager *tray.Manager
	desktopApp  desktop.App

	platformService platform.Service
	idleProvider    platform.IdleProvider
	idleBroken      bool
	lastIdleCheck   time.Time
}

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.redtomato.app")
	fyneApp.SetIcon(resources.AppIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	host := &hostApp{
		desktopApp:      desktopApp,
		platformService: platform.NewService(),
		idleProvider:    platform.NewIdleProvider(),
	}

	host.settingsPath, err = storage.SettingsPath(appDirName)
	if err != nil {
		log.Printf("settings path: %v", err)
		return
	}
	host.sessionPath, err = storage.SessionPath(appDirName)
	if err != nil {
		log.Printf("session path: %v", err)
		return
	}

	host.settings, err = storage.LoadSettings(host.settingsPath)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	host.engine = pomodoro.Restore(host.settings.PomodoroConfig(), storage.LoadSession(host.sessionPath))

	recordsPath, err := storage.RecordsPath(appDirName)
	if err == nil {
		host.records, err = storage.OpenRecordStore(recordsPath)
	}
	if err != nil {
		// The timer keeps working without history.
		log.Printf("open focus history: %v", err)
	}

	host.historyView = history.New(fyneApp)
	host.prefsView = preferences.New(fyneApp, host.settings, host.handleSettingsSaved)

	host.window = mainwindow.New(fyneApp, host.settings.Task, mainwindow.Callbacks{
		OnStartPause:  host.handleStartPause,
		OnStop:        host.handleStop,
		OnSelectPhase: host.handleSelectPhase,
		OnReset:       host.handleReset,
		OnTaskChanged: host.handleTaskChanged,
		OnHistory:     host.showHistory,
		OnPreferences: host.prefsView.Show,
		OnClose:       func() { host.window.Hide() },
	})

	host.trayManager = tray.New(desktopApp, tray.Callbacks{
		OnShow:        host.window.Show,
		OnStartPause:  host.handleStartPause,
		OnStop:        host.handleStop,
		OnReset:       host.handleReset,
		OnPreferences: host.prefsView.Show,
		OnQuit: func() {
			host.shutdown()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(resources.AppIcon())

	host.applyAutostart()
	host.refresh()

	stopTicking := make(chan struct{})
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopTicking:
				return
			case now := <-ticker.C:
				fyne.Do(func() {
					host.step(now)
				})
			}
		}
	}()
	defer close(stopTicking)

	host.window.Show()
	fyneApp.Run()
	host.shutdown()
}

// step runs once per second on the Fyne main thread: it advances the
// engine, drains completion notifications and refreshes the UI.
func (host *hostApp) step(now time.Time) {
	host.engine.Tick(now)

	if _, ok := host.engine.TakeFinishedPhase(); ok {
		platform.PlayChime()
		if duration, focusDone := host.engine.TakeLastCompletedFocusDuration(); focusDone {
			host.recordFocus(duration, now)
		}
		if err := storage.SaveSession(host.sessionPath, host.engine.Snapshot()); err != nil {
			log.Printf("save session: %v", err)
		}
	}

	host.checkIdle(now)
	host.refresh()
}

func (host *hostApp) recordFocus(durationSeconds int64, completedAt time.Time) {
	if host.records == nil {
		return
	}
	// A focus that completes the set resets the counter before the host
	// sees it; record the full set size in that case.
	cycles := host.engine.CompletedFocusCycles()
	if cycles == 0 {
		cycles = host.engine.Config().CyclesBeforeLongBreak
	}
	err := host.records.InsertFocusRecord(
		host.window.Task(),
		durationSeconds,
		completedAt,
		cycles,
	)
	if err != nil {
		log.Printf("record focus: %v", err)
	}
}

// checkIdle pauses a running timer once the user has been away longer
// than the configured threshold.
func (host *hostApp) checkIdle(now time.Time) {
	if !host.settings.IdlePauseEnabled || host.idleBroken {
		return
	}
	if host.engine.Status() != pomodoro.StatusRunning {
		return
	}
	if !host.lastIdleCheck.IsZero() && now.Sub(host.lastIdleCheck) < idleCheckInterval {
		return
	}
	host.lastIdleCheck = now

	idleDuration, err := host.idleProvider.IdleDuration()
	if err != nil {
		if errors.Is(err, platform.ErrIdleUnsupported) {
			host.idleBroken = true
			return
		}
		log.Printf("idle probe: %v", err)
		return
	}
	if idleDuration >= host.settings.IdlePauseAfter {
		host.engine.TogglePause()
	}
}

func (host *hostApp) handleStartPause() {
	if host.engine.Status() == pomodoro.StatusIdle {
		host.engine.Start()
	} else {
		host.engine.TogglePause()
	}
	host.refresh()
}

func (host *hostApp) handleStop() {
	host.engine.Stop()
	host.refresh()
}

func (host *hostApp) handleSelectPhase(phase pomodoro.Phase) {
	host.engine.SetPhase(phase)
	host.refresh()
}

func (host *hostApp) handleReset() {
	host.engine.ResetCyclesAndStop()
	if err := storage.RemoveSession(host.sessionPath); err != nil {
		log.Printf("remove session: %v", err)
	}
	host.refresh()
}

func (host *hostApp) handleTaskChanged(task string) {
	host.settings.Task = task
}

func (host *hostApp) handleSettingsSaved(updated preferences.Settings) {
	updated.Task = host.settings.Task
	host.settings = updated
	host.engine.UpdateConfig(updated.PomodoroConfig())
	host.idleBroken = false
	if err := storage.SaveSettings(host.settingsPath, host.settings); err != nil {
		log.Printf("save settings: %v", err)
	}
	host.applyAutostart()
	host.refresh()
}

func (host *hostApp) showHistory() {
	if host.records == nil {
		host.historyView.Show(nil)
		return
	}
	records, err := host.records.RecentRecords(historyLimit)
	if err != nil {
		log.Printf("load focus history: %v", err)
	}
	host.historyView.Show(records)
}

func (host *hostApp) applyAutostart() {
	var err error
	if host.settings.Autostart {
		var execPath string
		execPath, err = os.Executable()
		if err == nil {
			err = host.platformService.EnableAutostart(appName, execPath)
		}
	} else {
		err = host.platformService.DisableAutostart(appName)
	}
	if err != nil {
		log.Printf("autostart: %v", err)
	}
}

func (host *hostApp) refresh() {
	engine := host.engine
	config := engine.Config()

	host.window.Refresh(mainwindow.View{
		Phase:            engine.Phase(),
		Status:           engine.Status(),
		Remaining:        engine.RemainingDisplay(),
		Progress:         engine.Progress(),
		CompletedCycles:  engine.CompletedFocusCycles(),
		CyclesBeforeLong: config.CyclesBeforeLongBreak,
	})

	switch engine.Status() {
	case pomodoro.StatusRunning:
		host.trayManager.SetStatus(phaseStatus(engine.Phase()) + " " + engine.RemainingDisplay())
		host.trayManager.SetAction("Pause")
		host.trayManager.SetStopEnabled(true)
		host.desktopApp.SetSystemTrayIcon(resources.AppIcon())
	case pomodoro.StatusPaused:
		host.trayManager.SetStatus(phaseStatus(engine.Phase()) + " paused at " + engine.RemainingDisplay())
		host.trayManager.SetAction("Resume")
		host.trayManager.SetStopEnabled(true)
		host.desktopApp.SetSystemTrayIcon(resources.PausedIcon())
	default:
		host.trayManager.SetStatus("idle")
		host.trayManager.SetAction("Start")
		host.trayManager.SetStopEnabled(false)
		host.desktopApp.SetSystemTrayIcon(resources.AppIcon())
	}
}

func (host *hostApp) shutdown() {
	if err := storage.SaveSettings(host.settingsPath, host.settings); err != nil {
		log.Printf("save settings: %v", err)
	}
	if err := storage.SaveSession(host.sessionPath, host.engine.Snapshot()); err != nil {
		log.Printf("save session: %v", err)
	}
	if host.records != nil {
		if err := host.records.Close(); err != nil {
			log.Printf("close focus history: %v", err)
		}
	}
}

func phaseStatus(phase pomodoro.Phase) string {
	switch phase {
	case pomodoro.PhaseShortBreak:
		return "short break"
	case pomodoro.PhaseLongBreak:
		return "long break"
	default:
		return "focus"
	}
}
