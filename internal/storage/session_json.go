package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"redtomato/internal/core/pomodoro"
)

const sessionFileName = "session.json"

type jsonSession struct {
	Phase                string `json:"phase"`
	Status               string `json:"status"`
	RemainingSeconds     int64  `json:"remaining_seconds"`
	TotalSeconds         int64  `json:"total_seconds"`
	CompletedFocusCycles int    `json:"completed_focus_cycles"`
}

// SessionPath returns the session snapshot location for the app.
func SessionPath(appName string) (string, error) {
	dir, err := appConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFileName), nil
}

// LoadSession reads the persisted engine snapshot. A missing or
// unreadable file yields the fresh idle state. A snapshot saved while
// running is demoted to paused so the timer never resumes unattended.
func LoadSession(path string) pomodoro.Snapshot {
	fresh := pomodoro.Snapshot{Phase: pomodoro.PhaseFocus, Status: pomodoro.StatusIdle}

	rawData, err := os.ReadFile(path)
	if err != nil {
		return fresh
	}

	var fileData jsonSession
	if err := json.Unmarshal(rawData, &fileData); err != nil {
		return fresh
	}

	snapshot := pomodoro.Snapshot{
		Phase:                pomodoro.Phase(fileData.Phase),
		Status:               pomodoro.Status(fileData.Status),
		RemainingSeconds:     fileData.RemainingSeconds,
		TotalSeconds:         fileData.TotalSeconds,
		CompletedFocusCycles: fileData.CompletedFocusCycles,
	}
	if snapshot.Status == pomodoro.StatusRunning {
		snapshot.Status = pomodoro.StatusPaused
	}
	return snapshot
}

// SaveSession writes the engine snapshot to disk.
func SaveSession(path string, snapshot pomodoro.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := jsonSession{
		Phase:                string(snapshot.Phase),
		Status:               string(snapshot.Status),
		RemainingSeconds:     snapshot.RemainingSeconds,
		TotalSeconds:         snapshot.TotalSeconds,
		CompletedFocusCycles: snapshot.CompletedFocusCycles,
	}

	serialized, err := json.MarshalIndent(fileData, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session json: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}

// RemoveSession deletes the snapshot file if it exists.
func RemoveSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
