//go:build windows

package platform

import (
	"os/exec"
	"syscall"
)

func playChime() {
	command := exec.Command(
		"powershell",
		"-NoProfile",
		"-NonInteractive",
		"-Command",
		"[Console]::Beep(800, 300)",
	)
	command.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	_ = command.Start()
}
