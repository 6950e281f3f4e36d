//go:build darwin

package platform

import "os/exec"

func playChime() {
	_ = exec.Command("afplay", "/System/Library/Sounds/Glass.aiff").Start()
}
