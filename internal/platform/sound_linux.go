//go:build linux

package platform

import (
	"fmt"
	"os"
	"os/exec"
)

const chimeSample = "/usr/share/sounds/freedesktop/stereo/complete.oga"

func playChime() {
	if path, err := exec.LookPath("paplay"); err == nil {
		if _, err := os.Stat(chimeSample); err == nil {
			_ = exec.Command(path, chimeSample).Start()
			return
		}
	}
	if path, err := exec.LookPath("canberra-gtk-play"); err == nil {
		_ = exec.Command(path, "-i", "complete").Start()
		return
	}
	// Terminal bell as a last resort.
	fmt.Print("\a")
}
