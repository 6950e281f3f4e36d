package platform

// PlayChime plays a short notification sound when a phase finishes.
// Best effort: a missing audio backend is silently ignored.
func PlayChime() {
	playChime()
}
