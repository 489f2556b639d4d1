//go:build unix

package monitor

import (
	"os"
	"syscall"
)

// hostSignals lists the OS signals the source subscribes to. SIGTSTP and
// SIGCONT serve as the server-side analog of a browser's visibility change.
func hostSignals() []os.Signal {
	return []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGTSTP, syscall.SIGCONT}
}

func classify(raw os.Signal) (Signal, bool) {
	switch raw {
	case syscall.SIGTERM, syscall.SIGINT:
		return SignalTerminate, true
	case syscall.SIGTSTP:
		return SignalBackground, true
	case syscall.SIGCONT:
		return SignalForeground, true
	}
	return 0, false
}
