//go:build windows

package monitor

import (
	"os"
	"syscall"
)

// hostSignals lists the OS signals the source subscribes to. Windows has no
// stop/continue signals, so only termination is observable.
func hostSignals() []os.Signal {
	return []os.Signal{syscall.SIGTERM, os.Interrupt}
}

func classify(raw os.Signal) (Signal, bool) {
	switch raw {
	case syscall.SIGTERM, os.Interrupt:
		return SignalTerminate, true
	}
	return 0, false
}
