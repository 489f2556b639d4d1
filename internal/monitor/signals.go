package monitor

import (
	"os"
	"os/signal"
)

// Signal is a host lifecycle notification the monitor reacts to.
type Signal int

const (
	// SignalTerminate means the host is shutting down and the session
	// cannot continue.
	SignalTerminate Signal = iota
	// SignalBackground means the host lost visibility (e.g. the process
	// was suspended). Non-mutating.
	SignalBackground
	// SignalForeground means the host regained visibility. Non-mutating.
	SignalForeground
)

// SignalSource abstracts where lifecycle signals come from: OS signals on a
// server host, visibility and unload events on a browser-style host, or a
// test fake.
type SignalSource interface {
	// Signals returns the channel lifecycle signals are delivered on.
	Signals() <-chan Signal

	// Close stops signal delivery and releases resources.
	Close() error
}

// OSSignalSource maps operating system signals to lifecycle signals:
// SIGTERM and SIGINT to termination, and on Unix SIGTSTP and SIGCONT to
// background and foreground transitions.
type OSSignalSource struct {
	out chan Signal
	raw chan os.Signal
}

// NewOSSignalSource starts listening for host signals.
func NewOSSignalSource() *OSSignalSource {
	s := &OSSignalSource{
		out: make(chan Signal, 4),
		raw: make(chan os.Signal, 4),
	}
	signal.Notify(s.raw, hostSignals()...)
	go s.translate()
	return s
}

func (s *OSSignalSource) translate() {
	for raw := range s.raw {
		sig, ok := classify(raw)
		if !ok {
			continue
		}
		select {
		case s.out <- sig:
		default:
			// A slow consumer drops signals rather than blocking
			// delivery; termination is re-sent by the OS anyway.
		}
	}
	close(s.out)
}

// Signals returns the lifecycle signal channel.
func (s *OSSignalSource) Signals() <-chan Signal {
	return s.out
}

// Close stops signal delivery.
func (s *OSSignalSource) Close() error {
	signal.Stop(s.raw)
	close(s.raw)
	return nil
}

// ChannelSignalSource delivers signals pushed by the caller. Tests and
// embedded hosts use it in place of OS signals.
type ChannelSignalSource struct {
	ch chan Signal
}

// NewChannelSignalSource creates a ChannelSignalSource with a small buffer.
func NewChannelSignalSource() *ChannelSignalSource {
	return &ChannelSignalSource{ch: make(chan Signal, 4)}
}

// Send delivers a lifecycle signal.
func (s *ChannelSignalSource) Send(sig Signal) {
	s.ch <- sig
}

// Signals returns the lifecycle signal channel.
func (s *ChannelSignalSource) Signals() <-chan Signal {
	return s.ch
}

// Close closes the signal channel.
func (s *ChannelSignalSource) Close() error {
	close(s.ch)
	return nil
}
