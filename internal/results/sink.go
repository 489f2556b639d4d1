// Package results defines the results collaborator notified after a
// session completes. Remote persistence of finalized results lives outside
// this system; the sink is called out-of-band from an event subscription so
// a slow or failing backend cannot affect the lifecycle controller.
package results

import (
	"context"

	"github.com/prepdeck/prepdeck/internal/event"
	"github.com/prepdeck/prepdeck/internal/logging"
)

// Result is the summary handed to the sink when a session completes.
type Result struct {
	SessionID      string
	Score          int
	ElapsedSeconds int
	Attempted      int
}

// Sink receives completed session results.
type Sink interface {
	RecordResult(ctx context.Context, result Result) error
}

// Subscribe wires a sink to the bus: every completed event is forwarded on
// its own goroutine. Sink failures are logged, never propagated.
func Subscribe(bus *event.Bus, sink Sink, log *logging.Logger) uint64 {
	if log == nil {
		log = logging.NopLogger()
	}
	return bus.Subscribe(event.TypeCompleted, func(e event.Event) {
		completed, ok := e.(event.CompletedEvent)
		if !ok {
			return
		}
		go func() {
			result := Result{
				SessionID:      completed.SessionID,
				Score:          completed.Score,
				ElapsedSeconds: completed.ElapsedSeconds,
				Attempted:      completed.Attempted,
			}
			if err := sink.RecordResult(context.Background(), result); err != nil {
				log.Warn("result sink failed", "session_id", result.SessionID, "error", err)
			}
		}()
	})
}

// LogSink records results to the structured log. It stands in for a real
// analytics backend.
type LogSink struct {
	log *logging.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(log *logging.Logger) *LogSink {
	if log == nil {
		log = logging.NopLogger()
	}
	return &LogSink{log: log}
}

// RecordResult logs the result.
func (s *LogSink) RecordResult(ctx context.Context, result Result) error {
	s.log.Info("session result",
		"session_id", result.SessionID,
		"score", result.Score,
		"elapsed_seconds", result.ElapsedSeconds,
		"attempted", result.Attempted)
	return nil
}
