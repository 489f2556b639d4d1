package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck/internal/config"
	"github.com/prepdeck/prepdeck/internal/event"
	"github.com/prepdeck/prepdeck/internal/lifecycle"
	"github.com/prepdeck/prepdeck/internal/logging"
	"github.com/prepdeck/prepdeck/internal/monitor"
	"github.com/prepdeck/prepdeck/internal/questions"
	"github.com/prepdeck/prepdeck/internal/quiz"
	"github.com/prepdeck/prepdeck/internal/results"
	"github.com/prepdeck/prepdeck/internal/store"
	"github.com/prepdeck/prepdeck/internal/tui"
)

// demoQuestionRefs stands in for a content backend until one is wired up.
// TODO: replace with the question catalog service once its API is stable.
var demoQuestionRefs = []string{
	"anatomy-114", "anatomy-207", "pharm-031", "pharm-118", "path-042",
	"path-163", "physio-055", "physio-201", "micro-077", "micro-130",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive session host",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return runHost(cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runHost(cfg *config.Config) error {
	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Close()

	snapshots, err := store.OpenBolt(cfg.StoragePath())
	if err != nil {
		return fmt.Errorf("open session storage: %w", err)
	}
	defer snapshots.Close()

	bus := event.NewBus(logger)

	ctrl := lifecycle.New(lifecycle.Options{
		Store:             snapshots,
		Bus:               bus,
		Logger:            logger,
		GraceDelay:        time.Duration(cfg.Session.GraceDelayMs) * time.Millisecond,
		InactivityTimeout: time.Duration(cfg.Monitor.InactivityTimeoutMinutes) * time.Minute,
	})
	defer ctrl.Close()

	results.Subscribe(bus, results.NewLogSink(logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := ctrl.Recover(ctx); err != nil {
		return fmt.Errorf("session recovery: %w", err)
	}

	signals := monitor.NewOSSignalSource()
	defer signals.Close()

	mon := monitor.New(ctrl, bus, logger, signals, monitor.Config{
		TickInterval:      time.Duration(cfg.Monitor.TickIntervalSeconds) * time.Second,
		InactivityTimeout: time.Duration(cfg.Monitor.InactivityTimeoutMinutes) * time.Minute,
	}, nil)
	mon.Start(ctx)
	defer mon.Stop()

	provider := questions.NewStaticProvider(demoQuestionRefs)

	program := tea.NewProgram(tui.NewModel(ctrl, bus, provider, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	// Clean exit is a host shutdown: a session still in flight is
	// abandoned rather than left dangling. Crashes skip this path and
	// are handled by recovery on the next start.
	return ctrl.Abandon(ctx, quiz.ReasonAppShutdown)
}
