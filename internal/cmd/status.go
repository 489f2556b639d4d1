package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck/internal/config"
	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persisted session snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		snapshots, err := store.OpenBolt(cfg.StoragePath())
		if err != nil {
			return fmt.Errorf("open session storage: %w", err)
		}
		defer snapshots.Close()

		snapshot, err := snapshots.Load(context.Background())
		switch {
		case errors.Is(err, errors.ErrSnapshotNotFound):
			fmt.Println("no persisted session")
			return nil
		case errors.Is(err, errors.ErrSnapshotInvalid):
			fmt.Println("persisted session is unusable and will be discarded on next run")
			return nil
		case err != nil:
			return err
		}

		s := snapshot.Session
		fmt.Printf("session   %s\n", s.ID)
		fmt.Printf("owner     %s\n", s.OwnerID)
		fmt.Printf("mode      %s\n", s.Mode)
		fmt.Printf("state     %s\n", s.State)
		fmt.Printf("question  %d/%d\n", s.CurrentIndex+1, len(s.QuestionRefs))
		fmt.Printf("answered  %d\n", s.AnsweredCount())
		fmt.Printf("activity  %s\n", s.Stats.LastActivity.Format("2006-01-02 15:04:05 MST"))
		if s.TimeBoxed() {
			fmt.Printf("time left %ds of %ds\n", s.TimeRemainingSeconds, s.TimeLimitSeconds)
		}
		if s.EndedAt != nil {
			fmt.Printf("ended     %s\n", s.EndedAt.Format("2006-01-02 15:04:05 MST"))
		}
		if s.Stats.Abandoned {
			fmt.Printf("reason    %s\n", s.Stats.AbandonReason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
