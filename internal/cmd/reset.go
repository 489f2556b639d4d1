package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck/internal/config"
	"github.com/prepdeck/prepdeck/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the persisted session snapshot",
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

		if err := snapshots.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Println("persisted session discarded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
