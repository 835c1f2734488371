package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramblinglizard/KarmaScanner/internal/config"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded analysis runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()
		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			logger.Fatal().Err(err).Msg("failed to init env")
		}

		db, repo := openStorage(ctx)
		defer db.Close()

		runs, err := repo.RecentRuns(ctx, runsLimit)
		if err != nil {
			return fmt.Errorf("load runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		for _, run := range runs {
			status := "ok"
			if !run.Success {
				status = "failed"
			}
			fmt.Printf("#%d  %s  u/%s  %s  items=%d chunks=%d took=%s\n    %s\n",
				run.ID,
				run.CreatedAt.Format("2006-01-02 15:04"),
				run.Identity,
				status,
				run.ItemCount,
				run.Chunks,
				run.Duration.Round(time.Millisecond),
				run.Question,
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(runsCmd)
}
