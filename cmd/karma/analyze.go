package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramblinglizard/KarmaScanner/internal/config"
	"github.com/ramblinglizard/KarmaScanner/internal/core"
	"github.com/ramblinglizard/KarmaScanner/internal/notify"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

var (
	analyzeUser     string
	analyzeQuestion string
	analyzeDays     int
	analyzeSave     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a Reddit user's history with AI",
	Long: `Downloads the user's posts and comments, optionally limited to the last
N days, and answers the question with Gemini. The answer is printed to
stdout; progress goes to the log.`,
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

		var runs core.RunsRepository
		if analyzeSave {
			db, repo := openStorage(ctx)
			defer db.Close()
			runs = repo
		}

		runner := newRunner(ctx, runs, notify.NewConsole(ctx))

		result := runner.Run(ctx, core.AnalysisRequest{
			Identity: analyzeUser,
			Question: analyzeQuestion,
			Window:   time.Duration(analyzeDays) * 24 * time.Hour,
		})

		if !result.Success {
			return fmt.Errorf("analysis failed: %s", result.Text)
		}

		fmt.Println(result.Text)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeUser, "user", "u", "", "Reddit username (without u/)")
	analyzeCmd.Flags().StringVarP(&analyzeQuestion, "question", "q", "", "question to answer about the user")
	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 0, "history window in days, 0 for everything")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "record this run in the local database")
	_ = analyzeCmd.MarkFlagRequired("user")
	_ = analyzeCmd.MarkFlagRequired("question")
	rootCmd.AddCommand(analyzeCmd)
}
