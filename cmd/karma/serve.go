package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ramblinglizard/KarmaScanner/internal/config"
	"github.com/ramblinglizard/KarmaScanner/internal/core"
	"github.com/ramblinglizard/KarmaScanner/internal/service/analyzer"
	"github.com/ramblinglizard/KarmaScanner/internal/transport/telegram"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
	"github.com/ramblinglizard/KarmaScanner/pkg/srv"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	Long: `Starts a long-running Telegram bot that accepts /analyze commands from
the configured owner and streams analysis progress back to the chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting karmascanner")

		services := newServeServices(ctx)

		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("karmascanner has been shut down gracefully")

		return nil
	},
}

func newServeServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	db, runs := openStorage(ctx)
	services = append(services, srv.NewCleanup(db.Close))

	tgCfg := config.NewTelegramConfig(ctx)
	bot, err := telegram.NewBot(ctx, tgCfg, func(notifier core.Notifier) *analyzer.Runner {
		return newRunner(ctx, runs, notifier)
	}, runs)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}
	services = append(services, bot)

	return services
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
