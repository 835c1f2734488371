package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ramblinglizard/KarmaScanner/internal/config"
	"github.com/ramblinglizard/KarmaScanner/internal/core"
	"github.com/ramblinglizard/KarmaScanner/internal/providers/llm"
	"github.com/ramblinglizard/KarmaScanner/internal/providers/reddit"
	"github.com/ramblinglizard/KarmaScanner/internal/service/analyzer"
	"github.com/ramblinglizard/KarmaScanner/internal/storage/sqlite"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

// newRunner wires the whole pipeline behind one notifier: Reddit source,
// Gemini generator, analysis service and optional run storage.
func newRunner(ctx context.Context, runs core.RunsRepository, notifier core.Notifier) *analyzer.Runner {
	logger := log.FromCtx(ctx)

	redditCfg := config.NewRedditConfig(ctx)
	geminiCfg := config.NewGeminiConfig(ctx)
	analysisCfg := config.NewAnalysisConfig(ctx)

	source := reddit.NewHistory(reddit.NewClient(redditCfg), notifier)
	gen := llm.NewGemini(geminiCfg.APIKey, geminiCfg.Model)

	service, err := analyzer.NewService(gen, notifier, analysisCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build analysis service")
	}

	return analyzer.NewRunner(source, service, runs, notifier)
}

func openStorage(ctx context.Context) (*sql.DB, *sqlite.RunsRepo) {
	logger := log.FromCtx(ctx)
	appCfg := config.NewAppConfig(ctx)

	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	return db, sqlite.NewRunsRepo(db)
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
