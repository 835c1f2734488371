package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

type AppConfig struct {
	DatabaseFile string `env:"KARMA_DB_FILE" envDefault:"karmascanner.db"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	if filepath.IsAbs(c.DatabaseFile) {
		return c.DatabaseFile
	}
	return filepath.Join(GetRuntimePath(), c.DatabaseFile)
}
