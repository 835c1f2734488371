package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY,required,notEmpty"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash-001"`
}

func NewGeminiConfig(ctx context.Context) *GeminiConfig {
	c := &GeminiConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Gemini config")
	}
	return c
}
