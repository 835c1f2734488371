package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

type RedditConfig struct {
	BaseURL   string `env:"KARMA_REDDIT_BASE_URL" envDefault:"https://www.reddit.com"`
	UserAgent string `env:"KARMA_REDDIT_USER_AGENT" envDefault:"KarmaScanner/2.0"`
	PageSize  int    `env:"KARMA_REDDIT_PAGE_SIZE" envDefault:"100"`
}

func NewRedditConfig(ctx context.Context) *RedditConfig {
	c := &RedditConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Reddit config")
	}
	return c
}
