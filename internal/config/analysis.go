package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

// AnalysisConfig holds the token budgets and pacing of the chunked analysis
// pipeline. The limits are tied to the generative model's context window, so
// they are configuration rather than constants.
type AnalysisConfig struct {
	// SingleShotTokenLimit is the corpus estimate below which the whole
	// history goes out in one request.
	SingleShotTokenLimit int `env:"KARMA_SINGLE_SHOT_TOKENS" envDefault:"80000"`
	// ChunkTokenLimit bounds each chunk on the multi-chunk path.
	ChunkTokenLimit     int `env:"KARMA_CHUNK_TOKENS" envDefault:"70000"`
	HeaderReserveTokens int `env:"KARMA_HEADER_RESERVE_TOKENS" envDefault:"50"`
	SingleShotMaxItems  int `env:"KARMA_SINGLE_SHOT_MAX_ITEMS" envDefault:"500"`
	// QueryAttempts is the total attempt budget per generation call.
	QueryAttempts int `env:"KARMA_QUERY_ATTEMPTS" envDefault:"3"`
	// ChunkDelay is the fixed pause between chunk requests, independent of
	// the executor's own backoff.
	ChunkDelay time.Duration `env:"KARMA_CHUNK_DELAY" envDefault:"5s"`
	// TokenCounter selects the estimator: "heuristic" (chars/4) or
	// "tiktoken" (cl100k_base).
	TokenCounter string `env:"KARMA_TOKEN_COUNTER" envDefault:"heuristic"`
}

func NewAnalysisConfig(ctx context.Context) *AnalysisConfig {
	c := &AnalysisConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Analysis config")
	}
	return c
}
