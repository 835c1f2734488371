package analyzer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/ramblinglizard/KarmaScanner/internal/config"
)

// Estimator approximates how many model tokens a string will consume.
type Estimator interface {
	Estimate(text string) int
}

// HeuristicEstimator assumes roughly four characters per token. Budgets
// sized against it must leave headroom for the real tokenizer.
type HeuristicEstimator struct{}

func (HeuristicEstimator) Estimate(text string) int {
	return len(text) / 4
}

// TiktokenEstimator counts tokens exactly with the cl100k_base encoding.
// Slower than the heuristic and opt-in via KARMA_TOKEN_COUNTER=tiktoken.
type TiktokenEstimator struct {
	enc *tiktoken.Tiktoken
}

func NewTiktokenEstimator() (*TiktokenEstimator, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding: %w", err)
	}
	return &TiktokenEstimator{enc: enc}, nil
}

func (e *TiktokenEstimator) Estimate(text string) int {
	if text == "" {
		return 0
	}
	return len(e.enc.Encode(text, nil, nil))
}

func NewEstimator(cfg *config.AnalysisConfig) (Estimator, error) {
	switch cfg.TokenCounter {
	case "", "heuristic":
		return HeuristicEstimator{}, nil
	case "tiktoken":
		return NewTiktokenEstimator()
	default:
		return nil, fmt.Errorf("unknown token counter: %s", cfg.TokenCounter)
	}
}
