package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/ramblinglizard/KarmaScanner/internal/config"
	"github.com/ramblinglizard/KarmaScanner/internal/core"
)

// Service answers a free-form question about a user's history. Small
// histories go to the model in one request; large ones are partitioned,
// analyzed chunk by chunk, and the partial answers synthesized into a final
// response.
type Service struct {
	notifier core.Notifier
	est      Estimator
	exec     *Executor
	cfg      *config.AnalysisConfig
}

// Stats reports what a single analysis cost.
type Stats struct {
	TotalTokens int
	Chunks      int
}

func NewService(gen core.TextGenerator, notifier core.Notifier, cfg *config.AnalysisConfig) (*Service, error) {
	if notifier == nil {
		notifier = core.NotifierFunc(func(string) {})
	}
	est, err := NewEstimator(cfg)
	if err != nil {
		return nil, err
	}
	return &Service{
		notifier: notifier,
		est:      est,
		exec:     NewExecutor(gen, notifier, cfg.QueryAttempts),
		cfg:      cfg,
	}, nil
}

// Analyze answers question over items. Items arrive in extraction order;
// chunk boundaries respect that order while each formatted chunk is sorted
// newest first.
func (s *Service) Analyze(ctx context.Context, question string, items []core.HistoryItem) (core.AnalysisResult, Stats) {
	totalTokens := s.est.Estimate(CorpusText(items))
	s.notifier.Notify(fmt.Sprintf("[INFO] Total estimated tokens: ~%s", groupDigits(totalTokens)))

	if totalTokens < s.cfg.SingleShotTokenLimit {
		s.notifier.Notify("[INFO] History fits in single request")
		posts, comments := splitByKind(items)
		history := FormatHistory(posts, comments, s.cfg.SingleShotMaxItems)

		s.notifier.Notify("[INFO] Sending request to Gemini AI...")
		return s.exec.Query(ctx, buildSingleShotPrompt(question, history)), Stats{TotalTokens: totalTokens, Chunks: 1}
	}

	chunks := SplitItems(items, s.est, s.cfg.ChunkTokenLimit, s.cfg.HeaderReserveTokens)
	s.notifier.Notify(fmt.Sprintf("[INFO] Splitting into %d chunks to stay within limits", len(chunks)))
	stats := Stats{TotalTokens: totalTokens, Chunks: len(chunks)}

	var partials []string
	for i, chunk := range chunks {
		num := i + 1
		s.notifier.Notify(fmt.Sprintf("[INFO] Analyzing chunk %d/%d (%d items)...", num, len(chunks), len(chunk.Items)))

		posts, comments := splitByKind(chunk.Items)
		history := FormatHistory(posts, comments, len(chunk.Items))

		res := s.exec.Query(ctx, buildChunkPrompt(question, history, num, len(chunks)))
		if !res.Success {
			s.notifier.Notify(fmt.Sprintf("[WARNING] Chunk %d failed: %s", num, res.Text))
		} else {
			partials = append(partials, fmt.Sprintf("## Chunk %d/%d Analysis:\n%s", num, len(chunks), res.Text))
		}

		if num < len(chunks) {
			s.notifier.Notify(fmt.Sprintf("[INFO] Waiting %ds before next chunk (rate limiting)...", int(s.cfg.ChunkDelay.Seconds())))
			if err := s.wait(ctx); err != nil {
				return core.AnalysisResult{Success: false, Text: "Error: " + err.Error()}, stats
			}
		}
	}

	if len(partials) == 0 {
		return core.AnalysisResult{Success: false, Text: "All chunks failed to analyze"}, stats
	}

	s.notifier.Notify(fmt.Sprintf("[INFO] Synthesizing %d partial answers into final response...", len(partials)))
	if err := s.wait(ctx); err != nil {
		return core.AnalysisResult{Success: false, Text: "Error: " + err.Error()}, stats
	}

	res := s.exec.Query(ctx, buildSynthesisPrompt(question, partials, len(chunks)))
	if res.Success {
		s.notifier.Notify("[SUCCESS] Multi-chunk analysis complete!")
	}
	return res, stats
}

func (s *Service) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.cfg.ChunkDelay):
		return nil
	}
}

func splitByKind(items []core.HistoryItem) (posts, comments []core.HistoryItem) {
	for _, item := range items {
		if item.IsPost() {
			posts = append(posts, item)
		} else {
			comments = append(comments, item)
		}
	}
	return posts, comments
}

// groupDigits renders n with thousands separators, e.g. 1234567 -> "1,234,567".
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
