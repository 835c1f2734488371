package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

// Runner ties history extraction to analysis and optionally records each
// finished run.
type Runner struct {
	source   core.HistorySource
	service  *Service
	runs     core.RunsRepository
	notifier core.Notifier
}

func NewRunner(source core.HistorySource, service *Service, runs core.RunsRepository, notifier core.Notifier) *Runner {
	if notifier == nil {
		notifier = core.NotifierFunc(func(string) {})
	}
	return &Runner{
		source:   source,
		service:  service,
		runs:     runs,
		notifier: notifier,
	}
}

// Run extracts req.Identity's history and answers req.Question over it.
// Failures come back as an unsuccessful result, never an error: the caller
// always has something to show the user.
func (r *Runner) Run(ctx context.Context, req core.AnalysisRequest) core.AnalysisResult {
	start := time.Now()
	r.notifier.Notify(fmt.Sprintf("--- STARTING AI ANALYSIS FOR u/%s ---", req.Identity))

	posts, comments, err := r.source.UserHistory(ctx, req.Identity, req.Window)
	if err != nil {
		msg := extractionMessage(req.Identity, err)
		r.notifier.Notify("[ERROR] " + msg)
		return core.AnalysisResult{Success: false, Text: msg}
	}

	if len(posts) == 0 && len(comments) == 0 {
		msg := "No history found for this user in the selected time period."
		r.notifier.Notify("[ERROR] " + msg)
		return core.AnalysisResult{Success: false, Text: msg}
	}

	r.notifier.Notify("[INFO] Preparing data for AI analysis...")

	items := make([]core.HistoryItem, 0, len(posts)+len(comments))
	items = append(items, posts...)
	items = append(items, comments...)

	result, stats := r.service.Analyze(ctx, req.Question, items)
	r.saveRun(ctx, req, result, stats, len(items), time.Since(start))
	return result
}

func (r *Runner) saveRun(ctx context.Context, req core.AnalysisRequest, result core.AnalysisResult, stats Stats, itemCount int, elapsed time.Duration) {
	if r.runs == nil {
		return
	}
	run := core.AnalysisRun{
		Identity:  req.Identity,
		Question:  req.Question,
		Success:   result.Success,
		Answer:    result.Text,
		ItemCount: itemCount,
		Chunks:    stats.Chunks,
		Duration:  elapsed,
	}
	if _, err := r.runs.SaveRun(ctx, run); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("identity", req.Identity).Msg("failed to record analysis run")
	}
}

func extractionMessage(identity string, err error) string {
	switch {
	case errors.Is(err, core.ErrUserNotFound):
		return fmt.Sprintf("User '%s' does not exist or has been deleted.", identity)
	case errors.Is(err, core.ErrUserSuspended):
		return fmt.Sprintf("User '%s' has been suspended from Reddit.", identity)
	default:
		return fmt.Sprintf("Could not extract user history: %v", err)
	}
}
