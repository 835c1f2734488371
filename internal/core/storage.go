package core

import "context"

type RunsRepository interface {
	SaveRun(ctx context.Context, run AnalysisRun) (int64, error)
	RecentRuns(ctx context.Context, limit int) ([]AnalysisRun, error)
}
