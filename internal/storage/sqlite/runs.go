package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
)

type RunsRepo struct {
	db *sql.DB
}

func NewRunsRepo(db *sql.DB) *RunsRepo {
	return &RunsRepo{db: db}
}

func (r *RunsRepo) SaveRun(ctx context.Context, run core.AnalysisRun) (int64, error) {
	query := `INSERT INTO runs (identity, question, success, answer, item_count, chunks, duration_ms)
              VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		run.Identity,
		run.Question,
		run.Success,
		run.Answer,
		run.ItemCount,
		run.Chunks,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RunsRepo) RecentRuns(ctx context.Context, limit int) ([]core.AnalysisRun, error) {
	query := `SELECT id, identity, question, success, answer, item_count, chunks, duration_ms, created_at
              FROM runs ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []core.AnalysisRun
	for rows.Next() {
		var run core.AnalysisRun
		var durationMS int64
		if err := rows.Scan(
			&run.ID,
			&run.Identity,
			&run.Question,
			&run.Success,
			&run.Answer,
			&run.ItemCount,
			&run.Chunks,
			&durationMS,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
