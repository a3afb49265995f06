package db

import (
	"context"
	"fmt"
	"time"
)

// RunResult is the outcome of one finished run: the high-score record the
// simulation persists when the player dies.
type RunResult struct {
	Player     string
	Score      int64
	Level      int32
	Duration   time.Duration
	RecordedAt time.Time
}

// SaveRun inserts a finished run.
func (d *DB) SaveRun(ctx context.Context, run RunResult) error {
	if run.RecordedAt.IsZero() {
		run.RecordedAt = time.Now()
	}
	_, err := d.pool.Exec(ctx,
		`INSERT INTO runs (player, score, level, duration_ms, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		run.Player, run.Score, run.Level, run.Duration.Milliseconds(), run.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("saving run for %q: %w", run.Player, err)
	}
	return nil
}

// TopRuns returns the best runs ordered by score descending.
func (d *DB) TopRuns(ctx context.Context, limit int) ([]RunResult, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT player, score, level, duration_ms, recorded_at
		 FROM runs ORDER BY score DESC, recorded_at ASC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying top runs: %w", err)
	}
	defer rows.Close()

	var results []RunResult
	for rows.Next() {
		var run RunResult
		var durationMs int64
		if err := rows.Scan(&run.Player, &run.Score, &run.Level, &durationMs, &run.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}
	return results, nil
}
