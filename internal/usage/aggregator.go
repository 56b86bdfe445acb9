package usage

import (
	"context"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v5"

	"github.com/hafljin/inquiry-automation/internal/database"
	"github.com/hafljin/inquiry-automation/internal/logger"
)

const upsertUsage = `
	INSERT INTO diagnostic_usage(day, kind, outcome, total, updated_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (day, kind, outcome)
	DO UPDATE SET total = EXCLUDED.total, updated_at = NOW()
`

// Flusher copies daily counters into Postgres diagnostic_usage
type Flusher struct {
	db       *database.DB
	recorder Recorder
	now      func() time.Time
}

// NewFlusher creates a flusher
func NewFlusher(db *database.DB, recorder Recorder) *Flusher {
	return &Flusher{db: db, recorder: recorder, now: time.Now}
}

// Shared reports whether the recorder's counters are global across replicas.
// Only shared counters may be flushed, since the upsert replaces per-day totals.
func Shared(r Recorder) bool {
	_, ok := r.(*RedisRecorder)
	return ok
}

// Enabled reports whether flushing would write anything durable
func (f *Flusher) Enabled() bool {
	return f.db.IsConfigured() && Shared(f.recorder)
}

// StartAggregator periodically flushes Redis usage into Postgres and
// reports whether the loop was started
func StartAggregator(ctx context.Context, db *database.DB, recorder Recorder, interval time.Duration) bool {
	f := NewFlusher(db, recorder)
	if !f.Enabled() {
		if db.IsConfigured() {
			logger.Info("usage aggregation disabled, counters are process-local")
		}
		return false
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				f.FlushOnce(ctx)
			}
		}
	}()
	return true
}

// FlushOnce flushes today and yesterday so counters written just before midnight are not lost.
// It does nothing unless the flusher is Enabled.
func (f *Flusher) FlushOnce(ctx context.Context) {
	if !f.Enabled() {
		return
	}
	now := f.now().UTC()
	for _, day := range []time.Time{now.AddDate(0, 0, -1), now} {
		n, err := f.FlushDay(ctx, day)
		if err != nil {
			logger.Error("usage flush failed", "day", DayKey(day), "error", err)
			continue
		}
		logger.Debug("usage flushed", "day", DayKey(day), "rows", n)
	}
}

// FlushDay upserts one day's snapshot and returns the number of rows written
func (f *Flusher) FlushDay(ctx context.Context, day time.Time) (int, error) {
	snap, err := f.recorder.Snapshot(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("snapshot: %w", err)
	}

	date := truncateDay(day)
	batch := &pgx.Batch{}
	for field, total := range snap {
		kind, outcome := SplitField(field)
		batch.Queue(upsertUsage, date, string(kind), outcome, total)
	}

	if err := f.db.SendBatch(ctx, batch); err != nil {
		return 0, err
	}
	return batch.Len(), nil
}

// Load reads persisted totals for a day, keyed like Recorder snapshots
func (f *Flusher) Load(ctx context.Context, day time.Time) (map[string]int, error) {
	rows, err := f.db.Query(ctx, `SELECT kind, outcome, total FROM diagnostic_usage WHERE day = $1`, truncateDay(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var kind, outcome string
		var total int
		if err := rows.Scan(&kind, &outcome, &total); err != nil {
			return nil, err
		}
		out[Event{Kind: Kind(kind), Outcome: outcome}.Field()] = total
	}
	return out, rows.Err()
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
