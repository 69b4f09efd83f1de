package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuctionTask is a scheduled lifecycle trigger. The set of variants is
// closed: open the auction at its opening time, end it at its end time.
type AuctionTask interface {
	dueAt() time.Time
}

type OpenAuctionTask struct {
	OpeningAt time.Time `json:"opening_at"`
	AuctionID uuid.UUID `json:"auction_id"`
}

type EndAuctionTask struct {
	EndAt     time.Time `json:"end_at"`
	AuctionID uuid.UUID `json:"auction_id"`
}

func (t OpenAuctionTask) dueAt() time.Time { return t.OpeningAt }
func (t EndAuctionTask) dueAt() time.Time  { return t.EndAt }

// DefaultTaskBucketingWindow groups lifecycle tasks due within the same
// coarse window into one row, amortizing write cost under load.
const DefaultTaskBucketingWindow = 10 * time.Second

// AuctionTaskRepository stores lifecycle tasks in time buckets: one row per
// window holding a list of tasks due inside it. Draining removes the single
// earliest due bucket wholesale; tasks from a drained bucket that fail to
// process are gone. Processing is expected to be fast and per-task
// exception-isolated at the caller.
type AuctionTaskRepository struct {
	pool   *pgxpool.Pool
	window time.Duration
	newID  func() uuid.UUID
	now    func() time.Time
}

func NewAuctionTaskRepository(pool *pgxpool.Pool, window time.Duration) *AuctionTaskRepository {
	return &AuctionTaskRepository{
		pool:   pool,
		window: window,
		newID:  uuid.New,
		now:    time.Now,
	}
}

const appendTaskSQL = `
	INSERT INTO %s (id, time, bucket)
	VALUES ($1, $2, jsonb_build_array($3::jsonb))
	ON CONFLICT (time) DO UPDATE SET bucket = %s.bucket || EXCLUDED.bucket
`

// Save appends the task to the bucket covering its due time, creating the
// bucket row on first use.
func (r *AuctionTaskRepository) Save(ctx context.Context, task AuctionTask) error {
	table := "auction_end_tasks"
	if _, ok := task.(OpenAuctionTask); ok {
		table = "auction_open_tasks"
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal auction task: %w", err)
	}
	window := fitIntoBucketingWindow(task.dueAt(), r.window)
	sql := fmt.Sprintf(appendTaskSQL, table, table)
	if _, err := querier(ctx, r.pool).Exec(ctx, sql, r.newID(), window, payload); err != nil {
		return fmt.Errorf("failed to save auction task: %w", err)
	}
	return nil
}

const drainTasksSQL = `
	DELETE FROM %s
	WHERE id = (
		SELECT id FROM %s
		WHERE time <= $1
		ORDER BY time ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING bucket
`

// FindPendingToOpenAndRemove drains the earliest due bucket of open tasks.
// Fetch and delete are one atomic step; an empty result means no bucket is
// due.
func (r *AuctionTaskRepository) FindPendingToOpenAndRemove(ctx context.Context) ([]OpenAuctionTask, error) {
	raw, err := r.drain(ctx, "auction_open_tasks")
	if err != nil || raw == nil {
		return nil, err
	}
	var tasks []OpenAuctionTask
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode open tasks bucket: %w", err)
	}
	return tasks, nil
}

// FindPendingToEndAndRemove drains the earliest due bucket of end tasks.
func (r *AuctionTaskRepository) FindPendingToEndAndRemove(ctx context.Context) ([]EndAuctionTask, error) {
	raw, err := r.drain(ctx, "auction_end_tasks")
	if err != nil || raw == nil {
		return nil, err
	}
	var tasks []EndAuctionTask
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode end tasks bucket: %w", err)
	}
	return tasks, nil
}

func (r *AuctionTaskRepository) drain(ctx context.Context, table string) ([]byte, error) {
	sql := fmt.Sprintf(drainTasksSQL, table, table)
	var raw []byte
	err := querier(ctx, r.pool).QueryRow(ctx, sql, r.now()).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to drain %s: %w", table, err)
	}
	return raw, nil
}

// fitIntoBucketingWindow truncates a due time down to the start of its
// bucketing window.
func fitIntoBucketingWindow(t time.Time, window time.Duration) time.Time {
	return t.Truncate(window)
}
