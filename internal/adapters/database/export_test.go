package database

import "time"

// Clock seams for deterministic bucketing in tests.

func (r *OutboxRepository) SetClock(now func() time.Time) { r.now = now }

func (r *AuctionTaskRepository) SetClock(now func() time.Time) { r.now = now }
