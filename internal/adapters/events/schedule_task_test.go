package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outbidhq/auction-service/internal/adapters/database"
	"github.com/outbidhq/auction-service/internal/domain/auction"
)

type fakeTaskStore struct {
	saved []database.AuctionTask
}

func (f *fakeTaskStore) Save(_ context.Context, task database.AuctionTask) error {
	f.saved = append(f.saved, task)
	return nil
}

func TestScheduleAuctionTask_Handle(t *testing.T) {
	now := time.Date(2007, 12, 3, 10, 15, 30, 0, time.UTC)
	auctionID := uuid.New()

	t.Run("schedules an open task on creation", func(t *testing.T) {
		store := &fakeTaskStore{}
		h := NewScheduleAuctionTask(store)
		openingAt := now.Add(8 * 24 * time.Hour)

		err := h.Handle(context.Background(), auction.AuctionCreated{Auction: auction.Auction{ID: auctionID, OpeningAt: openingAt}})

		require.NoError(t, err)
		require.Len(t, store.saved, 1)
		task, ok := store.saved[0].(database.OpenAuctionTask)
		require.True(t, ok)
		assert.Equal(t, auctionID, task.AuctionID)
		assert.Equal(t, openingAt, task.OpeningAt)
	})

	t.Run("schedules an end task when the end time moves", func(t *testing.T) {
		endAt := now.Add(15 * time.Minute)
		events := []auction.DomainEvent{
			auction.AuctionOpened{Auction: auction.Auction{ID: auctionID, EndAt: endAt}},
			auction.BidPlaced{Auction: auction.Auction{ID: auctionID, EndAt: endAt}},
			auction.AutoBidPlaced{Auction: auction.Auction{ID: auctionID, EndAt: endAt}},
		}

		for _, event := range events {
			store := &fakeTaskStore{}
			h := NewScheduleAuctionTask(store)

			err := h.Handle(context.Background(), event)

			require.NoError(t, err)
			require.Len(t, store.saved, 1, event.Name())
			task, ok := store.saved[0].(database.EndAuctionTask)
			require.True(t, ok, event.Name())
			assert.Equal(t, auctionID, task.AuctionID)
			assert.Equal(t, endAt, task.EndAt)
		}
	})

	t.Run("ignores events without a lifecycle deadline", func(t *testing.T) {
		events := []auction.DomainEvent{
			auction.AuctionEnded{Auction: auction.Auction{ID: auctionID}},
			auction.AutoBidCreated{Auction: auction.Auction{ID: auctionID}},
			auction.AutoBidDisabled{Auction: auction.Auction{ID: auctionID}},
		}

		for _, event := range events {
			store := &fakeTaskStore{}
			h := NewScheduleAuctionTask(store)

			err := h.Handle(context.Background(), event)

			assert.NoError(t, err, event.Name())
			assert.Empty(t, store.saved, event.Name())
		}
	})
}
