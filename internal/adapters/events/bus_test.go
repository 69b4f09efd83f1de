package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

type recordingHandler struct {
	name string
	log  *[]string
	err  error
}

func (h *recordingHandler) Handle(_ context.Context, _ auction.DomainEvent) error {
	*h.log = append(*h.log, h.name)
	return h.err
}

func TestBus_Publish(t *testing.T) {
	event := auction.AuctionOpened{}

	t.Run("invokes handlers in registration order", func(t *testing.T) {
		var log []string
		bus := NewBus(
			&recordingHandler{name: "first", log: &log},
			&recordingHandler{name: "second", log: &log},
			&recordingHandler{name: "third", log: &log},
		)

		err := bus.Publish(context.Background(), event)

		assert.NoError(t, err)
		assert.Equal(t, []string{"first", "second", "third"}, log)
	})

	t.Run("stops at the first failing handler", func(t *testing.T) {
		boom := errors.New("handler failed")
		var log []string
		bus := NewBus(
			&recordingHandler{name: "first", log: &log},
			&recordingHandler{name: "second", log: &log, err: boom},
			&recordingHandler{name: "third", log: &log},
		)

		err := bus.Publish(context.Background(), event)

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"first", "second"}, log)
	})
}
