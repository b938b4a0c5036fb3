package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sheeto/backend/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newTestEvent(eventType string) *shared.BaseDomainEvent {
	event := shared.NewBaseDomainEvent(eventType, "Test", uuid.New())
	return &event
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers events to matching handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(handler)

		event := newTestEvent("order.created")
		require.NoError(t, bus.Publish(ctx, event))

		require.Len(t, handler.received, 1)
		assert.Equal(t, "order.created", handler.received[0].EventType())
	})

	t.Run("skips handlers for other event types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("product.created")))
		assert.Empty(t, handler.received)
	})

	t.Run("wildcard handler receives every event", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("order.created"), newTestEvent("product.created")))
		assert.Len(t, handler.received, 2)
	})

	t.Run("handler error does not fail publish or block others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{"order.created"}, err: errors.New("boom")}
		healthy := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("order.created")))
		assert.Len(t, failing.received, 1)
		assert.Len(t, healthy.received, 1)
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	t.Run("removed handler no longer receives events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(handler)

		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.created")))
		assert.Empty(t, handler.received)
	})

	t.Run("does not mutate a handler list already handed to a publisher", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		first := &recordingHandler{types: []string{"order.created"}}
		second := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(first)
		bus.Subscribe(second)

		// Simulates a Publish that took its snapshot before the unsubscribe.
		snapshot := bus.handlersFor("order.created")
		require.Len(t, snapshot, 2)

		bus.Unsubscribe(first)

		assert.Same(t, first, snapshot[0].(*recordingHandler))
		assert.Same(t, second, snapshot[1].(*recordingHandler))
		assert.Len(t, bus.handlersFor("order.created"), 1)
	})
}
