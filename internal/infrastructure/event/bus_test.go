package event

import (
	"context"
	"errors"
	"testing"

	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types   []string
	got     []shared.DomainEvent
	fail    bool
	panicky bool
}

func (h *recordingHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	if h.panicky {
		panic("boom")
	}
	if h.fail {
		return errors.New("handler failed")
	}
	h.got = append(h.got, ev)
	return nil
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func testEvent(eventType string) shared.DomainEvent {
	ev := shared.NewBaseDomainEvent(eventType, "Test", uuid.New())
	return &ev
}

func TestInMemoryEventBus_PublishAndSubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"test.created"}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), testEvent("test.created")))
	assert.Len(t, handler.got, 1)

	// unrelated event types are not delivered
	require.NoError(t, bus.Publish(context.Background(), testEvent("test.deleted")))
	assert.Len(t, handler.got, 1)
}

func TestInMemoryEventBus_FailingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"test.created"}, fail: true}
	healthy := &recordingHandler{types: []string{"test.created"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), testEvent("test.created")))
	assert.Len(t, healthy.got, 1)
}

func TestInMemoryEventBus_PanickingHandlerIsRecovered(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(&recordingHandler{types: []string{"test.created"}, panicky: true})

	assert.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), testEvent("test.created"))
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"test.created"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), testEvent("test.created")))
	assert.Empty(t, handler.got)
}
