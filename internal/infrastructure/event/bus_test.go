package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stockEvent struct {
	shared.BaseDomainEvent
}

func newStockEvent(eventType string) *stockEvent {
	return &stockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Stock", uuid.New()),
	}
}

// recordingHandler captures every event it receives; err, when set, is
// returned from Handle. panics simulates a buggy subscriber.
type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	received   []shared.DomainEvent
	err        error
	panics     bool
}

func newRecordingHandler(eventTypes ...string) *recordingHandler {
	return &recordingHandler{eventTypes: eventTypes}
}

func (h *recordingHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	if h.panics {
		panic("subscriber bug")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.received = append(h.received, ev)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	matching := newRecordingHandler("stock.below_threshold")
	other := newRecordingHandler("order.confirmed")
	bus.Subscribe(matching)
	bus.Subscribe(other)

	require.NoError(t, bus.Publish(context.Background(), newStockEvent("stock.below_threshold")))

	assert.Equal(t, 1, matching.count())
	assert.Equal(t, 0, other.count())
}

func TestPublishFansOut(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	first := newRecordingHandler("stock.below_threshold")
	second := newRecordingHandler("stock.below_threshold")
	bus.Subscribe(first)
	bus.Subscribe(second)

	require.NoError(t, bus.Publish(context.Background(),
		newStockEvent("stock.below_threshold"),
		newStockEvent("stock.below_threshold"),
	))

	assert.Equal(t, 2, first.count())
	assert.Equal(t, 2, second.count())
}

func TestPublishWildcardReceivesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	all := newRecordingHandler()
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(), newStockEvent("anything.at_all")))
	assert.Equal(t, 1, all.count())
}

func TestPublishSubscribeOverridesHandlerTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	h := newRecordingHandler("stock.below_threshold")
	bus.Subscribe(h, "order.confirmed")

	require.NoError(t, bus.Publish(context.Background(), newStockEvent("order.confirmed")))
	require.NoError(t, bus.Publish(context.Background(), newStockEvent("stock.below_threshold")))

	assert.Equal(t, 1, h.count(), "explicit subscription types win over EventTypes")
}

func TestPublishSurvivesFailingHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := newRecordingHandler("stock.below_threshold")
	failing.err = errors.New("downstream unavailable")
	healthy := newRecordingHandler("stock.below_threshold")
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newStockEvent("stock.below_threshold")))

	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, healthy.count())
}

func TestPublishSurvivesPanickingHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	buggy := newRecordingHandler("stock.below_threshold")
	buggy.panics = true
	healthy := newRecordingHandler("stock.below_threshold")
	bus.Subscribe(buggy)
	bus.Subscribe(healthy)

	assert.NotPanics(t, func() {
		require.NoError(t, bus.Publish(context.Background(), newStockEvent("stock.below_threshold")))
	})
	assert.Equal(t, 1, healthy.count())
}

func TestUnsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	h := newRecordingHandler("stock.below_threshold")
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newStockEvent("stock.below_threshold")))
	bus.Unsubscribe(h)
	require.NoError(t, bus.Publish(context.Background(), newStockEvent("stock.below_threshold")))

	assert.Equal(t, 1, h.count())
}

func TestStartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	require.NoError(t, bus.Start(context.Background()))

	h := newRecordingHandler("stock.below_threshold")
	bus.Subscribe(h)
	require.NoError(t, bus.Publish(context.Background(), newStockEvent("stock.below_threshold")))
	assert.Equal(t, 1, h.count())

	require.NoError(t, bus.Stop(context.Background()))
}
