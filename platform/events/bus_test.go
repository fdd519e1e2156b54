package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"reserva_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishDispatchesToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var handled atomic.Int32
	bus.Subscribe("booking.created", HandlerFunc(func(_ context.Context, _ Event) error {
		handled.Add(1)
		return nil
	}))
	bus.Subscribe("booking.created", HandlerFunc(func(_ context.Context, _ Event) error {
		handled.Add(1)
		return nil
	}))
	bus.Subscribe("booking.cancelled", HandlerFunc(func(_ context.Context, _ Event) error {
		t.Error("handler for another event must not run")
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "booking.created"})
	bus.Wait()

	if got := handled.Load(); got != 2 {
		t.Errorf("expected 2 handler invocations, got %d", got)
	}
}

func TestPublishSurvivesHandlerPanic(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var handled atomic.Int32
	bus.Subscribe("booking.created", HandlerFunc(func(_ context.Context, _ Event) error {
		panic("boom")
	}))
	bus.Subscribe("booking.created", HandlerFunc(func(_ context.Context, _ Event) error {
		handled.Add(1)
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "booking.created"})
	bus.Wait()

	if got := handled.Load(); got != 1 {
		t.Errorf("expected the healthy handler to run, got %d invocations", got)
	}
}

func TestPublishForwardsValuesButNotCancellation(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	done := make(chan error, 1)
	bus.Subscribe("booking.created", HandlerFunc(func(ctx context.Context, _ Event) error {
		done <- ctx.Err()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{BaseEvent: NewBaseEvent(), name: "booking.created"})
	bus.Wait()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected handler context to outlive the publisher's, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}

func TestPublishSyncReturnsFirstError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	wantErr := errors.New("handler failed")
	var secondRan bool
	bus.Subscribe("booking.created", HandlerFunc(func(_ context.Context, _ Event) error {
		return wantErr
	}))
	bus.Subscribe("booking.created", HandlerFunc(func(_ context.Context, _ Event) error {
		secondRan = true
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "booking.created"})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected first handler error, got %v", err)
	}
	if secondRan {
		t.Error("expected dispatch to stop at the first error")
	}
}
