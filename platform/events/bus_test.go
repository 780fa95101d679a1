package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pipeline_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishDispatchesToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	calls := 0

	handler := HandlerFunc(func(ctx context.Context, event Event) error {
		mu.Lock()
		calls++
		mu.Unlock()
		wg.Done()
		return nil
	})
	bus.Subscribe("test.event", handler)
	bus.Subscribe("test.event", handler)
	bus.Subscribe("other.event", HandlerFunc(func(context.Context, Event) error {
		t.Error("handler for other.event invoked")
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers did not run")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}

func TestPublishSurvivesPanickingHandler(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	ran := make(chan struct{})
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		panic("boom")
	}))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		close(ran)
		return nil
	}))

	bus.Publish(context.Background(), testEvent{name: "test.event"})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("sibling handler did not run after panic")
	}
}

func TestPublishSyncReturnsFirstError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	wantErr := errors.New("first failure")
	secondRan := false
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		return wantErr
	}))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		secondRan = true
		return errors.New("second failure")
	}))

	err := bus.PublishSync(context.Background(), testEvent{name: "test.event"})
	if !errors.Is(err, wantErr) {
		t.Errorf("PublishSync err = %v, want %v", err, wantErr)
	}
	if !secondRan {
		t.Error("second handler skipped after first error")
	}
}
