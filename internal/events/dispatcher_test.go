package events

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestPublishReachesOnlySubscribedType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var captured []Event
	d.Subscribe(EventLeadCaptured, func(_ context.Context, e Event) error {
		captured = append(captured, e)
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventLeadCaptured}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := d.Publish(context.Background(), Event{Type: EventCampaignClicked}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(captured) != 1 || captured[0].Type != EventLeadCaptured {
		t.Errorf("captured = %v, want one lead_captured", captured)
	}
}

func TestFailingHandlerDoesNotBlockOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var secondRan bool
	d.Subscribe(EventUserApproved, func(context.Context, Event) error {
		return errors.New("webhook down")
	})
	d.Subscribe(EventUserApproved, func(context.Context, Event) error {
		secondRan = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventUserApproved}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !secondRan {
		t.Error("second handler skipped after first failed")
	}
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	d := NewInMemoryDispatcher()

	var mu sync.Mutex
	count := 0
	d.Subscribe(EventLeadsAssigned, func(context.Context, Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Publish(context.Background(), Event{Type: EventLeadsAssigned})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != 20 {
		t.Errorf("handled = %d, want 20", count)
	}
}
