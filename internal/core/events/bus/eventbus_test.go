package bus

import (
	"errors"
	"testing"
)

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got Event
	_, err := b.Subscribe("weather.notification", func(e Event) error {
		got = e
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err = b.Publish(NewEvent("weather.notification", "rain", "Rain has started!", 1, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got == nil || got.Data() != "Rain has started!" || got.Source() != "rain" {
		t.Fatalf("handler not called with event: %#v", got)
	}
}

func TestWildcardReceivesEverything(t *testing.T) {
	b := New()
	count := 0
	_, _ = b.Subscribe(Wildcard, func(e Event) error { count++; return nil })
	_ = b.Publish(NewEvent("a", "src", nil, 0, nil))
	_ = b.Publish(NewEvent("b", "src", nil, 0, nil))
	if count != 2 {
		t.Fatalf("expected 2 deliveries, got %d", count)
	}
}

func TestHandlerErrorsAreJoined(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe("x", func(e Event) error { return errA })
	_, _ = b.Subscribe("x", func(e Event) error { return errB })

	err := b.Publish(NewEvent("x", "src", nil, 0, nil))
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors, got %v", err)
	}
	if m := b.GetMetrics(); m.Errors != 1 || m.DeliveredHandlers != 2 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	count := 0
	sub, _ := b.Subscribe("x", func(e Event) error { count++; return nil })
	_ = b.Publish(NewEvent("x", "src", nil, 0, nil))
	if err := b.Unsubscribe(sub); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	_ = sub.Cancel()
	_ = b.Publish(NewEvent("x", "src", nil, 0, nil))
	if count != 1 || sub.IsActive() {
		t.Fatalf("expected one delivery and inactive sub, got %d active=%v", count, sub.IsActive())
	}
	if err := b.Unsubscribe(nil); err != nil {
		t.Fatalf("nil unsubscribe: %v", err)
	}
	if m := b.GetMetrics(); m.SubscribersActive != 0 {
		t.Fatalf("expected no active subscribers: %+v", m)
	}
}

func TestFiltersDrop(t *testing.T) {
	b := New()
	count := 0
	_, _ = b.Subscribe("x", func(e Event) error { count++; return nil })
	onlyUrgent := func(e Event) bool { return e.Priority() >= 2 }
	_ = b.PublishWithFilters(NewEvent("x", "src", nil, 1, nil), onlyUrgent)
	_ = b.PublishWithFilters(NewEvent("x", "src", nil, 3, nil), onlyUrgent)
	if count != 1 {
		t.Fatalf("expected 1 delivery, got %d", count)
	}
	if m := b.GetMetrics(); m.DroppedByFilters != 1 {
		t.Fatalf("expected one dropped event: %+v", m)
	}
}
