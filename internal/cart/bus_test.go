package cart

import "testing"

func TestBusPublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()

	a, b := 0, 0
	unsubA := bus.Subscribe(func() { a++ })
	unsubB := bus.Subscribe(func() { b++ })
	defer unsubA()
	defer unsubB()

	bus.Publish()
	bus.Publish()

	if a != 2 || b != 2 {
		t.Fatalf("expected both subscribers notified twice, got a=%d b=%d", a, b)
	}
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(func() { calls++ })

	bus.Publish()
	unsubscribe()
	bus.Publish()

	if calls != 1 {
		t.Fatalf("expected one call after unsubscribe, got %d", calls)
	}

	// double unsubscribe is harmless
	unsubscribe()
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	NewBus().Publish()
}
