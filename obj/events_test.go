package obj

import "testing"

func TestEventQueueDropsOldest(t *testing.T) {
	var q EventQueue
	for i := 0; i < maxQueuedEvents+2; i++ {
		kind := EventJumped
		if i < 2 {
			kind = EventHurt
		}
		q.Push(Event{Kind: kind})
	}

	if q.Len() != maxQueuedEvents {
		t.Fatalf("expected %d queued events, got %d", maxQueuedEvents, q.Len())
	}
	got := q.Drain()
	for _, e := range got {
		if e.Kind == EventHurt {
			t.Fatalf("oldest events should have been dropped")
		}
	}
	if q.Drain() != nil {
		t.Fatalf("second drain should be empty")
	}
}
