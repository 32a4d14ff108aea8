package obj

// EventKind identifies something noteworthy the character did this frame.
type EventKind string

const (
	EventJumped      EventKind = "jumped"
	EventFired       EventKind = "fired"
	EventModeChanged EventKind = "mode_changed"
	EventHurt        EventKind = "hurt"
	EventDied        EventKind = "died"
)

// Event is a frame event emitted by the character.
type Event struct {
	Kind EventKind
	Mode Mode
}

// maxQueuedEvents bounds the queue when nobody drains it, e.g. headless runs.
const maxQueuedEvents = 64

// EventQueue collects the events of one frame. Once full, the oldest entry is
// dropped.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if len(q.items) == maxQueuedEvents {
		copy(q.items, q.items[1:])
		q.items = q.items[:maxQueuedEvents-1]
	}
	q.items = append(q.items, evt)
}

func (q *EventQueue) Len() int { return len(q.items) }

// Drain hands the queued events to the caller and empties the queue.
func (q *EventQueue) Drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
