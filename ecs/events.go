package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventAnimationFinished = "animation_finished"

// AnimationFinishedEvent is pushed when a non-looping clip reaches its last
// frame.
type AnimationFinishedEvent struct {
	Entity Entity
	Clip   string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
