package event

import "github.com/lixenwraith/tile-raider/parameter"

// Queue is a FIFO buffer of pending events owned by a single consumer
// Single-threaded: producers and the consumer run inside the same world tick
type Queue struct {
	events []Event
}

// NewQueue creates an empty queue with default capacity
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, parameter.EventQueueCapacity)}
}

// Push appends an event to the tail
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Consume returns all pending events in FIFO order and empties the queue
func (q *Queue) Consume() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = make([]Event, 0, cap(out))
	return out
}

// Len returns the pending event count
func (q *Queue) Len() int {
	return len(q.events)
}
