package order

import "time"

// EventType classifies a lifecycle event.
type EventType string

const (
	EventCreate EventType = "create"
	EventFill   EventType = "fill"
	EventCancel EventType = "cancel"
	EventExpire EventType = "expire"
)

// Event is one entry in the order lifecycle log. Quantity and Price
// echo the order at the time of the event so positions can be rebuilt
// from the log alone.
type Event struct {
	Time     time.Time
	Type     EventType
	OrderID  string
	Symbol   string
	Side     Side
	Quantity float64
	Price    float64 // fill price for fills, limit/requested price otherwise
	Note     string
}

// Log is the append-only order lifecycle log, the source of truth for
// positions. Entries are never rewritten.
type Log struct {
	events []Event
}

func NewLog() *Log {
	return &Log{events: make([]Event, 0, 64)}
}

// Append records an event.
func (l *Log) Append(e Event) {
	l.events = append(l.events, e)
}

// Events returns a copy of the log, oldest first.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len is the number of recorded events.
func (l *Log) Len() int { return len(l.events) }
