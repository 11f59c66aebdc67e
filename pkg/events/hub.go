package events

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultBuffer = 16

// EventHub fans events out to subscribers. Slow subscribers miss events
// rather than blocking the publisher.
type EventHub struct {
	mu     sync.RWMutex
	subs   map[chan Event]struct{}
	buffer int
}

func NewEventHub() *EventHub {
	return &EventHub{
		subs:   make(map[chan Event]struct{}),
		buffer: defaultBuffer,
	}
}

// Subscribe registers a new subscriber. Calling the returned function
// unsubscribes and closes the channel; it is safe to call more than once.
func (h *EventHub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			close(ch)
			h.mu.Unlock()
		})
	}
}

// Subscribers returns the number of active subscribers.
func (h *EventHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

func (h *EventHub) Publish(name string, payload any) {
	if h == nil {
		return
	}

	b, err := json.Marshal(payload)
	if err != nil {
		logrus.Errorf("failed to marshal %s event: %v", name, err)
		return
	}

	msg := Event{Name: name, Data: b}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			logrus.Debugf("dropping %s event for slow subscriber", name)
		}
	}
}
