// Package events fans refresh signals out to open views.
package events

import (
	"sync"
	"time"
)

// TopicGallery is published after every confirmed gallery mutation.
const TopicGallery = "gallery"

const defaultBuffer = 16

// Event is one refresh signal.
type Event struct {
	Topic string    `json:"topic"`
	Seq   uint64    `json:"seq"`
	At    time.Time `json:"at"`
}

// Hub is an in-process publish/subscribe registry keyed by topic.
// Slow subscribers lose events rather than block publishers; a refresh signal carries no data, so missing one
// only delays a re-fetch until the next.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[chan Event]struct{}
	seq    map[string]uint64
	closed bool
	now    func() time.Time
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Event]struct{}),
		seq:  make(map[string]uint64),
		now:  time.Now,
	}
}

// Publish delivers a refresh signal on topic to every current subscriber.
// POST: returns the published event; subscribers with full buffers are skipped
func (h *Hub) Publish(topic string) Event {
	h.mu.Lock()
	h.seq[topic]++
	ev := Event{Topic: topic, Seq: h.seq[topic], At: h.now()}
	if h.closed {
		h.mu.Unlock()
		return ev
	}
	chans := make([]chan Event, 0, len(h.subs[topic]))
	for ch := range h.subs[topic] {
		chans = append(chans, ch)
	}
	h.mu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// Subscribe registers for topic. The returned cancel func unsubscribes and closes the channel; it is safe to call twice.
// After Close the returned channel is already closed.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	ch := make(chan Event, defaultBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[chan Event]struct{})
	}
	h.subs[topic][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			subs, ok := h.subs[topic]
			if !ok {
				return
			}
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subs, topic)
			}
			close(ch)
		})
	}
}

// Subscribers counts live subscriptions on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic])
}

// Close ends every subscription so streaming handlers return during shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for topic, subs := range h.subs {
		for ch := range subs {
			close(ch)
		}
		delete(h.subs, topic)
	}
}
