package events

import (
	"sync"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"go.uber.org/atomic"
)

const subscriptionBuffer = 64

// Hub fans committed events out to live subscribers.
// A subscriber that does not keep up is dropped instead of blocking the ledger.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint64]*Subscription

	nextId    atomic.Uint64
	published atomic.Uint64
	dropped   atomic.Uint64
	closed    atomic.Bool
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[uint64]*Subscription)}
}

type Subscription struct {
	id     uint64
	hub    *Hub
	events chan db.Event
	once   sync.Once
}

// Events is closed when the subscription is cancelled or dropped.
func (s *Subscription) Events() <-chan db.Event {
	return s.events
}

func (s *Subscription) Close() {
	s.hub.remove(s.id)
}

func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		id:     h.nextId.Inc(),
		hub:    h,
		events: make(chan db.Event, subscriptionBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed.Load() {
		close(sub.events)
		return sub
	}
	h.subscribers[sub.id] = sub

	return sub
}

func (h *Hub) Publish(events ...db.Event) {
	if len(events) == 0 || h.closed.Load() {
		return
	}

	var slow []uint64

	h.mu.RLock()
subscribers:
	for id, sub := range h.subscribers {
		for _, event := range events {
			select {
			case sub.events <- event:
			default:
				slow = append(slow, id)
				continue subscribers
			}
		}
	}
	h.mu.RUnlock()

	h.published.Add(uint64(len(events)))
	for _, id := range slow {
		h.dropped.Inc()
		h.remove(id)
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()

	if ok {
		sub.once.Do(func() { close(sub.events) })
	}
}

// Close drops every subscriber; further publications are ignored.
func (h *Hub) Close() {
	if !h.closed.CompareAndSwap(false, true) {
		return
	}

	h.mu.Lock()
	subs := h.subscribers
	h.subscribers = make(map[uint64]*Subscription)
	h.mu.Unlock()

	for _, sub := range subs {
		sub.once.Do(func() { close(sub.events) })
	}
}

type Stats struct {
	Subscribers int    `json:"subscribers"`
	Published   uint64 `json:"published"`
	Dropped     uint64 `json:"dropped"`
}

func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return Stats{
		Subscribers: len(h.subscribers),
		Published:   h.published.Load(),
		Dropped:     h.dropped.Load(),
	}
}
