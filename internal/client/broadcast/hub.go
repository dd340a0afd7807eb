package broadcast

import (
	"context"
	"sync"
)

type subscription struct {
	id   uint64
	kind Kind
	h    Handler
}

// Hub is the in-process Channel.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers h for events of kind. The returned func removes it
// and may be called more than once.
func (h *Hub) Subscribe(kind Kind, handler Handler) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription{id: id, kind: kind, h: handler})
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every matching handler in subscription order.
// Handlers may subscribe or publish themselves; the list is snapshotted first.
func (h *Hub) Publish(ctx context.Context, ev Event) error {
	h.mu.RLock()
	subs := make([]subscription, len(h.subs))
	copy(subs, h.subs)
	h.mu.RUnlock()

	for _, s := range subs {
		if s.kind == ev.Kind {
			s.h(ctx, ev)
		}
	}
	return nil
}
